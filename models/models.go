package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// AttendanceStatus is the daily status recorded per person.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// Fee payment statuses. Status is set by the operator; it is never derived
// from paid_amount vs amount.
const (
	FeeUnpaid  = "unpaid"
	FeePartial = "partial"
	FeePaid    = "paid"
)

const (
	SalaryUnpaid = "unpaid"
	SalaryPaid   = "paid"
)

// Admin model
type Admin struct {
	BaseModel
	Username string `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Surname  string `json:"surname" gorm:"size:100;not null"`
	Email    string `json:"email" gorm:"size:255;uniqueIndex"`
}

// FullName returns the display name used in session bindings.
func (a *Admin) FullName() string { return a.Name + " " + a.Surname }

// Teacher model
type Teacher struct {
	BaseModel
	Username      string     `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password      string     `json:"-" gorm:"size:255;not null"`
	Name          string     `json:"name" gorm:"size:100;not null"`
	Surname       string     `json:"surname" gorm:"size:100;not null"`
	Email         string     `json:"email" gorm:"size:255;uniqueIndex"`
	Mobile        string     `json:"mobile" gorm:"size:15"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender" gorm:"size:10"` // male, female, other
	Address       string     `json:"address" gorm:"type:text"`
	EmployeeID    string     `json:"employee_id" gorm:"size:50;not null;uniqueIndex"`
	Qualification string     `json:"qualification" gorm:"size:200"`
	JoiningDate   *time.Time `json:"joining_date"`
	Experience    string     `json:"experience" gorm:"size:50"`
	Salary        float64    `json:"salary" gorm:"type:decimal(10,2);default:0"`

	// Relationships
	Subjects []Subject `json:"subjects,omitempty" gorm:"many2many:teacher_subjects;"`
}

func (t *Teacher) FullName() string { return t.Name + " " + t.Surname }

// Student model
type Student struct {
	BaseModel
	Username      string     `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password      string     `json:"-" gorm:"size:255;not null"`
	Name          string     `json:"name" gorm:"size:100;not null"`
	Surname       string     `json:"surname" gorm:"size:100;not null"`
	Email         string     `json:"email" gorm:"size:255;uniqueIndex"`
	Mobile        string     `json:"mobile" gorm:"size:15"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender" gorm:"size:10"`
	RollNo        string     `json:"roll_no" gorm:"size:20"`
	Address       string     `json:"address" gorm:"type:text"`
	ClassID       *uint      `json:"class_id"` // nulled when the class is deleted
	Section       string     `json:"section" gorm:"size:10"`
	AdmissionNo   string     `json:"admission_no" gorm:"size:50;not null;uniqueIndex"`
	AdmissionDate *time.Time `json:"admission_date"`
	ParentName    string     `json:"parent_name" gorm:"size:100"`
	ParentMobile  string     `json:"parent_mobile" gorm:"size:15"`
	ParentEmail   string     `json:"parent_email" gorm:"size:255"`

	// Relationships
	Class *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`
}

func (s *Student) FullName() string { return s.Name + " " + s.Surname }

// Class model. The (name, section) pair is the display key; it is not
// uniquely enforced.
type Class struct {
	BaseModel
	Name    string `json:"name" gorm:"size:50;not null"`
	Section string `json:"section" gorm:"size:10"`

	// Relationships
	Subjects []Subject `json:"subjects,omitempty" gorm:"foreignKey:ClassID"`
	Students []Student `json:"students,omitempty" gorm:"foreignKey:ClassID"`
}

// DisplayName renders the class the way listings show it.
func (c *Class) DisplayName() string {
	if c.Section != "" {
		return c.Name + " - " + c.Section
	}
	return c.Name
}

// Subject model
type Subject struct {
	BaseModel
	Name    string `json:"name" gorm:"size:100;not null"`
	Code    string `json:"code" gorm:"size:20;not null;uniqueIndex"`
	ClassID *uint  `json:"class_id"`

	// Relationships
	Class    *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Teachers []Teacher `json:"teachers,omitempty" gorm:"many2many:teacher_subjects;"`
}

// StudentAttendance holds one status per student per calendar day. The
// composite unique index is what bulk marking upserts against.
type StudentAttendance struct {
	BaseModel
	StudentID  uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_student_attendance_day"`
	Date       time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_student_attendance_day"`
	Status     AttendanceStatus `json:"status" gorm:"size:10;not null"`
	MarkedByID *uint            `json:"marked_by_id"` // nulled when the marking teacher is deleted
	Remarks    string           `json:"remarks" gorm:"type:text"`

	// Relationships
	Student  Student  `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	MarkedBy *Teacher `json:"marked_by,omitempty" gorm:"foreignKey:MarkedByID"`
}

// TeacherAttendance holds one status per teacher per calendar day.
type TeacherAttendance struct {
	BaseModel
	TeacherID uint             `json:"teacher_id" gorm:"not null;uniqueIndex:idx_teacher_attendance_day"`
	Date      time.Time        `json:"date" gorm:"type:date;not null;uniqueIndex:idx_teacher_attendance_day"`
	Status    AttendanceStatus `json:"status" gorm:"size:10;not null"`
	Remarks   string           `json:"remarks" gorm:"type:text"`

	// Relationships
	Teacher Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// Fee model
type Fee struct {
	BaseModel
	StudentID  uint       `json:"student_id" gorm:"not null"`
	FeeType    string     `json:"fee_type" gorm:"size:50;not null"` // e.g. "Tuition", "Exam", "Library"
	Amount     float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	DueDate    time.Time  `json:"due_date" gorm:"type:date;not null"`
	PaidDate   *time.Time `json:"paid_date"`
	PaidAmount float64    `json:"paid_amount" gorm:"type:decimal(10,2);default:0"`
	Status     string     `json:"status" gorm:"size:20;not null;default:'unpaid'"` // unpaid, partial, paid
	Remarks    string     `json:"remarks" gorm:"type:text"`

	// Relationships
	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// Salary model. One row per teacher per month label.
type Salary struct {
	BaseModel
	TeacherID uint       `json:"teacher_id" gorm:"not null;uniqueIndex:idx_salary_teacher_month"`
	Month     string     `json:"month" gorm:"size:20;not null;uniqueIndex:idx_salary_teacher_month"` // e.g. "January 2024"
	Amount    float64    `json:"amount" gorm:"type:decimal(10,2);not null"`
	PaidDate  *time.Time `json:"paid_date"`
	Status    string     `json:"status" gorm:"size:20;not null;default:'unpaid'"` // unpaid, paid
	Remarks   string     `json:"remarks" gorm:"type:text"`

	// Relationships
	Teacher Teacher `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
}

// ActivityLog model for audit tracking
type ActivityLog struct {
	BaseModel
	ActorID    uint   `json:"actor_id"`
	ActorRole  string `json:"actor_role" gorm:"size:20"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID uint   `json:"resource_id"`
	Details    JSON   `json:"details" gorm:"type:json"`
	RequestID  string `json:"request_id" gorm:"size:64"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`
}
