package services

import (
	"errors"
	"testing"
	"time"

	"schooladmin_go/models"

	"gorm.io/gorm"
)

func TestDeleteTeacherCascades(t *testing.T) {
	db := setupTestDB(t)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	subject := &models.Subject{Name: "Mathematics", Code: "MATH-1"}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}
	if err := db.Model(teacher).Association("Subjects").Append(subject); err != nil {
		t.Fatalf("failed to assign subject: %v", err)
	}

	if _, err := MarkTeacherAttendance(day(2024, time.May, 1), []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendancePresent},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := MarkStudentAttendance(day(2024, time.May, 1), []MarkEntry{
		{PersonID: student.ID, Status: models.AttendancePresent},
	}, &teacher.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	salary := &models.Salary{TeacherID: teacher.ID, Month: "May 2024", Amount: 40000}
	if err := db.Create(salary).Error; err != nil {
		t.Fatalf("failed to create salary: %v", err)
	}

	if err := DeleteTeacher(teacher.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := db.First(&models.Teacher{}, teacher.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected teacher gone, got %v", err)
	}

	var count int64
	db.Model(&models.TeacherAttendance{}).Where("teacher_id = ?", teacher.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected teacher attendance removed, found %d", count)
	}
	db.Model(&models.Salary{}).Where("teacher_id = ?", teacher.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected salaries removed, found %d", count)
	}

	// Student records the teacher marked survive with the reference cleared
	var sa models.StudentAttendance
	if err := db.Where("student_id = ?", student.ID).First(&sa).Error; err != nil {
		t.Fatalf("expected student attendance kept: %v", err)
	}
	if sa.MarkedByID != nil {
		t.Fatalf("expected marked_by cleared, got %v", *sa.MarkedByID)
	}

	// The subject itself stays, only the assignment goes
	if err := db.First(&models.Subject{}, subject.ID).Error; err != nil {
		t.Fatalf("expected subject kept: %v", err)
	}
}

func TestDeleteTeacherNotFound(t *testing.T) {
	setupTestDB(t)

	if err := DeleteTeacher(42); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteStudentCascades(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	if _, err := MarkStudentAttendance(day(2024, time.May, 1), []MarkEntry{
		{PersonID: student.ID, Status: models.AttendanceAbsent},
	}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fee := &models.Fee{StudentID: student.ID, FeeType: "Tuition", Amount: 500, DueDate: day(2024, time.May, 31)}
	if err := db.Create(fee).Error; err != nil {
		t.Fatalf("failed to create fee: %v", err)
	}

	if err := DeleteStudent(student.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := db.First(&models.Student{}, student.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected student gone, got %v", err)
	}

	var count int64
	db.Model(&models.StudentAttendance{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected attendance removed, found %d", count)
	}
	db.Model(&models.Fee{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected fees removed, found %d", count)
	}
}

func TestDeleteClassKeepsStudents(t *testing.T) {
	db := setupTestDB(t)
	class := createTestClass(t, db, "Grade 9", "A")
	student := createTestStudent(t, db, "alice", "ADM-001", &class.ID)

	subject := &models.Subject{Name: "Science", Code: "SCI-1", ClassID: &class.ID}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}

	if err := DeleteClass(class.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := db.First(&models.Class{}, class.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected class gone, got %v", err)
	}
	if err := db.First(&models.Subject{}, subject.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected subject gone, got %v", err)
	}

	var kept models.Student
	if err := db.First(&kept, student.ID).Error; err != nil {
		t.Fatalf("expected student kept: %v", err)
	}
	if kept.ClassID != nil {
		t.Fatalf("expected class reference cleared, got %v", *kept.ClassID)
	}
}
