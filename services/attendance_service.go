package services

import (
	"errors"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"gorm.io/gorm/clause"
)

// MarkEntry is one person's chosen status in a bulk marking batch.
type MarkEntry struct {
	PersonID uint                    `json:"person_id"`
	Status   models.AttendanceStatus `json:"status"`
	Remarks  string                  `json:"remarks"`
}

// SkippedEntry reports a batch entry that could not be recorded.
type SkippedEntry struct {
	PersonID uint   `json:"person_id"`
	Reason   string `json:"reason"`
}

// MarkResult is the partial-failure report for a bulk mark: entries are
// independent, so some can land while others are skipped.
type MarkResult struct {
	Marked  int            `json:"marked"`
	Skipped []SkippedEntry `json:"skipped"`
}

var ErrEmptyBatch = errors.New("attendance batch contains no entries")

// MarkStudentAttendance upserts one status row per (student, date). Existing
// rows are overwritten, including the marking teacher and remarks; entries
// referencing unknown students are skipped and reported back. Duplicate ids
// in one batch are processed in submission order, so the last value wins.
func MarkStudentAttendance(date time.Time, entries []MarkEntry, markedBy *uint) (*MarkResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	known, err := knownIDs(&models.Student{}, entryIDs(entries))
	if err != nil {
		return nil, err
	}

	result := &MarkResult{Skipped: []SkippedEntry{}}
	for _, entry := range entries {
		if !entry.Status.Valid() {
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: "invalid status"})
			continue
		}
		if !known[entry.PersonID] {
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: "student not found"})
			continue
		}

		record := models.StudentAttendance{
			StudentID:  entry.PersonID,
			Date:       date,
			Status:     entry.Status,
			MarkedByID: markedBy,
			Remarks:    entry.Remarks,
		}
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "marked_by_id", "remarks", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			// One failed entry must not block the rest of the batch
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: err.Error()})
			continue
		}
		result.Marked++
	}
	return result, nil
}

// MarkTeacherAttendance is the teacher-ledger variant: no marking teacher,
// same (person, date) upsert semantics.
func MarkTeacherAttendance(date time.Time, entries []MarkEntry) (*MarkResult, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	known, err := knownIDs(&models.Teacher{}, entryIDs(entries))
	if err != nil {
		return nil, err
	}

	result := &MarkResult{Skipped: []SkippedEntry{}}
	for _, entry := range entries {
		if !entry.Status.Valid() {
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: "invalid status"})
			continue
		}
		if !known[entry.PersonID] {
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: "teacher not found"})
			continue
		}

		record := models.TeacherAttendance{
			TeacherID: entry.PersonID,
			Date:      date,
			Status:    entry.Status,
			Remarks:   entry.Remarks,
		}
		err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "teacher_id"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "remarks", "updated_at"}),
		}).Create(&record).Error
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedEntry{PersonID: entry.PersonID, Reason: err.Error()})
			continue
		}
		result.Marked++
	}
	return result, nil
}

// ListStudentAttendance returns the records for one date, optionally narrowed
// to students of one class. Persons with no record that day simply do not
// appear; absence from the result set means "unmarked", not "absent".
func ListStudentAttendance(date time.Time, classID *uint) ([]models.StudentAttendance, error) {
	query := database.DB.Preload("Student").Preload("MarkedBy").
		Where("student_attendances.date = ?", date)
	if classID != nil {
		query = query.Joins("JOIN students ON students.id = student_attendances.student_id").
			Where("students.class_id = ?", *classID)
	}

	var records []models.StudentAttendance
	if err := query.Order("student_attendances.student_id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListTeacherAttendance returns the teacher ledger records for one date.
func ListTeacherAttendance(date time.Time) ([]models.TeacherAttendance, error) {
	var records []models.TeacherAttendance
	err := database.DB.Preload("Teacher").
		Where("date = ?", date).
		Order("teacher_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// MonthlySummary aggregates one person's records for a calendar month.
type MonthlySummary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}

// Total is the number of recorded days in the month.
func (m MonthlySummary) Total() int { return m.Present + m.Absent + m.Late }

// StudentMonthlySummary counts one student's statuses in the given month and
// returns the date-ordered records. A month with no rows yields zero counts
// and an empty list.
func StudentMonthlySummary(studentID uint, year int, month time.Month) (MonthlySummary, []models.StudentAttendance, error) {
	start, end := utils.MonthBounds(year, month)

	var records []models.StudentAttendance
	err := database.DB.
		Where("student_id = ? AND date >= ? AND date < ?", studentID, start, end).
		Order("date").
		Find(&records).Error
	if err != nil {
		return MonthlySummary{}, nil, err
	}
	return summarize(statuses(records)), records, nil
}

// TeacherMonthlySummary is the teacher-ledger variant.
func TeacherMonthlySummary(teacherID uint, year int, month time.Month) (MonthlySummary, []models.TeacherAttendance, error) {
	start, end := utils.MonthBounds(year, month)

	var records []models.TeacherAttendance
	err := database.DB.
		Where("teacher_id = ? AND date >= ? AND date < ?", teacherID, start, end).
		Order("date").
		Find(&records).Error
	if err != nil {
		return MonthlySummary{}, nil, err
	}
	return summarize(teacherStatuses(records)), records, nil
}

// RangeSummary counts one person's statuses over an arbitrary closed date
// range. Dashboards use it for month-to-date figures.
func RangeSummary(ledger interface{}, personColumn string, personID uint, from, to time.Time) (MonthlySummary, error) {
	var rows []struct {
		Status models.AttendanceStatus
		N      int
	}
	err := database.DB.Model(ledger).
		Select("status, COUNT(*) AS n").
		Where(personColumn+" = ? AND date >= ? AND date <= ?", personID, from, to).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return MonthlySummary{}, err
	}

	var summary MonthlySummary
	for _, row := range rows {
		switch row.Status {
		case models.AttendancePresent:
			summary.Present += row.N
		case models.AttendanceAbsent:
			summary.Absent += row.N
		case models.AttendanceLate:
			summary.Late += row.N
		}
	}
	return summary, nil
}

func entryIDs(entries []MarkEntry) []uint {
	ids := make([]uint, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PersonID)
	}
	return ids
}

// knownIDs returns the subset of ids that reference existing rows of model.
func knownIDs(model interface{}, ids []uint) (map[uint]bool, error) {
	var found []uint
	if err := database.DB.Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	known := make(map[uint]bool, len(found))
	for _, id := range found {
		known[id] = true
	}
	return known, nil
}

func statuses(records []models.StudentAttendance) []models.AttendanceStatus {
	out := make([]models.AttendanceStatus, len(records))
	for i, r := range records {
		out[i] = r.Status
	}
	return out
}

func teacherStatuses(records []models.TeacherAttendance) []models.AttendanceStatus {
	out := make([]models.AttendanceStatus, len(records))
	for i, r := range records {
		out[i] = r.Status
	}
	return out
}

func summarize(list []models.AttendanceStatus) MonthlySummary {
	var summary MonthlySummary
	for _, s := range list {
		switch s {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		}
	}
	return summary
}
