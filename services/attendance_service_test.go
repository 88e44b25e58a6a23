package services

import (
	"errors"
	"testing"
	"time"

	"schooladmin_go/models"
)

func TestMarkStudentAttendanceUpsert(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")

	date := day(2024, time.March, 15)

	result, err := MarkStudentAttendance(date, []MarkEntry{
		{PersonID: student.ID, Status: models.AttendancePresent},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Marked != 1 || len(result.Skipped) != 0 {
		t.Fatalf("expected 1 marked, got %+v", result)
	}

	// Re-marking the same day overwrites instead of adding a second row
	result, err = MarkStudentAttendance(date, []MarkEntry{
		{PersonID: student.ID, Status: models.AttendanceAbsent, Remarks: "sick"},
	}, &teacher.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Marked != 1 {
		t.Fatalf("expected 1 marked on re-mark, got %+v", result)
	}

	var records []models.StudentAttendance
	if err := db.Where("student_id = ?", student.ID).Find(&records).Error; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected a single row after double mark, got %d", len(records))
	}
	if records[0].Status != models.AttendanceAbsent {
		t.Fatalf("expected last status to win, got %s", records[0].Status)
	}
	if records[0].Remarks != "sick" {
		t.Fatalf("expected remarks overwritten, got %q", records[0].Remarks)
	}
	if records[0].MarkedByID == nil || *records[0].MarkedByID != teacher.ID {
		t.Fatalf("expected marked_by %d, got %v", teacher.ID, records[0].MarkedByID)
	}
}

func TestMarkStudentAttendanceDifferentDates(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	for _, d := range []int{10, 11, 12} {
		if _, err := MarkStudentAttendance(day(2024, time.March, d), []MarkEntry{
			{PersonID: student.ID, Status: models.AttendancePresent},
		}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	var count int64
	db.Model(&models.StudentAttendance{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 3 {
		t.Fatalf("expected one row per date, got %d", count)
	}
}

func TestMarkStudentAttendanceDuplicateInBatch(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestStudent(t, db, "alice", "ADM-001", nil)
	bob := createTestStudent(t, db, "bob", "ADM-002", nil)

	date := day(2024, time.March, 15)

	// Duplicate ids in one batch resolve in submission order
	result, err := MarkStudentAttendance(date, []MarkEntry{
		{PersonID: alice.ID, Status: models.AttendancePresent},
		{PersonID: bob.ID, Status: models.AttendanceAbsent},
		{PersonID: alice.ID, Status: models.AttendanceLate},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Skipped) != 0 {
		t.Fatalf("expected nothing skipped, got %+v", result.Skipped)
	}

	records, err := ListStudentAttendance(date, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected one row per student, got %d", len(records))
	}

	byStudent := map[uint]models.AttendanceStatus{}
	for _, r := range records {
		byStudent[r.StudentID] = r.Status
	}
	if byStudent[alice.ID] != models.AttendanceLate {
		t.Fatalf("expected last value to win for duplicate id, got %s", byStudent[alice.ID])
	}
	if byStudent[bob.ID] != models.AttendanceAbsent {
		t.Fatalf("expected bob absent, got %s", byStudent[bob.ID])
	}
}

func TestMarkStudentAttendanceFutureDate(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	// No temporal validation: marking ahead of time is allowed
	future := time.Now().UTC().AddDate(1, 0, 0).Truncate(24 * time.Hour)

	result, err := MarkStudentAttendance(future, []MarkEntry{
		{PersonID: student.ID, Status: models.AttendancePresent},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Marked != 1 || len(result.Skipped) != 0 {
		t.Fatalf("expected future date accepted, got %+v", result)
	}

	var count int64
	db.Model(&models.StudentAttendance{}).Where("student_id = ?", student.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}
}

func TestMarkStudentAttendanceReportsSkipped(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	result, err := MarkStudentAttendance(day(2024, time.March, 15), []MarkEntry{
		{PersonID: student.ID, Status: models.AttendancePresent},
		{PersonID: 9999, Status: models.AttendancePresent},
		{PersonID: student.ID + 1, Status: "vacation"},
	}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Marked != 1 {
		t.Fatalf("expected 1 marked, got %d", result.Marked)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("expected 2 skipped, got %+v", result.Skipped)
	}

	reasons := map[uint]string{}
	for _, s := range result.Skipped {
		reasons[s.PersonID] = s.Reason
	}
	if reasons[9999] != "student not found" {
		t.Fatalf("unexpected reason for unknown id: %q", reasons[9999])
	}
	if reasons[student.ID+1] != "invalid status" {
		t.Fatalf("unexpected reason for bad status: %q", reasons[student.ID+1])
	}
}

func TestMarkAttendanceEmptyBatch(t *testing.T) {
	setupTestDB(t)

	if _, err := MarkStudentAttendance(day(2024, time.March, 15), nil, nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
	if _, err := MarkTeacherAttendance(day(2024, time.March, 15), nil); !errors.Is(err, ErrEmptyBatch) {
		t.Fatalf("expected ErrEmptyBatch, got %v", err)
	}
}

func TestMarkTeacherAttendanceUpsert(t *testing.T) {
	db := setupTestDB(t)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")

	date := day(2024, time.March, 15)

	if _, err := MarkTeacherAttendance(date, []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendanceLate},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := MarkTeacherAttendance(date, []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendancePresent},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var records []models.TeacherAttendance
	db.Where("teacher_id = ?", teacher.ID).Find(&records)
	if len(records) != 1 {
		t.Fatalf("expected a single row, got %d", len(records))
	}
	if records[0].Status != models.AttendancePresent {
		t.Fatalf("expected last status to win, got %s", records[0].Status)
	}
}

func TestListStudentAttendanceClassFilter(t *testing.T) {
	db := setupTestDB(t)
	classA := createTestClass(t, db, "Grade 9", "A")
	classB := createTestClass(t, db, "Grade 9", "B")
	alice := createTestStudent(t, db, "alice", "ADM-001", &classA.ID)
	bob := createTestStudent(t, db, "bob", "ADM-002", &classB.ID)

	date := day(2024, time.March, 15)
	if _, err := MarkStudentAttendance(date, []MarkEntry{
		{PersonID: alice.ID, Status: models.AttendancePresent},
		{PersonID: bob.ID, Status: models.AttendanceAbsent},
	}, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all, err := ListStudentAttendance(date, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 records without filter, got %d", len(all))
	}

	onlyA, err := ListStudentAttendance(date, &classA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onlyA) != 1 || onlyA[0].StudentID != alice.ID {
		t.Fatalf("expected only class A records, got %+v", onlyA)
	}

	// A date with no marks yields an empty list, not an error
	empty, err := ListStudentAttendance(day(2024, time.March, 16), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no records, got %d", len(empty))
	}
}

func TestStudentMonthlySummary(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	marks := []struct {
		date   time.Time
		status models.AttendanceStatus
	}{
		{day(2024, time.March, 1), models.AttendancePresent},
		{day(2024, time.March, 4), models.AttendancePresent},
		{day(2024, time.March, 5), models.AttendanceAbsent},
		{day(2024, time.March, 6), models.AttendanceLate},
		// Neighboring months must not leak into the count
		{day(2024, time.February, 29), models.AttendanceAbsent},
		{day(2024, time.April, 1), models.AttendancePresent},
	}
	for _, m := range marks {
		if _, err := MarkStudentAttendance(m.date, []MarkEntry{
			{PersonID: student.ID, Status: m.status},
		}, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summary, records, err := StudentMonthlySummary(student.ID, 2024, time.March)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Present != 2 || summary.Absent != 1 || summary.Late != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Total() != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total())
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Date.Before(records[i-1].Date) {
			t.Fatalf("records not date-ordered: %v before %v", records[i].Date, records[i-1].Date)
		}
	}
}

func TestStudentMonthlySummaryEmptyMonth(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)

	summary, records, err := StudentMonthlySummary(student.ID, 2024, time.July)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Present != 0 || summary.Absent != 0 || summary.Late != 0 {
		t.Fatalf("expected zero counts, got %+v", summary)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestTeacherMonthlySummary(t *testing.T) {
	db := setupTestDB(t)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")

	for _, d := range []int{1, 2, 3} {
		if _, err := MarkTeacherAttendance(day(2024, time.May, d), []MarkEntry{
			{PersonID: teacher.ID, Status: models.AttendancePresent},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	summary, records, err := TeacherMonthlySummary(teacher.ID, 2024, time.May)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Present != 3 || summary.Total() != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
}

func TestRangeSummary(t *testing.T) {
	db := setupTestDB(t)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")

	if _, err := MarkTeacherAttendance(day(2024, time.May, 1), []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendancePresent},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := MarkTeacherAttendance(day(2024, time.May, 10), []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendanceAbsent},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Closed range: both endpoints count
	summary, err := RangeSummary(&models.TeacherAttendance{}, "teacher_id", teacher.ID,
		day(2024, time.May, 1), day(2024, time.May, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Present != 1 || summary.Absent != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	summary, err = RangeSummary(&models.TeacherAttendance{}, "teacher_id", teacher.ID,
		day(2024, time.May, 2), day(2024, time.May, 9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total() != 0 {
		t.Fatalf("expected empty range, got %+v", summary)
	}
}
