package services

import (
	"testing"
	"time"

	"schooladmin_go/models"
)

func TestBuildAttendanceWorkbook(t *testing.T) {
	db := setupTestDB(t)
	student := createTestStudent(t, db, "alice", "ADM-001", nil)
	teacher := createTestTeacher(t, db, "jsmith", "EMP-001")

	if _, err := MarkStudentAttendance(day(2024, time.March, 5), []MarkEntry{
		{PersonID: student.ID, Status: models.AttendancePresent},
	}, &teacher.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := MarkTeacherAttendance(day(2024, time.March, 5), []MarkEntry{
		{PersonID: teacher.ID, Status: models.AttendanceLate, Remarks: "traffic"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := BuildAttendanceWorkbook(2024, time.March, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Students" || sheets[1] != "Teachers" {
		t.Fatalf("unexpected sheets: %v", sheets)
	}

	name, err := f.GetCellValue("Students", "B2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "Test Student" {
		t.Fatalf("expected student name in row 2, got %q", name)
	}
	status, _ := f.GetCellValue("Students", "C2")
	if status != "present" {
		t.Fatalf("expected status present, got %q", status)
	}
	markedBy, _ := f.GetCellValue("Students", "D2")
	if markedBy != "Test Teacher" {
		t.Fatalf("expected marking teacher, got %q", markedBy)
	}

	remarks, _ := f.GetCellValue("Teachers", "D2")
	if remarks != "traffic" {
		t.Fatalf("expected teacher remarks, got %q", remarks)
	}

	if _, err := f.WriteToBuffer(); err != nil {
		t.Fatalf("workbook failed to encode: %v", err)
	}
}

func TestAttendanceReportFilename(t *testing.T) {
	if got := AttendanceReportFilename(2024, time.March); got != "attendance_2024-03.xlsx" {
		t.Fatalf("unexpected filename: %q", got)
	}
}
