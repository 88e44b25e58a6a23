package services

import (
	"fmt"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/xuri/excelize/v2"
)

// BuildAttendanceWorkbook renders one month of both attendance ledgers as an
// XLSX workbook with a sheet per ledger. An optional class id narrows the
// student sheet.
func BuildAttendanceWorkbook(year int, month time.Month, classID *uint) (*excelize.File, error) {
	start, end := utils.MonthBounds(year, month)

	studentQuery := database.DB.Preload("Student").Preload("MarkedBy").
		Where("student_attendances.date >= ? AND student_attendances.date < ?", start, end)
	if classID != nil {
		studentQuery = studentQuery.
			Joins("JOIN students ON students.id = student_attendances.student_id").
			Where("students.class_id = ?", *classID)
	}
	var studentRecords []models.StudentAttendance
	if err := studentQuery.Order("student_attendances.date, student_attendances.student_id").
		Find(&studentRecords).Error; err != nil {
		return nil, err
	}

	var teacherRecords []models.TeacherAttendance
	if err := database.DB.Preload("Teacher").
		Where("date >= ? AND date < ?", start, end).
		Order("date, teacher_id").
		Find(&teacherRecords).Error; err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	studentSheet := "Students"
	f.SetSheetName(f.GetSheetName(0), studentSheet)

	headers := []string{"Date", "Name", "Status", "Marked By", "Remarks"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(studentSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range studentRecords {
		markedBy := ""
		if r.MarkedBy != nil {
			markedBy = r.MarkedBy.FullName()
		}
		row := []interface{}{
			r.Date.Format("2006-01-02"),
			r.Student.FullName(),
			string(r.Status),
			markedBy,
			r.Remarks,
		}
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(studentSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	teacherSheet := "Teachers"
	if _, err := f.NewSheet(teacherSheet); err != nil {
		return nil, err
	}
	for i, h := range []string{"Date", "Name", "Status", "Remarks"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(teacherSheet, cell, h); err != nil {
			return nil, err
		}
	}
	for i, r := range teacherRecords {
		row := []interface{}{
			r.Date.Format("2006-01-02"),
			r.Teacher.FullName(),
			string(r.Status),
			r.Remarks,
		}
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(teacherSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// AttendanceReportFilename names the exported workbook after its month.
func AttendanceReportFilename(year int, month time.Month) string {
	return fmt.Sprintf("attendance_%04d-%02d.xlsx", year, int(month))
}
