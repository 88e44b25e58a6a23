package controllers

import (
	"strconv"
	"time"

	"schooladmin_go/middleware"
	"schooladmin_go/services"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct{}

type markRequest struct {
	Date    string               `json:"date" validate:"required"`
	Entries []services.MarkEntry `json:"entries" validate:"required"`
}

// GetStudentAttendance lists the student ledger for one date, optionally
// narrowed to a class. Students without a record that day are not reported.
func (ac *AttendanceController) GetStudentAttendance(c *fiber.Ctx) error {
	date, err := queryDate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	var classID *uint
	if raw := c.Query("class_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
		}
		id := uint(parsed)
		classID = &id
	}

	records, err := services.ListStudentAttendance(date, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":        date.Format("2006-01-02"),
		"attendances": records,
		"total":       len(records),
	})
}

// MarkStudentAttendance bulk-upserts the student ledger for one date. When a
// teacher session marks, the records carry that teacher as marked_by.
func (ac *AttendanceController) MarkStudentAttendance(c *fiber.Ctx) error {
	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	var markedBy *uint
	if claims, err := middleware.GetCurrentClaims(c); err == nil && claims.Role == utils.RoleTeacher {
		id := claims.PrincipalID
		markedBy = &id
	}

	result, err := services.MarkStudentAttendance(date, req.Entries, markedBy)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	middleware.LogActivity(c, "CREATE", "student_attendance", 0, fiber.Map{
		"date":    req.Date,
		"marked":  result.Marked,
		"skipped": len(result.Skipped),
	})

	return c.JSON(fiber.Map{
		"message": "Attendance marked successfully",
		"result":  result,
	})
}

// GetTeacherAttendance lists the teacher ledger for one date
func (ac *AttendanceController) GetTeacherAttendance(c *fiber.Ctx) error {
	date, err := queryDate(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	records, err := services.ListTeacherAttendance(date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"date":        date.Format("2006-01-02"),
		"attendances": records,
		"total":       len(records),
	})
}

// MarkTeacherAttendance bulk-upserts the teacher ledger for one date
func (ac *AttendanceController) MarkTeacherAttendance(c *fiber.Ctx) error {
	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date"})
	}

	result, err := services.MarkTeacherAttendance(date, req.Entries)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	middleware.LogActivity(c, "CREATE", "teacher_attendance", 0, fiber.Map{
		"date":    req.Date,
		"marked":  result.Marked,
		"skipped": len(result.Skipped),
	})

	return c.JSON(fiber.Map{
		"message": "Teacher attendance marked successfully",
		"result":  result,
	})
}

// GetStudentMonthlySummary returns one student's counts and records for a
// month. A month with no rows yields zero counts, not an error.
func (ac *AttendanceController) GetStudentMonthlySummary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	year, month, err := queryMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}

	summary, records, err := services.StudentMonthlySummary(uint(id), year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch summary"})
	}

	return c.JSON(fiber.Map{
		"summary":     summary,
		"attendances": records,
	})
}

// GetTeacherMonthlySummary returns one teacher's counts and records for a month
func (ac *AttendanceController) GetTeacherMonthlySummary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}

	year, month, err := queryMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}

	summary, records, err := services.TeacherMonthlySummary(uint(id), year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch summary"})
	}

	return c.JSON(fiber.Map{
		"summary":     summary,
		"attendances": records,
	})
}

// ExportAttendanceReport streams one month of both ledgers as an XLSX workbook
func (ac *AttendanceController) ExportAttendanceReport(c *fiber.Ctx) error {
	year, month, err := queryMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}

	var classID *uint
	if raw := c.Query("class_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
		}
		id := uint(parsed)
		classID = &id
	}

	workbook, err := services.BuildAttendanceWorkbook(year, month, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build report"})
	}

	buf, err := workbook.WriteToBuffer()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to encode report"})
	}

	filename := services.AttendanceReportFilename(year, month)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}

// queryDate reads the ?date= selector, defaulting to today.
func queryDate(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		raw = time.Now().UTC().Format("2006-01-02")
	}
	return utils.ParseDate(raw)
}

// queryMonth reads the ?month=YYYY-MM selector, defaulting to the current month.
func queryMonth(c *fiber.Ctx) (int, time.Month, error) {
	raw := c.Query("month")
	if raw == "" {
		now := time.Now().UTC()
		return now.Year(), now.Month(), nil
	}
	return utils.ParseMonth(raw)
}
