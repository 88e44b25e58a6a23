package controllers

import (
	"time"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/services"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct{}

// GetAdminDashboard returns entity counts and recent additions
func (dc *DashboardController) GetAdminDashboard(c *fiber.Ctx) error {
	var totalTeachers, totalStudents, totalClasses, totalSubjects int64
	database.DB.Model(&models.Teacher{}).Count(&totalTeachers)
	database.DB.Model(&models.Student{}).Count(&totalStudents)
	database.DB.Model(&models.Class{}).Count(&totalClasses)
	database.DB.Model(&models.Subject{}).Count(&totalSubjects)

	var recentStudents []models.Student
	database.DB.Order("created_at DESC").Limit(5).Find(&recentStudents)

	var recentTeachers []models.Teacher
	database.DB.Order("created_at DESC").Limit(5).Find(&recentTeachers)

	return c.JSON(fiber.Map{
		"total_teachers":  totalTeachers,
		"total_students":  totalStudents,
		"total_classes":   totalClasses,
		"total_subjects":  totalSubjects,
		"recent_students": recentStudents,
		"recent_teachers": recentTeachers,
	})
}

// GetTeacherDashboard returns the authenticated teacher's month-to-date
// attendance counts and recent records
func (dc *DashboardController) GetTeacherDashboard(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var teacher models.Teacher
	if err := database.DB.Preload("Subjects").First(&teacher, claims.PrincipalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary, err := services.RangeSummary(&models.TeacherAttendance{}, "teacher_id", teacher.ID, monthStart, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance summary"})
	}

	var recent []models.TeacherAttendance
	database.DB.Where("teacher_id = ?", teacher.ID).Order("date DESC").Limit(10).Find(&recent)

	return c.JSON(fiber.Map{
		"teacher":           teacher,
		"summary":           summary,
		"recent_attendance": recent,
	})
}

// GetMyTeacherAttendanceHistory returns the authenticated teacher's own
// records for one month
func (dc *DashboardController) GetMyTeacherAttendanceHistory(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year, month, err := queryMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}

	summary, records, err := services.TeacherMonthlySummary(claims.PrincipalID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"summary":     summary,
		"attendances": records,
	})
}

// GetStudentDashboard returns the authenticated student's month-to-date
// counts, recent records, and pending fees
func (dc *DashboardController) GetStudentDashboard(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var student models.Student
	if err := database.DB.Preload("Class").First(&student, claims.PrincipalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	summary, err := services.RangeSummary(&models.StudentAttendance{}, "student_id", student.ID, monthStart, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance summary"})
	}

	var recent []models.StudentAttendance
	database.DB.Where("student_id = ?", student.ID).Order("date DESC").Limit(10).Find(&recent)

	var pendingFees []models.Fee
	database.DB.Where("student_id = ? AND status = ?", student.ID, models.FeeUnpaid).Find(&pendingFees)

	return c.JSON(fiber.Map{
		"student":           student,
		"summary":           summary,
		"recent_attendance": recent,
		"pending_fees":      pendingFees,
	})
}

// GetMyStudentAttendanceHistory returns the authenticated student's own
// records for one month
func (dc *DashboardController) GetMyStudentAttendanceHistory(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year, month, err := queryMonth(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month"})
	}

	summary, records, err := services.StudentMonthlySummary(claims.PrincipalID, year, month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}

	return c.JSON(fiber.Map{
		"summary":     summary,
		"attendances": records,
	})
}

// GetMyFees returns the authenticated student's fee history
func (dc *DashboardController) GetMyFees(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var fees []models.Fee
	if err := database.DB.Where("student_id = ?", claims.PrincipalID).
		Order("created_at DESC").Find(&fees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fees"})
	}

	return c.JSON(fiber.Map{"fees": fees, "total": len(fees)})
}
