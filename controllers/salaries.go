package controllers

import (
	"strconv"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type SalaryController struct{}

type salaryRequest struct {
	TeacherID uint    `json:"teacher_id" validate:"required"`
	Month     string  `json:"month" validate:"required,max=20"` // e.g. "January 2024"
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	PaidDate  string  `json:"paid_date"`
	Status    string  `json:"status" validate:"omitempty,oneof=unpaid paid"`
	Remarks   string  `json:"remarks"`
}

// GetSalaries returns all salary records with pagination
func (sc *SalaryController) GetSalaries(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var salaries []models.Salary
	var total int64

	query := database.DB.Model(&models.Salary{})
	if teacherID := c.Query("teacher_id"); teacherID != "" {
		query = query.Where("teacher_id = ?", teacherID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)

	if err := query.Preload("Teacher").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&salaries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch salaries"})
	}

	return c.JSON(fiber.Map{
		"salaries": salaries,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// CreateSalary creates a salary record. One row per (teacher, month).
func (sc *SalaryController) CreateSalary(c *fiber.Ctx) error {
	var req salaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, req.TeacherID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var existing models.Salary
	if err := database.DB.Where("teacher_id = ? AND month = ?", req.TeacherID, req.Month).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Salary for this teacher and month already exists"})
	}

	status := req.Status
	if status == "" {
		status = models.SalaryUnpaid
	}

	salary := models.Salary{
		TeacherID: req.TeacherID,
		Month:     req.Month,
		Amount:    req.Amount,
		Status:    status,
		Remarks:   req.Remarks,
	}
	if d, ok := optionalDate(req.PaidDate); ok {
		salary.PaidDate = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid paid_date"})
	}

	if err := database.DB.Create(&salary).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create salary"})
	}

	middleware.LogActivity(c, "CREATE", "salaries", salary.ID, fiber.Map{
		"teacher_id": salary.TeacherID,
		"month":      salary.Month,
		"amount":     salary.Amount,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Salary created successfully",
		"salary":  salary,
	})
}

// UpdateSalary updates a salary record, keeping (teacher, month) unique
func (sc *SalaryController) UpdateSalary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid salary ID"})
	}

	var salary models.Salary
	if err := database.DB.First(&salary, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salary not found"})
	}

	var req salaryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	var existing models.Salary
	if err := database.DB.Where("teacher_id = ? AND month = ? AND id <> ?", salary.TeacherID, req.Month, salary.ID).
		First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Salary for this teacher and month already exists"})
	}

	salary.Month = req.Month
	salary.Amount = req.Amount
	if req.Status != "" {
		salary.Status = req.Status
	}
	salary.Remarks = req.Remarks
	if d, ok := optionalDate(req.PaidDate); ok {
		salary.PaidDate = d
	}

	if err := database.DB.Save(&salary).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update salary"})
	}

	middleware.LogActivity(c, "UPDATE", "salaries", salary.ID, fiber.Map{"status": salary.Status})

	return c.JSON(fiber.Map{
		"message": "Salary updated successfully",
		"salary":  salary,
	})
}

// DeleteSalary deletes a salary record
func (sc *SalaryController) DeleteSalary(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid salary ID"})
	}

	var salary models.Salary
	if err := database.DB.First(&salary, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salary not found"})
	}

	if err := database.DB.Delete(&salary).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete salary"})
	}

	middleware.LogActivity(c, "DELETE", "salaries", salary.ID, nil)

	return c.JSON(fiber.Map{"message": "Salary deleted successfully"})
}
