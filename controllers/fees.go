package controllers

import (
	"strconv"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type FeeController struct{}

type feeRequest struct {
	StudentID  uint    `json:"student_id" validate:"required"`
	FeeType    string  `json:"fee_type" validate:"required,max=50"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	DueDate    string  `json:"due_date" validate:"required"`
	PaidDate   string  `json:"paid_date"`
	PaidAmount float64 `json:"paid_amount" validate:"gte=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=unpaid partial paid"`
	Remarks    string  `json:"remarks"`
}

// GetFees returns all fee records with pagination
func (fc *FeeController) GetFees(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var fees []models.Fee
	var total int64

	query := database.DB.Model(&models.Fee{})
	if studentID := c.Query("student_id"); studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Count(&total)

	if err := query.Preload("Student").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&fees).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch fees"})
	}

	return c.JSON(fiber.Map{
		"fees": fees,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// CreateFee creates a fee record. Status is whatever the operator supplies;
// it is not derived from the paid amount.
func (fc *FeeController) CreateFee(c *fiber.Ctx) error {
	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	var student models.Student
	if err := database.DB.First(&student, req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Student not found"})
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due_date"})
	}

	status := req.Status
	if status == "" {
		status = models.FeeUnpaid
	}

	fee := models.Fee{
		StudentID:  req.StudentID,
		FeeType:    req.FeeType,
		Amount:     req.Amount,
		DueDate:    dueDate,
		PaidAmount: req.PaidAmount,
		Status:     status,
		Remarks:    req.Remarks,
	}
	if d, ok := optionalDate(req.PaidDate); ok {
		fee.PaidDate = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid paid_date"})
	}

	if err := database.DB.Create(&fee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create fee"})
	}

	middleware.LogActivity(c, "CREATE", "fees", fee.ID, fiber.Map{
		"student_id": fee.StudentID,
		"fee_type":   fee.FeeType,
		"amount":     fee.Amount,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Fee created successfully",
		"fee":     fee,
	})
}

// UpdateFee updates a fee record
func (fc *FeeController) UpdateFee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fee ID"})
	}

	var fee models.Fee
	if err := database.DB.First(&fee, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee not found"})
	}

	var req feeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due_date"})
	}

	fee.FeeType = req.FeeType
	fee.Amount = req.Amount
	fee.DueDate = dueDate
	fee.PaidAmount = req.PaidAmount
	if req.Status != "" {
		fee.Status = req.Status
	}
	fee.Remarks = req.Remarks
	if d, ok := optionalDate(req.PaidDate); ok {
		fee.PaidDate = d
	}

	if err := database.DB.Save(&fee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update fee"})
	}

	middleware.LogActivity(c, "UPDATE", "fees", fee.ID, fiber.Map{"status": fee.Status})

	return c.JSON(fiber.Map{
		"message": "Fee updated successfully",
		"fee":     fee,
	})
}

// DeleteFee deletes a fee record
func (fc *FeeController) DeleteFee(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid fee ID"})
	}

	var fee models.Fee
	if err := database.DB.First(&fee, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Fee not found"})
	}

	if err := database.DB.Delete(&fee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete fee"})
	}

	middleware.LogActivity(c, "DELETE", "fees", fee.ID, nil)

	return c.JSON(fiber.Map{"message": "Fee deleted successfully"})
}
