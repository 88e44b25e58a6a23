package controllers

import (
	"strconv"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type SubjectController struct{}

type subjectRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Code    string `json:"code" validate:"required,max=20"`
	ClassID *uint  `json:"class_id"`
}

// GetSubjects returns all subjects with their class and teachers
func (sc *SubjectController) GetSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	query := database.DB.Preload("Class").Preload("Teachers").Order("name")

	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	if err := query.Find(&subjects).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}

	return c.JSON(fiber.Map{"subjects": subjects, "total": len(subjects)})
}

// GetSubject returns a specific subject by ID
func (sc *SubjectController) GetSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	var subject models.Subject
	if err := database.DB.Preload("Class").Preload("Teachers").First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	return c.JSON(fiber.Map{"subject": subject})
}

// CreateSubject creates a new subject. The code must be unique.
func (sc *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	var existing models.Subject
	if err := database.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject code already exists"})
	}

	if req.ClassID != nil {
		var class models.Class
		if err := database.DB.First(&class, *req.ClassID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
		}
	}

	subject := models.Subject{Name: req.Name, Code: req.Code, ClassID: req.ClassID}
	if err := database.DB.Create(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	middleware.LogActivity(c, "CREATE", "subjects", subject.ID, subject)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Subject created successfully",
		"subject": subject,
	})
}

// UpdateSubject updates an existing subject
func (sc *SubjectController) UpdateSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req subjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	// Code stays unique across the other subjects
	var existing models.Subject
	if err := database.DB.Where("code = ? AND id <> ?", req.Code, subject.ID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject code already exists"})
	}

	subject.Name = req.Name
	subject.Code = req.Code
	subject.ClassID = req.ClassID
	if err := database.DB.Save(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	middleware.LogActivity(c, "UPDATE", "subjects", subject.ID, subject)

	return c.JSON(fiber.Map{
		"message": "Subject updated successfully",
		"subject": subject,
	})
}

// DeleteSubject deletes a subject
func (sc *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	if err := database.DB.Select("Teachers").Delete(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}

	middleware.LogActivity(c, "DELETE", "subjects", subject.ID, subject)

	return c.JSON(fiber.Map{"message": "Subject deleted successfully"})
}

// AssignTeachers replaces the set of teachers who teach a subject
func (sc *SubjectController) AssignTeachers(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid subject ID"})
	}

	var subject models.Subject
	if err := database.DB.First(&subject, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req struct {
		TeacherIDs []uint `json:"teacher_ids" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	var teachers []models.Teacher
	if len(req.TeacherIDs) > 0 {
		if err := database.DB.Where("id IN ?", req.TeacherIDs).Find(&teachers).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teachers"})
		}
		if len(teachers) != len(req.TeacherIDs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "One or more teachers not found"})
		}
	}

	if err := database.DB.Model(&subject).Association("Teachers").Replace(teachers); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign teachers"})
	}

	middleware.LogActivity(c, "UPDATE", "subjects", subject.ID, fiber.Map{"teacher_ids": req.TeacherIDs})

	return c.JSON(fiber.Map{"message": "Teachers assigned successfully"})
}
