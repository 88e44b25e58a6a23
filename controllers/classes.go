package controllers

import (
	"strconv"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/services"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type ClassController struct{}

type classRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	Section string `json:"section" validate:"max=10"`
}

// GetClasses returns all classes with their student counts
func (cc *ClassController) GetClasses(c *fiber.Ctx) error {
	var classes []models.Class
	if err := database.DB.Order("name, section").Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch classes",
		})
	}

	type classWithCount struct {
		models.Class
		DisplayName  string `json:"display_name"`
		StudentCount int64  `json:"student_count"`
	}

	out := make([]classWithCount, 0, len(classes))
	for _, cls := range classes {
		var count int64
		database.DB.Model(&models.Student{}).Where("class_id = ?", cls.ID).Count(&count)
		out = append(out, classWithCount{Class: cls, DisplayName: cls.DisplayName(), StudentCount: count})
	}

	return c.JSON(fiber.Map{"classes": out, "total": len(out)})
}

// GetClass returns one class with its subjects and students
func (cc *ClassController) GetClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	var class models.Class
	if err := database.DB.Preload("Subjects").Preload("Students").First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	return c.JSON(fiber.Map{"class": class})
}

// CreateClass creates a new class
func (cc *ClassController) CreateClass(c *fiber.Ctx) error {
	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	class := models.Class{Name: req.Name, Section: req.Section}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	middleware.LogActivity(c, "CREATE", "classes", class.ID, class)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Class created successfully",
		"class":   class,
	})
}

// UpdateClass updates an existing class
func (cc *ClassController) UpdateClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	var class models.Class
	if err := database.DB.First(&class, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req classRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	class.Name = req.Name
	class.Section = req.Section
	if err := database.DB.Save(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	middleware.LogActivity(c, "UPDATE", "classes", class.ID, class)

	return c.JSON(fiber.Map{
		"message": "Class updated successfully",
		"class":   class,
	})
}

// DeleteClass deletes a class. Its students are kept with their class
// reference cleared; its subjects go with it.
func (cc *ClassController) DeleteClass(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class ID"})
	}

	if err := services.DeleteClass(uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	middleware.LogActivity(c, "DELETE", "classes", uint(id), nil)

	return c.JSON(fiber.Map{"message": "Class deleted successfully"})
}
