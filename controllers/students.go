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

type StudentController struct{}

type studentRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=50"`
	Password      string `json:"password"`
	Name          string `json:"name" validate:"required,max=100"`
	Surname       string `json:"surname" validate:"required,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Mobile        string `json:"mobile" validate:"max=15"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender" validate:"omitempty,oneof=male female other"`
	RollNo        string `json:"roll_no" validate:"max=20"`
	Address       string `json:"address"`
	ClassID       *uint  `json:"class_id"`
	Section       string `json:"section" validate:"max=10"`
	AdmissionNo   string `json:"admission_no" validate:"required,max=50"`
	AdmissionDate string `json:"admission_date"`
	ParentName    string `json:"parent_name" validate:"max=100"`
	ParentMobile  string `json:"parent_mobile" validate:"max=15"`
	ParentEmail   string `json:"parent_email" validate:"omitempty,email"`
}

// GetStudents returns all students with pagination and an optional class filter
func (sc *StudentController) GetStudents(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var students []models.Student
	var total int64

	query := database.DB.Model(&models.Student{})
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR surname LIKE ? OR admission_no LIKE ?", like, like, like)
	}

	query.Count(&total)

	if err := query.Preload("Class").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetStudent returns one student with recent attendance and fee history
func (sc *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student models.Student
	if err := database.DB.Preload("Class").First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var attendances []models.StudentAttendance
	database.DB.Preload("MarkedBy").Where("student_id = ?", student.ID).
		Order("date DESC").Limit(30).Find(&attendances)

	var fees []models.Fee
	database.DB.Where("student_id = ?", student.ID).Order("created_at DESC").Find(&fees)

	return c.JSON(fiber.Map{
		"student":     student,
		"attendances": attendances,
		"fees":        fees,
	})
}

// CreateStudent creates a new student
func (sc *StudentController) CreateStudent(c *fiber.Ctx) error {
	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password is required"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	if msg := studentUniqueConflict(req, 0); msg != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
	}

	if req.ClassID != nil {
		var class models.Class
		if err := database.DB.First(&class, *req.ClassID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	student := models.Student{
		Username:     req.Username,
		Password:     hashed,
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		Mobile:       req.Mobile,
		Gender:       req.Gender,
		RollNo:       req.RollNo,
		Address:      req.Address,
		ClassID:      req.ClassID,
		Section:      req.Section,
		AdmissionNo:  req.AdmissionNo,
		ParentName:   req.ParentName,
		ParentMobile: req.ParentMobile,
		ParentEmail:  req.ParentEmail,
	}
	if d, ok := optionalDate(req.DateOfBirth); ok {
		student.DateOfBirth = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date_of_birth"})
	}
	if d, ok := optionalDate(req.AdmissionDate); ok {
		student.AdmissionDate = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid admission_date"})
	}

	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	middleware.LogActivity(c, "CREATE", "students", student.ID, fiber.Map{
		"username":     student.Username,
		"admission_no": student.AdmissionNo,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Student created successfully",
		"student": student,
	})
}

// UpdateStudent updates a student. The password is re-hashed only when a new
// one is supplied.
func (sc *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	var student models.Student
	if err := database.DB.First(&student, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	var req studentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	if msg := studentUniqueConflict(req, student.ID); msg != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
	}

	if req.ClassID != nil {
		var class models.Class
		if err := database.DB.First(&class, *req.ClassID).Error; err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
		}
	}

	student.Username = req.Username
	student.Name = req.Name
	student.Surname = req.Surname
	student.Email = req.Email
	student.Mobile = req.Mobile
	student.Gender = req.Gender
	student.RollNo = req.RollNo
	student.Address = req.Address
	student.ClassID = req.ClassID
	student.Section = req.Section
	student.AdmissionNo = req.AdmissionNo
	student.ParentName = req.ParentName
	student.ParentMobile = req.ParentMobile
	student.ParentEmail = req.ParentEmail
	if d, ok := optionalDate(req.DateOfBirth); ok {
		student.DateOfBirth = d
	}
	if d, ok := optionalDate(req.AdmissionDate); ok {
		student.AdmissionDate = d
	}

	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		student.Password = hashed
	}

	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	middleware.LogActivity(c, "UPDATE", "students", student.ID, fiber.Map{
		"username":     student.Username,
		"admission_no": student.AdmissionNo,
	})

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

// DeleteStudent deletes a student and cascades their attendance and fees
func (sc *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student ID"})
	}

	if err := services.DeleteStudent(uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	middleware.LogActivity(c, "DELETE", "students", uint(id), nil)

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

func studentUniqueConflict(req studentRequest, selfID uint) string {
	var existing models.Student
	if err := database.DB.Where("username = ? AND id <> ?", req.Username, selfID).First(&existing).Error; err == nil {
		return "Username already exists"
	}
	if err := database.DB.Where("email = ? AND id <> ?", req.Email, selfID).First(&existing).Error; err == nil {
		return "Email already exists"
	}
	if err := database.DB.Where("admission_no = ? AND id <> ?", req.AdmissionNo, selfID).First(&existing).Error; err == nil {
		return "Admission number already exists"
	}
	return ""
}
