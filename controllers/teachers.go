package controllers

import (
	"strconv"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/services"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
)

type TeacherController struct{}

type teacherRequest struct {
	Username      string  `json:"username" validate:"required,min=3,max=50"`
	Password      string  `json:"password"`
	Name          string  `json:"name" validate:"required,max=100"`
	Surname       string  `json:"surname" validate:"required,max=100"`
	Email         string  `json:"email" validate:"required,email"`
	Mobile        string  `json:"mobile" validate:"max=15"`
	DateOfBirth   string  `json:"date_of_birth"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Address       string  `json:"address"`
	EmployeeID    string  `json:"employee_id" validate:"required,max=50"`
	Qualification string  `json:"qualification" validate:"max=200"`
	JoiningDate   string  `json:"joining_date"`
	Experience    string  `json:"experience" validate:"max=50"`
	Salary        float64 `json:"salary"`
	SubjectIDs    []uint  `json:"subject_ids"`
}

// GetTeachers returns all teachers with pagination
func (tc *TeacherController) GetTeachers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	var teachers []models.Teacher
	var total int64

	query := database.DB.Model(&models.Teacher{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR surname LIKE ? OR employee_id LIKE ?", like, like, like)
	}

	query.Count(&total)

	if err := query.Preload("Subjects").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&teachers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}

	return c.JSON(fiber.Map{
		"teachers": teachers,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// GetTeacher returns one teacher with recent attendance and salary history
func (tc *TeacherController) GetTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}

	var teacher models.Teacher
	if err := database.DB.Preload("Subjects").First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var attendances []models.TeacherAttendance
	database.DB.Where("teacher_id = ?", teacher.ID).Order("date DESC").Limit(30).Find(&attendances)

	var salaries []models.Salary
	database.DB.Where("teacher_id = ?", teacher.ID).Order("created_at DESC").Find(&salaries)

	return c.JSON(fiber.Map{
		"teacher":     teacher,
		"attendances": attendances,
		"salaries":    salaries,
	})
}

// CreateTeacher creates a new teacher. Username, email, and employee_id are
// checked for uniqueness before anything is written.
func (tc *TeacherController) CreateTeacher(c *fiber.Ctx) error {
	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password is required"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	if msg := teacherUniqueConflict(req, 0); msg != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	teacher := models.Teacher{
		Username:      req.Username,
		Password:      hashed,
		Name:          req.Name,
		Surname:       req.Surname,
		Email:         req.Email,
		Mobile:        req.Mobile,
		Gender:        req.Gender,
		Address:       req.Address,
		EmployeeID:    req.EmployeeID,
		Qualification: req.Qualification,
		Experience:    req.Experience,
		Salary:        req.Salary,
	}
	if d, ok := optionalDate(req.DateOfBirth); ok {
		teacher.DateOfBirth = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date_of_birth"})
	}
	if d, ok := optionalDate(req.JoiningDate); ok {
		teacher.JoiningDate = d
	} else {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid joining_date"})
	}

	if err := database.DB.Create(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	if len(req.SubjectIDs) > 0 {
		var subjects []models.Subject
		if err := database.DB.Where("id IN ?", req.SubjectIDs).Find(&subjects).Error; err == nil {
			database.DB.Model(&teacher).Association("Subjects").Replace(subjects)
		}
	}

	middleware.LogActivity(c, "CREATE", "teachers", teacher.ID, fiber.Map{
		"username":    teacher.Username,
		"employee_id": teacher.EmployeeID,
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Teacher created successfully",
		"teacher": teacher,
	})
}

// UpdateTeacher updates a teacher. The password is re-hashed only when a new
// one is supplied.
func (tc *TeacherController) UpdateTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}

	var teacher models.Teacher
	if err := database.DB.First(&teacher, uint(id)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	if msg := teacherUniqueConflict(req, teacher.ID); msg != "" {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
	}

	teacher.Username = req.Username
	teacher.Name = req.Name
	teacher.Surname = req.Surname
	teacher.Email = req.Email
	teacher.Mobile = req.Mobile
	teacher.Gender = req.Gender
	teacher.Address = req.Address
	teacher.EmployeeID = req.EmployeeID
	teacher.Qualification = req.Qualification
	teacher.Experience = req.Experience
	teacher.Salary = req.Salary
	if d, ok := optionalDate(req.DateOfBirth); ok {
		teacher.DateOfBirth = d
	}
	if d, ok := optionalDate(req.JoiningDate); ok {
		teacher.JoiningDate = d
	}

	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		teacher.Password = hashed
	}

	if err := database.DB.Save(&teacher).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher"})
	}

	if req.SubjectIDs != nil {
		var subjects []models.Subject
		if len(req.SubjectIDs) > 0 {
			database.DB.Where("id IN ?", req.SubjectIDs).Find(&subjects)
		}
		database.DB.Model(&teacher).Association("Subjects").Replace(subjects)
	}

	middleware.LogActivity(c, "UPDATE", "teachers", teacher.ID, fiber.Map{
		"username":    teacher.Username,
		"employee_id": teacher.EmployeeID,
	})

	return c.JSON(fiber.Map{
		"message": "Teacher updated successfully",
		"teacher": teacher,
	})
}

// DeleteTeacher deletes a teacher and cascades their owned records
func (tc *TeacherController) DeleteTeacher(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher ID"})
	}

	if err := services.DeleteTeacher(uint(id)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	middleware.LogActivity(c, "DELETE", "teachers", uint(id), nil)

	return c.JSON(fiber.Map{"message": "Teacher deleted successfully"})
}

// teacherUniqueConflict reports the first unique-field collision, excluding
// the row being edited.
func teacherUniqueConflict(req teacherRequest, selfID uint) string {
	var existing models.Teacher
	if err := database.DB.Where("username = ? AND id <> ?", req.Username, selfID).First(&existing).Error; err == nil {
		return "Username already exists"
	}
	if err := database.DB.Where("email = ? AND id <> ?", req.Email, selfID).First(&existing).Error; err == nil {
		return "Email already exists"
	}
	if err := database.DB.Where("employee_id = ? AND id <> ?", req.EmployeeID, selfID).First(&existing).Error; err == nil {
		return "Employee ID already exists"
	}
	return ""
}

// optionalDate parses an optional YYYY-MM-DD field; ok is false only when a
// value is present but malformed.
func optionalDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	d, err := utils.ParseDate(s)
	if err != nil {
		return nil, false
	}
	return &d, true
}
