package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/middleware"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AuthController struct{}

// LoginRequest carries the role claim together with the credentials; the
// role selects which principal table the username is looked up in.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=admin teacher student"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates a principal against the table named by the role claim
// and returns a session token. An unknown username in that table is NotFound;
// a bcrypt mismatch is InvalidCredentials.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fields,
		})
	}

	var (
		id    uint
		name  string
		hash  string
		found bool
	)

	switch req.Role {
	case utils.RoleAdmin:
		var admin models.Admin
		if err := database.DB.Where("username = ?", req.Username).First(&admin).Error; err == nil {
			id, name, hash, found = admin.ID, admin.FullName(), admin.Password, true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
	case utils.RoleTeacher:
		var teacher models.Teacher
		if err := database.DB.Where("username = ?", req.Username).First(&teacher).Error; err == nil {
			id, name, hash, found = teacher.ID, teacher.FullName(), teacher.Password, true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
	case utils.RoleStudent:
		var student models.Student
		if err := database.DB.Where("username = ?", req.Username).First(&student).Error; err == nil {
			id, name, hash, found = student.ID, student.FullName(), student.Password, true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Login failed"})
		}
	}

	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": strings.ToUpper(req.Role[:1]) + req.Role[1:] + " not found",
		})
	}

	if err := utils.CheckPassword(req.Password, hash); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := middleware.GenerateToken(id, req.Role, name)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	middleware.LogActivity(c, "LOGIN", "auth", id, fiber.Map{
		"username": req.Username,
		"role":     req.Role,
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user": fiber.Map{
			"id":   id,
			"role": req.Role,
			"name": name,
		},
	})
}

// Logout invalidates the current token by blacklisting it in Redis until the
// token itself would have expired.
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing authorization header"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid authorization header format"})
	}

	if rc := database.GetRedisClient(); rc != nil {
		ttl := 24 * time.Hour
		if claims, err := middleware.ParseToken(tokenString); err == nil && claims.ExpiresAt != nil {
			if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
				ttl = remaining
			}
		}
		if err := rc.Set(context.Background(), "blacklist:jwt:"+tokenString, "1", ttl).Err(); err != nil {
			// A Redis hiccup must not block logout
			middleware.LogActivity(c, "LOGOUT", "auth", 0, fiber.Map{"error": err.Error()})
		}
	}

	if claims, err := middleware.GetCurrentClaims(c); err == nil {
		middleware.LogActivity(c, "LOGOUT", "auth", claims.PrincipalID, fiber.Map{"role": claims.Role})
	}

	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// GetProfile returns the current principal's profile from its role table
func (ac *AuthController) GetProfile(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	switch claims.Role {
	case utils.RoleAdmin:
		var admin models.Admin
		if err := database.DB.First(&admin, claims.PrincipalID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Admin not found"})
		}
		return c.JSON(fiber.Map{"role": claims.Role, "profile": admin})
	case utils.RoleTeacher:
		var teacher models.Teacher
		if err := database.DB.Preload("Subjects").First(&teacher, claims.PrincipalID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
		}
		return c.JSON(fiber.Map{"role": claims.Role, "profile": teacher})
	default:
		var student models.Student
		if err := database.DB.Preload("Class").First(&student, claims.PrincipalID).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.JSON(fiber.Map{"role": claims.Role, "profile": student})
	}
}

// ChangePassword lets the authenticated principal rotate their own password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	claims, err := middleware.GetCurrentClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var req struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if fields := utils.ValidateStruct(req); fields != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Validation failed", "fields": fields})
	}

	hash, model := currentPasswordHash(claims)
	if model == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Principal not found"})
	}

	if err := utils.CheckPassword(req.CurrentPassword, hash); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Current password is incorrect"})
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	if err := database.DB.Model(model).Update("password", hashed).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update password"})
	}

	middleware.LogActivity(c, "UPDATE", "auth", claims.PrincipalID, fiber.Map{"action": "password_change"})

	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// currentPasswordHash loads the stored hash and a model handle for the
// session principal. The handle carries the primary key for the update.
func currentPasswordHash(claims *middleware.Claims) (string, interface{}) {
	switch claims.Role {
	case utils.RoleAdmin:
		var admin models.Admin
		if err := database.DB.First(&admin, claims.PrincipalID).Error; err != nil {
			return "", nil
		}
		return admin.Password, &admin
	case utils.RoleTeacher:
		var teacher models.Teacher
		if err := database.DB.First(&teacher, claims.PrincipalID).Error; err != nil {
			return "", nil
		}
		return teacher.Password, &teacher
	default:
		var student models.Student
		if err := database.DB.First(&student, claims.PrincipalID).Error; err != nil {
			return "", nil
		}
		return student.Password, &student
	}
}
