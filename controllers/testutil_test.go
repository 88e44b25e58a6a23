package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"schooladmin_go/config"
	"schooladmin_go/database"
	"schooladmin_go/models"
	"schooladmin_go/utils"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest points the shared database handle at a fresh in-memory store and
// installs a throwaway config.
func setupTest(t *testing.T) *gorm.DB {
	t.Helper()

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret:    "test-secret-test-secret",
		JWTExpiresIn: time.Hour,
	}
	t.Cleanup(func() { config.AppConfig = prev })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Admin{},
		&models.Teacher{},
		&models.Student{},
		&models.Class{},
		&models.Subject{},
		&models.StudentAttendance{},
		&models.TeacherAttendance{},
		&models.Fee{},
		&models.Salary{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}

	database.DB = db
	return db
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	req, err := http.NewRequest(method, path, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return hash
}

func testApp() *fiber.App {
	return fiber.New()
}
