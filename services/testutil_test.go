package services

import (
	"testing"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the shared database handle at a fresh in-memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every query on the same in-memory store
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

func createTestClass(t *testing.T, db *gorm.DB, name, section string) *models.Class {
	t.Helper()
	class := &models.Class{Name: name, Section: section}
	if err := db.Create(class).Error; err != nil {
		t.Fatalf("failed to create class: %v", err)
	}
	return class
}

func createTestTeacher(t *testing.T, db *gorm.DB, username, employeeID string) *models.Teacher {
	t.Helper()
	teacher := &models.Teacher{
		Username:   username,
		Password:   "x",
		Name:       "Test",
		Surname:    "Teacher",
		Email:      username + "@school.local",
		EmployeeID: employeeID,
	}
	if err := db.Create(teacher).Error; err != nil {
		t.Fatalf("failed to create teacher: %v", err)
	}
	return teacher
}

func createTestStudent(t *testing.T, db *gorm.DB, username, admissionNo string, classID *uint) *models.Student {
	t.Helper()
	student := &models.Student{
		Username:    username,
		Password:    "x",
		Name:        "Test",
		Surname:     "Student",
		Email:       username + "@school.local",
		ClassID:     classID,
		AdmissionNo: admissionNo,
	}
	if err := db.Create(student).Error; err != nil {
		t.Fatalf("failed to create student: %v", err)
	}
	return student
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
