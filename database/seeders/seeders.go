package seeders

import (
	"log"
	"time"

	"schooladmin_go/database"
	"schooladmin_go/models"
	"schooladmin_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedAdmins()
	SeedClasses()
	SeedSubjects()
	SeedTeachers()
	SeedStudents()

	log.Println("Database seeding completed successfully!")
}

// SeedAdmins seeds the default administrator account
func SeedAdmins() {
	var count int64
	database.DB.Model(&models.Admin{}).Count(&count)
	if count > 0 {
		log.Println("Admins already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("admin123")

	admin := models.Admin{
		Username: "admin",
		Password: hashedPassword,
		Name:     "System",
		Surname:  "Administrator",
		Email:    "admin@school.local",
	}

	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin %s: %v", admin.Username, err)
	}

	log.Println("Admins seeded successfully")
}

// SeedClasses seeds the classes table
func SeedClasses() {
	var count int64
	database.DB.Model(&models.Class{}).Count(&count)
	if count > 0 {
		log.Println("Classes already seeded, skipping...")
		return
	}

	classes := []models.Class{
		{Name: "Grade 9", Section: "A"},
		{Name: "Grade 9", Section: "B"},
		{Name: "Grade 10", Section: "A"},
	}

	for _, class := range classes {
		if err := database.DB.Create(&class).Error; err != nil {
			log.Printf("Error seeding class %s: %v", class.DisplayName(), err)
		}
	}

	log.Println("Classes seeded successfully")
}

// SeedSubjects seeds the subjects table
func SeedSubjects() {
	var count int64
	database.DB.Model(&models.Subject{}).Count(&count)
	if count > 0 {
		log.Println("Subjects already seeded, skipping...")
		return
	}

	classID := func(id uint) *uint { return &id }

	subjects := []models.Subject{
		{Name: "Mathematics", Code: "MATH-9A", ClassID: classID(1)},
		{Name: "English", Code: "ENG-9A", ClassID: classID(1)},
		{Name: "Science", Code: "SCI-9B", ClassID: classID(2)},
		{Name: "History", Code: "HIST-10A", ClassID: classID(3)},
	}

	for _, subject := range subjects {
		if err := database.DB.Create(&subject).Error; err != nil {
			log.Printf("Error seeding subject %s: %v", subject.Code, err)
		}
	}

	log.Println("Subjects seeded successfully")
}

// SeedTeachers seeds the teachers table
func SeedTeachers() {
	var count int64
	database.DB.Model(&models.Teacher{}).Count(&count)
	if count > 0 {
		log.Println("Teachers already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("teacher123")
	joining := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	teachers := []models.Teacher{
		{
			Username:      "jsmith",
			Password:      hashedPassword,
			Name:          "John",
			Surname:       "Smith",
			Email:         "john.smith@school.local",
			Mobile:        "0812345670",
			EmployeeID:    "EMP-001",
			Qualification: "M.Sc. Mathematics",
			JoiningDate:   &joining,
			Experience:    "8 years",
			Salary:        42000,
		},
		{
			Username:      "mjones",
			Password:      hashedPassword,
			Name:          "Mary",
			Surname:       "Jones",
			Email:         "mary.jones@school.local",
			Mobile:        "0812345671",
			EmployeeID:    "EMP-002",
			Qualification: "B.Ed. English",
			JoiningDate:   &joining,
			Experience:    "5 years",
			Salary:        38000,
		},
	}

	for _, teacher := range teachers {
		if err := database.DB.Create(&teacher).Error; err != nil {
			log.Printf("Error seeding teacher %s: %v", teacher.EmployeeID, err)
		}
	}

	log.Println("Teachers seeded successfully")
}

// SeedStudents seeds the students table
func SeedStudents() {
	var count int64
	database.DB.Model(&models.Student{}).Count(&count)
	if count > 0 {
		log.Println("Students already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("student123")
	admitted := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	classID := func(id uint) *uint { return &id }

	students := []models.Student{
		{
			Username:      "alice_w",
			Password:      hashedPassword,
			Name:          "Alice",
			Surname:       "Wilson",
			Email:         "alice.wilson@school.local",
			RollNo:        "9A-01",
			ClassID:       classID(1),
			Section:       "A",
			AdmissionNo:   "ADM-2024-001",
			AdmissionDate: &admitted,
			ParentName:    "Robert Wilson",
			ParentMobile:  "0891234567",
		},
		{
			Username:      "bob_t",
			Password:      hashedPassword,
			Name:          "Bob",
			Surname:       "Taylor",
			Email:         "bob.taylor@school.local",
			RollNo:        "9A-02",
			ClassID:       classID(1),
			Section:       "A",
			AdmissionNo:   "ADM-2024-002",
			AdmissionDate: &admitted,
			ParentName:    "Susan Taylor",
			ParentMobile:  "0891234568",
		},
		{
			Username:      "carol_b",
			Password:      hashedPassword,
			Name:          "Carol",
			Surname:       "Brown",
			Email:         "carol.brown@school.local",
			RollNo:        "9B-01",
			ClassID:       classID(2),
			Section:       "B",
			AdmissionNo:   "ADM-2024-003",
			AdmissionDate: &admitted,
			ParentName:    "David Brown",
			ParentMobile:  "0891234569",
		},
	}

	for _, student := range students {
		if err := database.DB.Create(&student).Error; err != nil {
			log.Printf("Error seeding student %s: %v", student.AdmissionNo, err)
		}
	}

	log.Println("Students seeded successfully")
}
