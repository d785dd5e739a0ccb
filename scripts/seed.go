package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

func main() {
	// Подключаемся к базе данных
	db, err := gorm.Open(sqlite.Open("ead.db"), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Автомиграция
	err = db.AutoMigrate(
		&models.TeacherOrganization{},
		&models.TeacherTeamMember{},
		&models.Course{},
		&models.Chapter{},
		&models.Lesson{},
		&models.Student{},
		&models.CoursePurchase{},
		&models.LessonProgress{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now()

	// Создаем тестовую организацию
	org := models.TeacherOrganization{
		ID:          uuid.New(),
		Name:        "Academy of Learning",
		Description: "A sample organization for testing",
		Website:     "https://academy.example.com",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&org).Error; err != nil {
		log.Fatalf("Failed to create organization: %v", err)
	}

	// Создаем тестового преподавателя
	member := models.TeacherTeamMember{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		ClerkUserID:    "user_teacher123",
		Email:          "john@example.com",
		Name:           "John Doe",
		Role:           models.RoleTeacher,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := db.Create(&member).Error; err != nil {
		log.Fatalf("Failed to create team member: %v", err)
	}

	// Создаем тестового ученика
	student := models.Student{
		ID:          uuid.New(),
		ClerkUserID: "user_student123",
		Email:       "jane@example.com",
		Name:        "Jane Smith",
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&student).Error; err != nil {
		log.Fatalf("Failed to create student: %v", err)
	}

	fmt.Println("Database seeded successfully!")
	fmt.Printf("Organization: %s\n", org.ID)
	fmt.Printf("Team member: %s\n", member.ID)
	fmt.Printf("Student: %s\n", student.ID)
}
