package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Student представляет ученика платформы
type Student struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ClerkUserID string    `json:"clerkUserId" gorm:"uniqueIndex;not null"` // внешний ID из провайдера идентификации
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Avatar      string    `json:"avatar"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Связи
	Purchases []CoursePurchase `json:"purchases,omitempty" gorm:"foreignKey:StudentID"`
	Progress  []LessonProgress `json:"progress,omitempty" gorm:"foreignKey:StudentID"`
}

// CoursePurchase представляет покупку курса учеником.
// Цена фиксируется на момент покупки и не меняется вместе с курсом.
type CoursePurchase struct {
	ID          uuid.UUID       `json:"id" gorm:"type:text;primary_key"`
	StudentID   uuid.UUID       `json:"studentId" gorm:"type:text;not null;uniqueIndex:idx_purchase_student_course,priority:1"`
	CourseID    uuid.UUID       `json:"courseId" gorm:"type:text;not null;uniqueIndex:idx_purchase_student_course,priority:2"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	PurchasedAt time.Time       `json:"purchasedAt"`
	IsActive    bool            `json:"isActive" gorm:"default:true"`

	// Связи
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Course  *Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// LessonProgress представляет прогресс ученика по уроку, одна запись на пару (ученик, урок)
type LessonProgress struct {
	ID          uuid.UUID  `json:"id" gorm:"type:text;primary_key"`
	StudentID   uuid.UUID  `json:"studentId" gorm:"type:text;not null;uniqueIndex:idx_progress_student_lesson,priority:1"`
	LessonID    uuid.UUID  `json:"lessonId" gorm:"type:text;not null;uniqueIndex:idx_progress_student_lesson,priority:2"`
	IsCompleted bool       `json:"isCompleted" gorm:"default:false"`
	WatchedAt   *time.Time `json:"watchedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	// Связи
	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Lesson  *Lesson  `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
}

func (LessonProgress) TableName() string { return "lesson_progress" }

