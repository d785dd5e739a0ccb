package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Course представляет курс организации
type Course struct {
	ID             uuid.UUID       `json:"id" gorm:"type:text;primary_key"`
	Title          string          `json:"title" gorm:"not null"`
	Description    string          `json:"description"`
	Thumbnail      string          `json:"thumbnail"`
	Price          decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	IsPublished    bool            `json:"isPublished" gorm:"default:false"`
	OrganizationID uuid.UUID       `json:"organizationId" gorm:"type:text;not null;index"`
	CreatedByID    uuid.UUID       `json:"createdById" gorm:"type:text;not null;index"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`

	// Связи
	Organization *TeacherOrganization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	CreatedBy    *TeacherTeamMember   `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	Chapters     []Chapter            `json:"chapters,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Purchases    []CoursePurchase     `json:"purchases,omitempty" gorm:"foreignKey:CourseID"`
}

// Chapter представляет главу курса
type Chapter struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	CourseID    uuid.UUID `json:"courseId" gorm:"type:text;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Order       int       `json:"order" gorm:"column:position;not null"`
	IsPublished bool      `json:"isPublished" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Связи
	Course  *Course  `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE"`
}

// Lesson представляет урок внутри главы
type Lesson struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ChapterID   uuid.UUID `json:"chapterId" gorm:"type:text;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Content     string    `json:"content"`
	VideoURL    string    `json:"videoUrl"`
	Duration    *int      `json:"duration"` // длительность в секундах
	Order       int       `json:"order" gorm:"column:position;not null"`
	IsPublished bool      `json:"isPublished" gorm:"default:false"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Связи
	Chapter *Chapter `json:"chapter,omitempty" gorm:"foreignKey:ChapterID"`
}
