package models

import (
	"time"

	"github.com/google/uuid"
)

// TeacherRole определяет роли участников организации
type TeacherRole string

const (
	RoleOwner     TeacherRole = "OWNER"
	RoleAdmin     TeacherRole = "ADMIN"
	RoleTeacher   TeacherRole = "TEACHER"
	RoleAssistant TeacherRole = "ASSISTANT"
)

// IsValid проверяет, что роль входит в список допустимых
func (r TeacherRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleTeacher, RoleAssistant:
		return true
	}
	return false
}

// TeacherOrganization представляет обучающую организацию
type TeacherOrganization struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Website     string    `json:"website"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Связи
	TeamMembers []TeacherTeamMember `json:"teamMembers,omitempty" gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE"`
	Courses     []Course            `json:"courses,omitempty" gorm:"foreignKey:OrganizationID"`
}

// TeacherTeamMember представляет участника команды организации
type TeacherTeamMember struct {
	ID             uuid.UUID   `json:"id" gorm:"type:text;primary_key"`
	OrganizationID uuid.UUID   `json:"organizationId" gorm:"type:text;not null;index"`
	ClerkUserID    string      `json:"clerkUserId" gorm:"not null"` // внешний ID из провайдера идентификации
	Email          string      `json:"email" gorm:"uniqueIndex;not null"`
	Name           string      `json:"name" gorm:"not null"`
	Role           TeacherRole `json:"role" gorm:"default:'TEACHER'"`
	IsActive       bool        `json:"isActive" gorm:"default:true"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`

	// Связи
	Organization *TeacherOrganization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
	Courses      []Course             `json:"courses,omitempty" gorm:"foreignKey:CreatedByID"`
}
