package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type TeamMemberRepository interface {
	Create(member *models.TeacherTeamMember) error
	Update(member *models.TeacherTeamMember) error
	Delete(id uuid.UUID) error
	GetInOrganization(orgID, memberID uuid.UUID) (*models.TeacherTeamMember, error)
	ListByOrganization(orgID uuid.UUID) ([]*models.TeacherTeamMember, error)
}

type teamMemberRepository struct{ db *gorm.DB }

func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) Create(member *models.TeacherTeamMember) error {
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	return r.db.Create(member).Error
}

func (r *teamMemberRepository) Update(member *models.TeacherTeamMember) error {
	return r.db.Save(member).Error
}

func (r *teamMemberRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.TeacherTeamMember{}, "id = ?", id).Error
}

// GetInOrganization ищет участника по составному условию: чужая организация — это not found
func (r *teamMemberRepository) GetInOrganization(orgID, memberID uuid.UUID) (*models.TeacherTeamMember, error) {
	var m models.TeacherTeamMember
	err := r.db.Preload("Organization").Preload("Courses").
		Where("id = ? AND organization_id = ?", memberID, orgID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *teamMemberRepository) ListByOrganization(orgID uuid.UUID) ([]*models.TeacherTeamMember, error) {
	var ms []*models.TeacherTeamMember
	err := r.db.Preload("Organization").Where("organization_id = ?", orgID).Order("created_at ASC").Find(&ms).Error
	return ms, err
}
