package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type OrganizationRepository interface {
	Create(org *models.TeacherOrganization) error
	Update(org *models.TeacherOrganization) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.TeacherOrganization, error)
	List() ([]*models.TeacherOrganization, error)
}

type organizationRepository struct{ db *gorm.DB }

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) Create(org *models.TeacherOrganization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	return r.db.Create(org).Error
}

func (r *organizationRepository) Update(org *models.TeacherOrganization) error {
	return r.db.Save(org).Error
}

func (r *organizationRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Участники организации удаляются вместе с ней
		if err := tx.Where("organization_id = ?", id).Delete(&models.TeacherTeamMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TeacherOrganization{}, "id = ?", id).Error
	})
}

func (r *organizationRepository) GetByID(id uuid.UUID) (*models.TeacherOrganization, error) {
	var org models.TeacherOrganization
	err := r.db.Preload("TeamMembers").Preload("Courses").First(&org, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) List() ([]*models.TeacherOrganization, error) {
	var orgs []*models.TeacherOrganization
	err := r.db.Preload("TeamMembers").Order("created_at ASC").Find(&orgs).Error
	return orgs, err
}
