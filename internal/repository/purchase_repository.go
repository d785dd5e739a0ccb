package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type PurchaseRepository interface {
	Create(purchase *models.CoursePurchase) error
	GetByStudentAndCourse(studentID, courseID uuid.UUID) (*models.CoursePurchase, error)
	ListByStudent(studentID uuid.UUID) ([]*models.CoursePurchase, error)
	ListByCourse(courseID uuid.UUID) ([]*models.CoursePurchase, error)
}

type purchaseRepository struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepository{db: db} }

func (r *purchaseRepository) Create(purchase *models.CoursePurchase) error {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	if purchase.PurchasedAt.IsZero() {
		purchase.PurchasedAt = time.Now()
	}
	return r.db.Create(purchase).Error
}

func (r *purchaseRepository) GetByStudentAndCourse(studentID, courseID uuid.UUID) (*models.CoursePurchase, error) {
	var p models.CoursePurchase
	err := r.db.Where("student_id = ? AND course_id = ? AND is_active = ?", studentID, courseID, true).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) ListByStudent(studentID uuid.UUID) ([]*models.CoursePurchase, error) {
	var ps []*models.CoursePurchase
	err := r.db.Preload("Course.Organization").
		Where("student_id = ?", studentID).Order("purchased_at DESC").Find(&ps).Error
	return ps, err
}

func (r *purchaseRepository) ListByCourse(courseID uuid.UUID) ([]*models.CoursePurchase, error) {
	var ps []*models.CoursePurchase
	err := r.db.Preload("Student").
		Where("course_id = ?", courseID).Order("purchased_at DESC").Find(&ps).Error
	return ps, err
}
