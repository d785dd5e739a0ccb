package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type StudentRepository interface {
	Create(student *models.Student) error
	Update(student *models.Student) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Student, error)
	GetByClerkID(clerkUserID string) (*models.Student, error)
	List() ([]*models.Student, error)
	CountPurchases(studentID uuid.UUID) (int64, error)
}

type studentRepository struct{ db *gorm.DB }

func NewStudentRepository(db *gorm.DB) StudentRepository { return &studentRepository{db: db} }

func (r *studentRepository) Create(student *models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	return r.db.Create(student).Error
}

func (r *studentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

func (r *studentRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Student{}, "id = ?", id).Error
}

func (r *studentRepository) GetByID(id uuid.UUID) (*models.Student, error) {
	var s models.Student
	err := r.db.
		Preload("Purchases.Course.Organization").
		Preload("Progress.Lesson.Chapter").
		First(&s, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) GetByClerkID(clerkUserID string) (*models.Student, error) {
	var s models.Student
	err := r.db.
		Preload("Purchases.Course.Organization").
		First(&s, "clerk_user_id = ?", clerkUserID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) List() ([]*models.Student, error) {
	var ss []*models.Student
	err := r.db.Order("created_at ASC").Find(&ss).Error
	return ss, err
}

func (r *studentRepository) CountPurchases(studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CoursePurchase{}).Where("student_id = ?", studentID).Count(&count).Error
	return count, err
}
