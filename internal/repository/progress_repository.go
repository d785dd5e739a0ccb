package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type ProgressRepository interface {
	Create(progress *models.LessonProgress) error
	Update(progress *models.LessonProgress) error
	GetByStudentAndLesson(studentID, lessonID uuid.UUID) (*models.LessonProgress, error)
	ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error)
}

type progressRepository struct{ db *gorm.DB }

func NewProgressRepository(db *gorm.DB) ProgressRepository { return &progressRepository{db: db} }

func (r *progressRepository) Create(progress *models.LessonProgress) error {
	if progress.ID == uuid.Nil {
		progress.ID = uuid.New()
	}
	return r.db.Create(progress).Error
}

func (r *progressRepository) Update(progress *models.LessonProgress) error {
	return r.db.Save(progress).Error
}

func (r *progressRepository) GetByStudentAndLesson(studentID, lessonID uuid.UUID) (*models.LessonProgress, error) {
	var p models.LessonProgress
	err := r.db.Where("student_id = ? AND lesson_id = ?", studentID, lessonID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) ListByStudent(studentID uuid.UUID) ([]*models.LessonProgress, error) {
	var ps []*models.LessonProgress
	err := r.db.Preload("Lesson.Chapter").
		Where("student_id = ?", studentID).Order("updated_at DESC").Find(&ps).Error
	return ps, err
}
