package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type LessonRepository interface {
	Create(lesson *models.Lesson) error
	Update(lesson *models.Lesson) error
	GetByID(id uuid.UUID) (*models.Lesson, error)
	GetInChapter(chapterID, lessonID uuid.UUID) (*models.Lesson, error)
	ListByChapter(chapterID uuid.UUID) ([]*models.Lesson, error)
	MaxOrder(chapterID uuid.UUID) (int, error)
	OrderTaken(chapterID uuid.UUID, order int, exceptID uuid.UUID) (bool, error)
	DeleteAndRenumber(chapterID, lessonID uuid.UUID) error
}

type lessonRepository struct{ db *gorm.DB }

func NewLessonRepository(db *gorm.DB) LessonRepository { return &lessonRepository{db: db} }

func (r *lessonRepository) Create(lesson *models.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) Update(lesson *models.Lesson) error {
	return r.db.Save(lesson).Error
}

func (r *lessonRepository) GetByID(id uuid.UUID) (*models.Lesson, error) {
	var l models.Lesson
	if err := r.db.First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) GetInChapter(chapterID, lessonID uuid.UUID) (*models.Lesson, error) {
	var l models.Lesson
	err := r.db.Where("id = ? AND chapter_id = ?", lessonID, chapterID).First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lessonRepository) ListByChapter(chapterID uuid.UUID) ([]*models.Lesson, error) {
	var ls []*models.Lesson
	err := r.db.Where("chapter_id = ?", chapterID).Order("position ASC").Find(&ls).Error
	return ls, err
}

func (r *lessonRepository) MaxOrder(chapterID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&models.Lesson{}).Where("chapter_id = ?", chapterID).
		Select("MAX(position)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *lessonRepository) OrderTaken(chapterID uuid.UUID, order int, exceptID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&models.Lesson{}).Where("chapter_id = ? AND position = ?", chapterID, order)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// DeleteAndRenumber удаляет урок и закрывает разрыв нумерации внутри главы
func (r *lessonRepository) DeleteAndRenumber(chapterID, lessonID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var l models.Lesson
		if err := tx.Where("id = ? AND chapter_id = ?", lessonID, chapterID).First(&l).Error; err != nil {
			return err
		}
		if err := tx.Delete(&l).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lesson{}).
			Where("chapter_id = ? AND position > ?", chapterID, l.Order).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}
