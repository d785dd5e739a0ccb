package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type ChapterRepository interface {
	Create(chapter *models.Chapter) error
	Update(chapter *models.Chapter) error
	GetInCourse(courseID, chapterID uuid.UUID) (*models.Chapter, error)
	ListByCourse(courseID uuid.UUID) ([]*models.Chapter, error)
	MaxOrder(courseID uuid.UUID) (int, error)
	OrderTaken(courseID uuid.UUID, order int, exceptID uuid.UUID) (bool, error)
	DeleteAndRenumber(courseID, chapterID uuid.UUID) error
}

type chapterRepository struct{ db *gorm.DB }

func NewChapterRepository(db *gorm.DB) ChapterRepository { return &chapterRepository{db: db} }

func (r *chapterRepository) Create(chapter *models.Chapter) error {
	if chapter.ID == uuid.Nil {
		chapter.ID = uuid.New()
	}
	return r.db.Create(chapter).Error
}

func (r *chapterRepository) Update(chapter *models.Chapter) error {
	return r.db.Save(chapter).Error
}

func (r *chapterRepository) GetInCourse(courseID, chapterID uuid.UUID) (*models.Chapter, error) {
	var ch models.Chapter
	err := r.db.Preload("Lessons", orderedLessons).
		Where("id = ? AND course_id = ?", chapterID, courseID).
		First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *chapterRepository) ListByCourse(courseID uuid.UUID) ([]*models.Chapter, error) {
	var chs []*models.Chapter
	err := r.db.Preload("Lessons", orderedLessons).
		Where("course_id = ?", courseID).Order("position ASC").Find(&chs).Error
	return chs, err
}

func (r *chapterRepository) MaxOrder(courseID uuid.UUID) (int, error) {
	var max *int
	err := r.db.Model(&models.Chapter{}).Where("course_id = ?", courseID).
		Select("MAX(position)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *chapterRepository) OrderTaken(courseID uuid.UUID, order int, exceptID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.Model(&models.Chapter{}).Where("course_id = ? AND position = ?", courseID, order)
	if exceptID != uuid.Nil {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// DeleteAndRenumber удаляет главу с её уроками и закрывает разрыв нумерации
func (r *chapterRepository) DeleteAndRenumber(courseID, chapterID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var ch models.Chapter
		if err := tx.Where("id = ? AND course_id = ?", chapterID, courseID).First(&ch).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", ch.ID).Delete(&models.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&ch).Error; err != nil {
			return err
		}
		return tx.Model(&models.Chapter{}).
			Where("course_id = ? AND position > ?", courseID, ch.Order).
			UpdateColumn("position", gorm.Expr("position - 1")).Error
	})
}
