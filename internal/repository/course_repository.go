package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/models"
)

type CourseRepository interface {
	Create(course *models.Course) error
	Update(course *models.Course) error
	Delete(id uuid.UUID) error
	GetByID(id uuid.UUID) (*models.Course, error)
	List(orgID *uuid.UUID) ([]*models.Course, error)
	ListPublished() ([]*models.Course, error)

	CountChapters(courseID uuid.UUID) (int64, error)
	CountPurchases(courseID uuid.UUID) (int64, error)
	CountByOrganization(orgID uuid.UUID) (int64, error)
	CountByCreator(memberID uuid.UUID) (int64, error)
}

type courseRepository struct{ db *gorm.DB }

func NewCourseRepository(db *gorm.DB) CourseRepository { return &courseRepository{db: db} }

func orderedChapters(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }
func orderedLessons(db *gorm.DB) *gorm.DB  { return db.Order("position ASC") }

func (r *courseRepository) Create(course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *models.Course) error {
	return r.db.Save(course).Error
}

// Delete удаляет курс вместе с главами и уроками в одной транзакции
func (r *courseRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uuid.UUID
		if err := tx.Model(&models.Chapter{}).Where("course_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}
		if len(chapterIDs) > 0 {
			if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&models.Lesson{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Course{}, "id = ?", id).Error
	})
}

func (r *courseRepository) GetByID(id uuid.UUID) (*models.Course, error) {
	var c models.Course
	err := r.db.Preload("Organization").Preload("CreatedBy").
		Preload("Chapters", orderedChapters).
		Preload("Chapters.Lessons", orderedLessons).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) List(orgID *uuid.UUID) ([]*models.Course, error) {
	q := r.db.Preload("Organization").Preload("CreatedBy").Order("created_at ASC")
	if orgID != nil {
		q = q.Where("organization_id = ?", *orgID)
	}
	var cs []*models.Course
	err := q.Find(&cs).Error
	return cs, err
}

func (r *courseRepository) ListPublished() ([]*models.Course, error) {
	var cs []*models.Course
	err := r.db.Preload("Organization").Preload("CreatedBy").
		Where("is_published = ?", true).Order("created_at ASC").Find(&cs).Error
	return cs, err
}

func (r *courseRepository) CountChapters(courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Chapter{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *courseRepository) CountPurchases(courseID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.CoursePurchase{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

func (r *courseRepository) CountByOrganization(orgID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Where("organization_id = ?", orgID).Count(&count).Error
	return count, err
}

func (r *courseRepository) CountByCreator(memberID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&models.Course{}).Where("created_by_id = ?", memberID).Count(&count).Error
	return count, err
}
