package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Calebbuffleben/EAD/internal/models"
	"github.com/Calebbuffleben/EAD/internal/repository"
)

type CreateStudentInput struct {
	ClerkUserID string `json:"clerkUserId" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Avatar      string `json:"avatar" binding:"omitempty,url"`
}

type UpdateStudentInput struct {
	ClerkUserID *string `json:"clerkUserId" binding:"omitempty,min=1"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Avatar      *string `json:"avatar" binding:"omitempty,url"`
	IsActive    *bool   `json:"isActive"`
}

type StudentService interface {
	ListStudents() ([]*StudentListItem, error)
	GetStudent(id uuid.UUID) (*StudentDetail, error)
	GetStudentByClerkID(clerkUserID string) (*StudentDetail, error)
	CreateStudent(in CreateStudentInput) (*models.Student, error)
	UpdateStudent(id uuid.UUID, in UpdateStudentInput) (*models.Student, error)
	DeleteStudent(id uuid.UUID) error

	ListPurchases(studentID uuid.UUID) ([]*PurchaseView, error)
	ListProgress(studentID uuid.UUID) ([]*ProgressWithLesson, error)
	RecordProgress(studentID, lessonID uuid.UUID, isCompleted bool) (*models.LessonProgress, error)
}

type studentService struct {
	students  repository.StudentRepository
	purchases repository.PurchaseRepository
	progress  repository.ProgressRepository
	lessons   repository.LessonRepository
}

func NewStudentService(
	students repository.StudentRepository,
	purchases repository.PurchaseRepository,
	progress repository.ProgressRepository,
	lessons repository.LessonRepository,
) StudentService {
	return &studentService{students: students, purchases: purchases, progress: progress, lessons: lessons}
}

func (s *studentService) ListStudents() ([]*StudentListItem, error) {
	students, err := s.students.List()
	if err != nil {
		return nil, err
	}
	items := make([]*StudentListItem, 0, len(students))
	for _, st := range students {
		count, err := s.students.CountPurchases(st.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, &StudentListItem{Student: *st, Count: PurchaseCount{Purchases: count}})
	}
	return items, nil
}

func studentDetail(st *models.Student, withProgress bool) *StudentDetail {
	detail := &StudentDetail{Student: *st}
	detail.Student.Purchases = nil
	detail.Student.Progress = nil

	detail.Purchases = make([]PurchaseView, 0, len(st.Purchases))
	for _, p := range st.Purchases {
		v := PurchaseView{CoursePurchase: p}
		if p.Course != nil {
			ref := &CourseRef{ID: p.Course.ID, Title: p.Course.Title, Thumbnail: p.Course.Thumbnail}
			if p.Course.Organization != nil {
				ref.Organization = &OrgNameRef{Name: p.Course.Organization.Name}
			}
			v.Course = ref
		}
		v.CoursePurchase.Course = nil
		v.CoursePurchase.Student = nil
		detail.Purchases = append(detail.Purchases, v)
	}

	if withProgress {
		detail.Progress = make([]ProgressWithLesson, 0, len(st.Progress))
		for _, pr := range st.Progress {
			v := ProgressWithLesson{LessonProgress: pr}
			if pr.Lesson != nil {
				ref := LessonRef{ID: pr.Lesson.ID, Title: pr.Lesson.Title}
				if pr.Lesson.Chapter != nil {
					ref.Chapter = &ChapterRef{
						ID:       pr.Lesson.Chapter.ID,
						Title:    pr.Lesson.Chapter.Title,
						CourseID: pr.Lesson.Chapter.CourseID,
					}
				}
				v.Lesson = ref
			}
			v.LessonProgress.Lesson = nil
			v.LessonProgress.Student = nil
			detail.Progress = append(detail.Progress, v)
		}
	}
	return detail
}

func (s *studentService) GetStudent(id uuid.UUID) (*StudentDetail, error) {
	st, err := s.students.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}
	return studentDetail(st, true), nil
}

func (s *studentService) GetStudentByClerkID(clerkUserID string) (*StudentDetail, error) {
	st, err := s.students.GetByClerkID(clerkUserID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}
	return studentDetail(st, false), nil
}

func (s *studentService) CreateStudent(in CreateStudentInput) (*models.Student, error) {
	st := &models.Student{
		ID:          uuid.New(),
		ClerkUserID: in.ClerkUserID,
		Email:       in.Email,
		Name:        in.Name,
		Avatar:      in.Avatar,
		IsActive:    true,
	}
	if err := s.students.Create(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *studentService) UpdateStudent(id uuid.UUID, in UpdateStudentInput) (*models.Student, error) {
	st, err := s.students.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}

	if in.ClerkUserID != nil {
		st.ClerkUserID = *in.ClerkUserID
	}
	if in.Email != nil {
		st.Email = *in.Email
	}
	if in.Name != nil {
		st.Name = *in.Name
	}
	if in.Avatar != nil {
		st.Avatar = *in.Avatar
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}
	st.UpdatedAt = time.Now()
	st.Purchases = nil
	st.Progress = nil

	if err := s.students.Update(st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *studentService) DeleteStudent(id uuid.UUID) error {
	if _, err := s.students.GetByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("student %w", ErrNotFound)
		}
		return err
	}
	return s.students.Delete(id)
}

func (s *studentService) ListPurchases(studentID uuid.UUID) ([]*PurchaseView, error) {
	if _, err := s.students.GetByID(studentID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}
	purchases, err := s.purchases.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	views := make([]*PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		v := &PurchaseView{CoursePurchase: *p}
		if p.Course != nil {
			ref := &CourseRef{ID: p.Course.ID, Title: p.Course.Title, Thumbnail: p.Course.Thumbnail}
			if p.Course.Organization != nil {
				ref.Organization = &OrgNameRef{Name: p.Course.Organization.Name}
			}
			v.Course = ref
		}
		v.CoursePurchase.Course = nil
		v.CoursePurchase.Student = nil
		views = append(views, v)
	}
	return views, nil
}

func (s *studentService) ListProgress(studentID uuid.UUID) ([]*ProgressWithLesson, error) {
	if _, err := s.students.GetByID(studentID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}
	records, err := s.progress.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	views := make([]*ProgressWithLesson, 0, len(records))
	for _, pr := range records {
		v := &ProgressWithLesson{LessonProgress: *pr}
		if pr.Lesson != nil {
			ref := LessonRef{ID: pr.Lesson.ID, Title: pr.Lesson.Title}
			if pr.Lesson.Chapter != nil {
				ref.Chapter = &ChapterRef{
					ID:       pr.Lesson.Chapter.ID,
					Title:    pr.Lesson.Chapter.Title,
					CourseID: pr.Lesson.Chapter.CourseID,
				}
			}
			v.Lesson = ref
		}
		v.LessonProgress.Lesson = nil
		v.LessonProgress.Student = nil
		views = append(views, v)
	}
	return views, nil
}

// RecordProgress создает или обновляет запись прогресса, одна на пару (ученик, урок)
func (s *studentService) RecordProgress(studentID, lessonID uuid.UUID, isCompleted bool) (*models.LessonProgress, error) {
	if _, err := s.students.GetByID(studentID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.lessons.GetByID(lessonID); err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("lesson %w", ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	pr, err := s.progress.GetByStudentAndLesson(studentID, lessonID)
	if isRecordNotFound(err) {
		pr = &models.LessonProgress{
			ID:          uuid.New(),
			StudentID:   studentID,
			LessonID:    lessonID,
			IsCompleted: isCompleted,
			WatchedAt:   &now,
		}
		if isCompleted {
			pr.CompletedAt = &now
		}
		if err := s.progress.Create(pr); err != nil {
			return nil, err
		}
		return pr, nil
	}
	if err != nil {
		return nil, err
	}

	if isCompleted && !pr.IsCompleted {
		pr.CompletedAt = &now
	}
	pr.IsCompleted = isCompleted
	if pr.WatchedAt == nil {
		pr.WatchedAt = &now
	}
	if err := s.progress.Update(pr); err != nil {
		return nil, err
	}
	return pr, nil
}
