package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Calebbuffleben/EAD/internal/models"
	"github.com/Calebbuffleben/EAD/internal/repository"
)

type CreateCourseInput struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	Thumbnail      string    `json:"thumbnail" binding:"omitempty,url"`
	Price          *float64  `json:"price" binding:"required,gte=0"`
	IsPublished    *bool     `json:"isPublished"`
	OrganizationID uuid.UUID `json:"organizationId" binding:"required"`
	CreatedByID    uuid.UUID `json:"createdById" binding:"required"`
}

type UpdateCourseInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=1"`
	Description *string  `json:"description"`
	Thumbnail   *string  `json:"thumbnail" binding:"omitempty,url"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsPublished *bool    `json:"isPublished"`
}

type CreateChapterInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Order       *int   `json:"order" binding:"omitempty,gte=1"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateChapterInput struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description"`
	Order       *int    `json:"order" binding:"omitempty,gte=1"`
	IsPublished *bool   `json:"isPublished"`
}

type CreateLessonInput struct {
	Title       string `json:"title" binding:"required"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl" binding:"omitempty,url"`
	Duration    *int   `json:"duration" binding:"omitempty,gte=0"`
	Order       *int   `json:"order" binding:"omitempty,gte=1"`
	IsPublished *bool  `json:"isPublished"`
}

type UpdateLessonInput struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Content     *string `json:"content"`
	VideoURL    *string `json:"videoUrl" binding:"omitempty,url"`
	Duration    *int    `json:"duration" binding:"omitempty,gte=0"`
	Order       *int    `json:"order" binding:"omitempty,gte=1"`
	IsPublished *bool   `json:"isPublished"`
}

type CourseService interface {
	ListCourses(orgID *uuid.UUID) ([]*CourseListItem, error)
	ListPublishedCourses() ([]*CourseListItem, error)
	GetCourse(id uuid.UUID) (*CourseDetail, error)
	CreateCourse(in CreateCourseInput) (*CourseView, error)
	UpdateCourse(id uuid.UUID, in UpdateCourseInput) (*CourseView, error)
	DeleteCourse(id uuid.UUID) error

	ListChapters(courseID uuid.UUID) ([]*ChapterWithLessons, error)
	GetChapter(courseID, chapterID uuid.UUID) (*models.Chapter, error)
	CreateChapter(courseID uuid.UUID, in CreateChapterInput) (*models.Chapter, error)
	UpdateChapter(courseID, chapterID uuid.UUID, in UpdateChapterInput) (*models.Chapter, error)
	DeleteChapter(courseID, chapterID uuid.UUID) error

	ListLessons(courseID, chapterID uuid.UUID) ([]*models.Lesson, error)
	GetLesson(courseID, chapterID, lessonID uuid.UUID) (*models.Lesson, error)
	CreateLesson(courseID, chapterID uuid.UUID, in CreateLessonInput) (*models.Lesson, error)
	UpdateLesson(courseID, chapterID, lessonID uuid.UUID, in UpdateLessonInput) (*models.Lesson, error)
	DeleteLesson(courseID, chapterID, lessonID uuid.UUID) error

	PurchaseCourse(courseID, studentID uuid.UUID, amount decimal.Decimal) (*PurchaseView, bool, error)
	ListCoursePurchases(courseID uuid.UUID) ([]*PurchaseView, error)
}

type courseService struct {
	courses   repository.CourseRepository
	chapters  repository.ChapterRepository
	lessons   repository.LessonRepository
	purchases repository.PurchaseRepository
	orgs      repository.OrganizationRepository
	members   repository.TeamMemberRepository
	students  repository.StudentRepository
}

func NewCourseService(
	courses repository.CourseRepository,
	chapters repository.ChapterRepository,
	lessons repository.LessonRepository,
	purchases repository.PurchaseRepository,
	orgs repository.OrganizationRepository,
	members repository.TeamMemberRepository,
	students repository.StudentRepository,
) CourseService {
	return &courseService{
		courses:   courses,
		chapters:  chapters,
		lessons:   lessons,
		purchases: purchases,
		orgs:      orgs,
		members:   members,
		students:  students,
	}
}

func (s *courseService) courseListItems(courses []*models.Course) ([]*CourseListItem, error) {
	items := make([]*CourseListItem, 0, len(courses))
	for _, c := range courses {
		chapters, err := s.courses.CountChapters(c.ID)
		if err != nil {
			return nil, err
		}
		purchases, err := s.courses.CountPurchases(c.ID)
		if err != nil {
			return nil, err
		}
		item := &CourseListItem{
			Course:       *c,
			Organization: orgRef(c.Organization),
			CreatedBy:    memberRef(c.CreatedBy),
			Count:        CourseCounts{Chapters: chapters, Purchases: purchases},
		}
		item.Course.Organization = nil
		item.Course.CreatedBy = nil
		items = append(items, item)
	}
	return items, nil
}

func (s *courseService) ListCourses(orgID *uuid.UUID) ([]*CourseListItem, error) {
	courses, err := s.courses.List(orgID)
	if err != nil {
		return nil, err
	}
	return s.courseListItems(courses)
}

func (s *courseService) ListPublishedCourses() ([]*CourseListItem, error) {
	courses, err := s.courses.ListPublished()
	if err != nil {
		return nil, err
	}
	return s.courseListItems(courses)
}

func (s *courseService) GetCourse(id uuid.UUID) (*CourseDetail, error) {
	c, err := s.courses.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("course %w", ErrNotFound)
		}
		return nil, err
	}

	purchases, err := s.courses.CountPurchases(c.ID)
	if err != nil {
		return nil, err
	}

	// Главы уже отсортированы по порядку, уроки проецируем в краткую форму
	chapters := make([]ChapterWithLessons, 0, len(c.Chapters))
	for _, ch := range c.Chapters {
		item := ChapterWithLessons{Chapter: ch, Lessons: lessonSummaries(ch.Lessons)}
		item.Chapter.Lessons = nil
		chapters = append(chapters, item)
	}

	detail := &CourseDetail{
		Course:       *c,
		Organization: orgRef(c.Organization),
		CreatedBy:    memberRef(c.CreatedBy),
		Chapters:     chapters,
		Count:        PurchaseCount{Purchases: purchases},
	}
	detail.Course.Organization = nil
	detail.Course.CreatedBy = nil
	detail.Course.Chapters = nil
	return detail, nil
}

func (s *courseService) CreateCourse(in CreateCourseInput) (*CourseView, error) {
	org, err := s.orgs.GetByID(in.OrganizationID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("organization %w", ErrNotFound)
		}
		return nil, err
	}

	// Автор обязан состоять в той же организации
	member, err := s.members.GetInOrganization(in.OrganizationID, in.CreatedByID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("team member %w in organization", ErrNotFound)
		}
		return nil, err
	}

	c := &models.Course{
		ID:             uuid.New(),
		Title:          in.Title,
		Description:    in.Description,
		Thumbnail:      in.Thumbnail,
		Price:          decimal.NewFromFloat(*in.Price),
		OrganizationID: in.OrganizationID,
		CreatedByID:    in.CreatedByID,
	}
	if in.IsPublished != nil {
		c.IsPublished = *in.IsPublished
	}
	if err := s.courses.Create(c); err != nil {
		return nil, err
	}

	return &CourseView{
		Course:       *c,
		Organization: OrgRef{ID: org.ID, Name: org.Name},
		CreatedBy:    MemberRef{ID: member.ID, Name: member.Name},
	}, nil
}

func (s *courseService) UpdateCourse(id uuid.UUID, in UpdateCourseInput) (*CourseView, error) {
	c, err := s.courses.GetByID(id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("course %w", ErrNotFound)
		}
		return nil, err
	}

	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Thumbnail != nil {
		c.Thumbnail = *in.Thumbnail
	}
	if in.Price != nil {
		c.Price = decimal.NewFromFloat(*in.Price)
	}
	if in.IsPublished != nil {
		c.IsPublished = *in.IsPublished
	}
	c.UpdatedAt = time.Now()

	view := &CourseView{
		Organization: orgRef(c.Organization),
		CreatedBy:    memberRef(c.CreatedBy),
	}
	c.Organization = nil
	c.CreatedBy = nil
	c.Chapters = nil
	c.Purchases = nil
	if err := s.courses.Update(c); err != nil {
		return nil, err
	}
	view.Course = *c
	return view, nil
}

func (s *courseService) DeleteCourse(id uuid.UUID) error {
	if _, err := s.courses.GetByID(id); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("course %w", ErrNotFound)
		}
		return err
	}
	purchases, err := s.courses.CountPurchases(id)
	if err != nil {
		return err
	}
	if purchases > 0 {
		return fmt.Errorf("%w: course has purchases", ErrConflict)
	}
	return s.courses.Delete(id)
}

func (s *courseService) requireCourse(courseID uuid.UUID) error {
	if _, err := s.courses.GetByID(courseID); err != nil {
		if isRecordNotFound(err) {
			return fmt.Errorf("course %w", ErrNotFound)
		}
		return err
	}
	return nil
}

// requireChapter проверяет связку курс→глава; чужая глава — это not found
func (s *courseService) requireChapter(courseID, chapterID uuid.UUID) (*models.Chapter, error) {
	ch, err := s.chapters.GetInCourse(courseID, chapterID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("chapter %w", ErrNotFound)
		}
		return nil, err
	}
	return ch, nil
}

func (s *courseService) ListChapters(courseID uuid.UUID) ([]*ChapterWithLessons, error) {
	if err := s.requireCourse(courseID); err != nil {
		return nil, err
	}
	chapters, err := s.chapters.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	items := make([]*ChapterWithLessons, 0, len(chapters))
	for _, ch := range chapters {
		item := &ChapterWithLessons{Chapter: *ch, Lessons: lessonSummaries(ch.Lessons)}
		item.Chapter.Lessons = nil
		items = append(items, item)
	}
	return items, nil
}

func (s *courseService) GetChapter(courseID, chapterID uuid.UUID) (*models.Chapter, error) {
	return s.requireChapter(courseID, chapterID)
}

func (s *courseService) CreateChapter(courseID uuid.UUID, in CreateChapterInput) (*models.Chapter, error) {
	if err := s.requireCourse(courseID); err != nil {
		return nil, err
	}

	// Порядок: либо передан и свободен, либо назначается в хвост
	var order int
	if in.Order != nil {
		taken, err := s.chapters.OrderTaken(courseID, *in.Order, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: chapter order %d is already taken", ErrConflict, *in.Order)
		}
		order = *in.Order
	} else {
		max, err := s.chapters.MaxOrder(courseID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	ch := &models.Chapter{
		ID:          uuid.New(),
		CourseID:    courseID,
		Title:       in.Title,
		Description: in.Description,
		Order:       order,
	}
	if in.IsPublished != nil {
		ch.IsPublished = *in.IsPublished
	}
	if err := s.chapters.Create(ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *courseService) UpdateChapter(courseID, chapterID uuid.UUID, in UpdateChapterInput) (*models.Chapter, error) {
	ch, err := s.requireChapter(courseID, chapterID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		ch.Title = *in.Title
	}
	if in.Description != nil {
		ch.Description = *in.Description
	}
	if in.Order != nil && *in.Order != ch.Order {
		taken, err := s.chapters.OrderTaken(courseID, *in.Order, ch.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: chapter order %d is already taken", ErrConflict, *in.Order)
		}
		ch.Order = *in.Order
	}
	if in.IsPublished != nil {
		ch.IsPublished = *in.IsPublished
	}
	ch.UpdatedAt = time.Now()
	ch.Lessons = nil

	if err := s.chapters.Update(ch); err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *courseService) DeleteChapter(courseID, chapterID uuid.UUID) error {
	err := s.chapters.DeleteAndRenumber(courseID, chapterID)
	if isRecordNotFound(err) {
		return fmt.Errorf("chapter %w", ErrNotFound)
	}
	return err
}

func (s *courseService) ListLessons(courseID, chapterID uuid.UUID) ([]*models.Lesson, error) {
	if _, err := s.requireChapter(courseID, chapterID); err != nil {
		return nil, err
	}
	return s.lessons.ListByChapter(chapterID)
}

func (s *courseService) GetLesson(courseID, chapterID, lessonID uuid.UUID) (*models.Lesson, error) {
	if _, err := s.requireChapter(courseID, chapterID); err != nil {
		return nil, err
	}
	l, err := s.lessons.GetInChapter(chapterID, lessonID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, fmt.Errorf("lesson %w", ErrNotFound)
		}
		return nil, err
	}
	return l, nil
}

func (s *courseService) CreateLesson(courseID, chapterID uuid.UUID, in CreateLessonInput) (*models.Lesson, error) {
	if _, err := s.requireChapter(courseID, chapterID); err != nil {
		return nil, err
	}

	var order int
	if in.Order != nil {
		taken, err := s.lessons.OrderTaken(chapterID, *in.Order, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: lesson order %d is already taken", ErrConflict, *in.Order)
		}
		order = *in.Order
	} else {
		max, err := s.lessons.MaxOrder(chapterID)
		if err != nil {
			return nil, err
		}
		order = max + 1
	}

	l := &models.Lesson{
		ID:        uuid.New(),
		ChapterID: chapterID,
		Title:     in.Title,
		Content:   in.Content,
		VideoURL:  in.VideoURL,
		Duration:  in.Duration,
		Order:     order,
	}
	if in.IsPublished != nil {
		l.IsPublished = *in.IsPublished
	}
	if err := s.lessons.Create(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *courseService) UpdateLesson(courseID, chapterID, lessonID uuid.UUID, in UpdateLessonInput) (*models.Lesson, error) {
	l, err := s.GetLesson(courseID, chapterID, lessonID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		l.Title = *in.Title
	}
	if in.Content != nil {
		l.Content = *in.Content
	}
	if in.VideoURL != nil {
		l.VideoURL = *in.VideoURL
	}
	if in.Duration != nil {
		l.Duration = in.Duration
	}
	if in.Order != nil && *in.Order != l.Order {
		taken, err := s.lessons.OrderTaken(chapterID, *in.Order, l.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("%w: lesson order %d is already taken", ErrConflict, *in.Order)
		}
		l.Order = *in.Order
	}
	if in.IsPublished != nil {
		l.IsPublished = *in.IsPublished
	}
	l.UpdatedAt = time.Now()

	if err := s.lessons.Update(l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *courseService) DeleteLesson(courseID, chapterID, lessonID uuid.UUID) error {
	if _, err := s.requireChapter(courseID, chapterID); err != nil {
		return err
	}
	err := s.lessons.DeleteAndRenumber(chapterID, lessonID)
	if isRecordNotFound(err) {
		return fmt.Errorf("lesson %w", ErrNotFound)
	}
	return err
}

// PurchaseCourse создает покупку. Повторная покупка той же пары (ученик, курс)
// не дублируется: возвращается существующая запись, второй результат false.
func (s *courseService) PurchaseCourse(courseID, studentID uuid.UUID, amount decimal.Decimal) (*PurchaseView, bool, error) {
	course, err := s.courses.GetByID(courseID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, false, fmt.Errorf("course %w", ErrNotFound)
		}
		return nil, false, err
	}
	student, err := s.students.GetByID(studentID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, false, fmt.Errorf("student %w", ErrNotFound)
		}
		return nil, false, err
	}

	if existing, err := s.purchases.GetByStudentAndCourse(studentID, courseID); err == nil {
		return purchaseView(existing, course, student), false, nil
	} else if !isRecordNotFound(err) {
		return nil, false, err
	}

	p := &models.CoursePurchase{
		ID:          uuid.New(),
		StudentID:   studentID,
		CourseID:    courseID,
		Amount:      amount,
		PurchasedAt: time.Now(),
		IsActive:    true,
	}
	if err := s.purchases.Create(p); err != nil {
		return nil, false, err
	}
	return purchaseView(p, course, student), true, nil
}

func (s *courseService) ListCoursePurchases(courseID uuid.UUID) ([]*PurchaseView, error) {
	if err := s.requireCourse(courseID); err != nil {
		return nil, err
	}
	purchases, err := s.purchases.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	views := make([]*PurchaseView, 0, len(purchases))
	for _, p := range purchases {
		v := &PurchaseView{CoursePurchase: *p}
		if p.Student != nil {
			v.Student = &StudentRef{ID: p.Student.ID, Name: p.Student.Name, Email: p.Student.Email}
		}
		v.CoursePurchase.Student = nil
		v.CoursePurchase.Course = nil
		views = append(views, v)
	}
	return views, nil
}

func purchaseView(p *models.CoursePurchase, course *models.Course, student *models.Student) *PurchaseView {
	v := &PurchaseView{CoursePurchase: *p}
	v.CoursePurchase.Course = nil
	v.CoursePurchase.Student = nil
	if course != nil {
		v.Course = &CourseRef{ID: course.ID, Title: course.Title, Thumbnail: course.Thumbnail}
	}
	if student != nil {
		v.Student = &StudentRef{ID: student.ID, Name: student.Name}
	}
	return v
}
