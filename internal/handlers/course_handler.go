package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Calebbuffleben/EAD/internal/catalog"
	"github.com/Calebbuffleben/EAD/internal/services"
	"github.com/Calebbuffleben/EAD/pkg/logger"
)

type CourseHandler struct {
	svc services.CourseService
	log *logger.Logger
}

func NewCourseHandler(svc services.CourseService, log *logger.Logger) *CourseHandler {
	return &CourseHandler{svc: svc, log: log}
}

// GET /api/courses?organizationId=
func (h *CourseHandler) List(c *gin.Context) {
	var orgID *uuid.UUID
	if raw := c.Query("organizationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organizationId"})
			return
		}
		orgID = &id
	}
	courses, err := h.svc.ListCourses(orgID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GET /api/courses/published
// Поддерживает параметры витрины: q, price, minPrice, maxPrice, organizationId, sort
func (h *CourseHandler) ListPublished(c *gin.Context) {
	courses, err := h.svc.ListPublishedCourses()
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	opts := catalog.Options{
		Search: c.Query("q"),
		Price:  c.Query("price"),
		Sort:   c.Query("sort"),
	}
	if raw := c.Query("minPrice"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		opts.MinPrice = &min
	}
	if raw := c.Query("maxPrice"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		opts.MaxPrice = &max
	}
	for _, raw := range c.QueryArray("organizationId") {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organizationId"})
			return
		}
		opts.Organizations = append(opts.Organizations, id)
	}

	c.JSON(http.StatusOK, catalog.Apply(courses, opts))
}

// GET /api/courses/:courseId
func (h *CourseHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	course, err := h.svc.GetCourse(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// POST /api/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var in services.CreateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.svc.CreateCourse(in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// PUT /api/courses/:courseId
func (h *CourseHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	var in services.UpdateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	course, err := h.svc.UpdateCourse(id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DELETE /api/courses/:courseId
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	if err := h.svc.DeleteCourse(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GET /api/courses/:courseId/chapters
func (h *CourseHandler) ListChapters(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapters, err := h.svc.ListChapters(courseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chapters)
}

// GET /api/courses/:courseId/chapters/:chapterId
func (h *CourseHandler) GetChapter(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	chapter, err := h.svc.GetChapter(courseID, chapterID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// POST /api/courses/:courseId/chapters
func (h *CourseHandler) CreateChapter(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	var in services.CreateChapterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chapter, err := h.svc.CreateChapter(courseID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, chapter)
}

// PUT /api/courses/:courseId/chapters/:chapterId
func (h *CourseHandler) UpdateChapter(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	var in services.UpdateChapterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chapter, err := h.svc.UpdateChapter(courseID, chapterID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, chapter)
}

// DELETE /api/courses/:courseId/chapters/:chapterId
func (h *CourseHandler) DeleteChapter(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	if err := h.svc.DeleteChapter(courseID, chapterID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GET /api/courses/:courseId/chapters/:chapterId/lessons
func (h *CourseHandler) ListLessons(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	lessons, err := h.svc.ListLessons(courseID, chapterID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GET /api/courses/:courseId/chapters/:chapterId/lessons/:lessonId
func (h *CourseHandler) GetLesson(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	lessonID, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return
	}
	lesson, err := h.svc.GetLesson(courseID, chapterID, lessonID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// POST /api/courses/:courseId/chapters/:chapterId/lessons
func (h *CourseHandler) CreateLesson(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	var in services.CreateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson, err := h.svc.CreateLesson(courseID, chapterID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// PUT /api/courses/:courseId/chapters/:chapterId/lessons/:lessonId
func (h *CourseHandler) UpdateLesson(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	lessonID, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return
	}
	var in services.UpdateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lesson, err := h.svc.UpdateLesson(courseID, chapterID, lessonID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DELETE /api/courses/:courseId/chapters/:chapterId/lessons/:lessonId
func (h *CourseHandler) DeleteLesson(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	chapterID, ok := parseUUIDParam(c, "chapterId")
	if !ok {
		return
	}
	lessonID, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return
	}
	if err := h.svc.DeleteLesson(courseID, chapterID, lessonID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type purchaseCourseReq struct {
	StudentID uuid.UUID `json:"studentId" binding:"required"`
	Amount    *float64  `json:"amount" binding:"required,gte=0"`
}

// POST /api/courses/:courseId/purchase
func (h *CourseHandler) Purchase(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	var req purchaseCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purchase, created, err := h.svc.PurchaseCourse(courseID, req.StudentID, decimal.NewFromFloat(*req.Amount))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, purchase)
}

// GET /api/courses/:courseId/purchases
func (h *CourseHandler) ListPurchases(c *gin.Context) {
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	purchases, err := h.svc.ListCoursePurchases(courseID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}
