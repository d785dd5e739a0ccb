package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Calebbuffleben/EAD/internal/services"
	"github.com/Calebbuffleben/EAD/pkg/logger"
)

type StudentHandler struct {
	svc     services.StudentService
	courses services.CourseService
	log     *logger.Logger
}

func NewStudentHandler(svc services.StudentService, courses services.CourseService, log *logger.Logger) *StudentHandler {
	return &StudentHandler{svc: svc, courses: courses, log: log}
}

// GET /api/students
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.svc.ListStudents()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// GET /api/students/:id
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	student, err := h.svc.GetStudent(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// GET /api/students/clerk/:clerkUserId
func (h *StudentHandler) GetByClerkID(c *gin.Context) {
	student, err := h.svc.GetStudentByClerkID(c.Param("clerkUserId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// POST /api/students
func (h *StudentHandler) Create(c *gin.Context) {
	var in services.CreateStudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student, err := h.svc.CreateStudent(in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

// PUT /api/students/:id
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var in services.UpdateStudentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	student, err := h.svc.UpdateStudent(id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// DELETE /api/students/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteStudent(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// GET /api/students/:id/purchases
func (h *StudentHandler) ListPurchases(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	purchases, err := h.svc.ListPurchases(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

type purchaseReq struct {
	Amount *float64 `json:"amount" binding:"required,gte=0"`
}

// POST /api/students/:id/purchase/:courseId
// Зеркало ручки покупки на стороне курсов: создает ту же запись
func (h *StudentHandler) Purchase(c *gin.Context) {
	studentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	courseID, ok := parseUUIDParam(c, "courseId")
	if !ok {
		return
	}
	var req purchaseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	purchase, created, err := h.courses.PurchaseCourse(courseID, studentID, decimal.NewFromFloat(*req.Amount))
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

// GET /api/students/:id/progress
func (h *StudentHandler) ListProgress(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	progress, err := h.svc.ListProgress(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

type progressReq struct {
	IsCompleted bool `json:"isCompleted"`
}

// POST /api/students/:id/progress/:lessonId
func (h *StudentHandler) RecordProgress(c *gin.Context) {
	studentID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	lessonID, ok := parseUUIDParam(c, "lessonId")
	if !ok {
		return
	}
	var req progressReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	progress, err := h.svc.RecordProgress(studentID, lessonID, req.IsCompleted)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
