package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/Calebbuffleben/EAD/internal/config"
	"github.com/Calebbuffleben/EAD/internal/handlers"
	"github.com/Calebbuffleben/EAD/internal/repository"
	"github.com/Calebbuffleben/EAD/internal/services"
	"github.com/Calebbuffleben/EAD/pkg/database"
	"github.com/Calebbuffleben/EAD/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Mode)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer log.Sync()

	// Подключаемся к базе данных
	db, err := database.NewDatabase(cfg.PostgresDSN, cfg.SQLitePath)
	if err != nil {
		log.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	// Создаем репозитории
	orgRepo := repository.NewOrganizationRepository(db.DB)
	memberRepo := repository.NewTeamMemberRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	chapterRepo := repository.NewChapterRepository(db.DB)
	lessonRepo := repository.NewLessonRepository(db.DB)
	studentRepo := repository.NewStudentRepository(db.DB)
	purchaseRepo := repository.NewPurchaseRepository(db.DB)
	progressRepo := repository.NewProgressRepository(db.DB)

	// Создаем сервисы
	orgService := services.NewOrganizationService(orgRepo, memberRepo, courseRepo)
	courseService := services.NewCourseService(courseRepo, chapterRepo, lessonRepo, purchaseRepo, orgRepo, memberRepo, studentRepo)
	studentService := services.NewStudentService(studentRepo, purchaseRepo, progressRepo, lessonRepo)

	// Создаем обработчики
	orgHandler := handlers.NewOrganizationHandler(orgService, log)
	courseHandler := handlers.NewCourseHandler(courseService, log)
	studentHandler := handlers.NewStudentHandler(studentService, courseService, log)

	if cfg.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API маршруты
	api := router.Group("/api")

	// Организации и участники команд
	orgs := api.Group("/teacher-organizations")
	{
		orgs.GET("", orgHandler.List)
		orgs.GET("/:id", orgHandler.Get)
		orgs.POST("", orgHandler.Create)
		orgs.PUT("/:id", orgHandler.Update)
		orgs.DELETE("/:id", orgHandler.Delete)

		orgs.GET("/:id/team-members", orgHandler.ListTeamMembers)
		orgs.GET("/:id/team-members/:memberId", orgHandler.GetTeamMember)
		orgs.POST("/:id/team-members", orgHandler.CreateTeamMember)
		orgs.PUT("/:id/team-members/:memberId", orgHandler.UpdateTeamMember)
		orgs.DELETE("/:id/team-members/:memberId", orgHandler.DeleteTeamMember)
	}

	// Курсы, главы, уроки, покупки
	courses := api.Group("/courses")
	{
		courses.GET("", courseHandler.List)
		courses.GET("/published", courseHandler.ListPublished)
		courses.GET("/:courseId", courseHandler.Get)
		courses.POST("", courseHandler.Create)
		courses.PUT("/:courseId", courseHandler.Update)
		courses.DELETE("/:courseId", courseHandler.Delete)

		courses.GET("/:courseId/chapters", courseHandler.ListChapters)
		courses.GET("/:courseId/chapters/:chapterId", courseHandler.GetChapter)
		courses.POST("/:courseId/chapters", courseHandler.CreateChapter)
		courses.PUT("/:courseId/chapters/:chapterId", courseHandler.UpdateChapter)
		courses.DELETE("/:courseId/chapters/:chapterId", courseHandler.DeleteChapter)

		courses.GET("/:courseId/chapters/:chapterId/lessons", courseHandler.ListLessons)
		courses.GET("/:courseId/chapters/:chapterId/lessons/:lessonId", courseHandler.GetLesson)
		courses.POST("/:courseId/chapters/:chapterId/lessons", courseHandler.CreateLesson)
		courses.PUT("/:courseId/chapters/:chapterId/lessons/:lessonId", courseHandler.UpdateLesson)
		courses.DELETE("/:courseId/chapters/:chapterId/lessons/:lessonId", courseHandler.DeleteLesson)

		courses.POST("/:courseId/purchase", courseHandler.Purchase)
		courses.GET("/:courseId/purchases", courseHandler.ListPurchases)
	}

	// Ученики, их покупки и прогресс
	students := api.Group("/students")
	{
		students.GET("", studentHandler.List)
		students.GET("/clerk/:clerkUserId", studentHandler.GetByClerkID)
		students.GET("/:id", studentHandler.Get)
		students.POST("", studentHandler.Create)
		students.PUT("/:id", studentHandler.Update)
		students.DELETE("/:id", studentHandler.Delete)

		students.GET("/:id/purchases", studentHandler.ListPurchases)
		students.POST("/:id/purchase/:courseId", studentHandler.Purchase)

		students.GET("/:id/progress", studentHandler.ListProgress)
		students.POST("/:id/progress/:lessonId", studentHandler.RecordProgress)
	}

	// Запускаем сервер
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Info("starting server", "addr", addr)

	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
