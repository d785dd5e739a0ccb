package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Calebbuffleben/EAD/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase открывает подключение: Postgres если задан DSN, иначе локальный SQLite
func NewDatabase(postgresDSN, sqlitePath string) (*Database, error) {
	var (
		db  *gorm.DB
		err error
	)

	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if postgresDSN != "" {
		db, err = gorm.Open(postgres.Open(postgresDSN), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
	} else {
		// Создаем директорию для файла базы если её нет
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite: %w", err)
		}
	}

	database := &Database{DB: db}

	// Автомиграция моделей
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

// Migrate выполняет миграцию базы данных
func (d *Database) Migrate() error {
	return d.DB.AutoMigrate(
		&models.TeacherOrganization{},
		&models.TeacherTeamMember{},
		&models.Course{},
		&models.Chapter{},
		&models.Lesson{},
		&models.Student{},
		&models.CoursePurchase{},
		&models.LessonProgress{},
	)
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
