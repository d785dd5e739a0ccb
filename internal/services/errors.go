package services

import (
	"errors"

	"gorm.io/gorm"
)

// Ошибки уровня сервисов; обработчики выбирают по ним HTTP-статус
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
