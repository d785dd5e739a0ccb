package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Calebbuffleben/EAD/internal/services"
	"github.com/Calebbuffleben/EAD/pkg/logger"
)

// respondError переводит ошибку сервиса в HTTP-статус.
// Детали неожиданных ошибок уходят в лог, а не клиенту.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parseUUIDParam читает path-параметр как UUID; при ошибке сам отвечает 400
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
