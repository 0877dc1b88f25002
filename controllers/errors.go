package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"properties-api/dto"
	"properties-api/repositories"
	"properties-api/services"
	"properties-api/storage"
)

// respondError traduce los errores de las capas internas a respuestas HTTP
// Los errores inesperados se loguean y se responde un mensaje genérico,
// nunca el detalle interno
func respondError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: validationErr.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, repositories.ErrPropertyNotFound),
		errors.Is(err, repositories.ErrLeadNotFound),
		errors.Is(err, repositories.ErrContactNotFound),
		errors.Is(err, repositories.ErrUserNotFound):
		c.JSON(http.StatusNotFound, dto.Response{
			Success: false,
			Message: err.Error(),
		})
	case errors.Is(err, storage.ErrTooManyFiles),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, dto.Response{
			Success: false,
			Message: err.Error(),
		})
	default:
		log.Printf("❌ Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, dto.Response{
			Success: false,
			Message: "internal server error",
		})
	}
}
