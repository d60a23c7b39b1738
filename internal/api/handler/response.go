package handler

import (
	"errors"
	"log"
	"net/http"

	apperr "hostelcare/backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindForbidden, apperr.KindLocked:
		return http.StatusForbidden
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindInvalidStatus, apperr.KindInvalidState, apperr.KindInvalidAssignment,
		apperr.KindDuplicateFeedback, apperr.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as the JSON error envelope. Field validation
// failures list the failed tag per field.
func respondError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"code":    apperr.KindValidation,
			"message": "Validation failed",
			"errors":  fields,
		})
		return
	}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		c.JSON(statusFor(appErr.Kind), gin.H{
			"success": false,
			"code":    appErr.Kind,
			"message": appErr.Message,
		})
		return
	}

	log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
}

// badRequest answers a body that failed to bind.
func badRequest(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": apperr.KindValidation, "message": "Invalid request body"})
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func okMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
