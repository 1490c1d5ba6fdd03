package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type JSONResponse struct {
	Status    bool        `json:"status"`
	Message   string      `json:"message"`
	ErrorType string      `json:"error_type,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError memetakan error ke envelope {status, message, error_type}.
// Error di luar taksonomi AppError tidak boleh bocor ke client.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := AsAppError(err); ok {
		c.JSON(appErr.Status, JSONResponse{
			Status:    false,
			Message:   appErr.Message,
			ErrorType: appErr.ErrorType,
		})
		return
	}

	// Pelanggaran unique constraint dari store: dua create paralel bisa
	// sama-sama lolos pre-check, yang kalah tetap dapat 409, bukan 500
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, JSONResponse{
			Status:    false,
			Message:   "resource already exists",
			ErrorType: TypeUniquenessConflict,
		})
		return
	}

	if ErrorLogger != nil {
		ErrorLogger.Printf("internal error: %v", err)
	}
	c.JSON(http.StatusInternalServerError, JSONResponse{
		Status:    false,
		Message:   "internal server error",
		ErrorType: TypeInternal,
	})
}
