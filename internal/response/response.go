package response

import (
	"errors"
	"net/http"

	"github.com/citytoll/service-tollfee/internal/domain/shared"
	"github.com/gin-gonic/gin"
)

// envelope is the common shape of all JSON responses.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// paginatedEnvelope wraps list responses with pagination metadata.
type paginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// Paginated writes a 200 response for one page of items.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{
		Success: true,
		Data:    items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Error writes an error response, mapping application error kinds to HTTP
// statuses. Unclassified errors become opaque 500s.
func Error(c *gin.Context, err error) {
	var appErr *shared.AppError
	if errors.As(err, &appErr) {
		c.JSON(statusForKind(appErr.Kind), envelope{Success: false, Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: "internal server error"})
}

func statusForKind(kind shared.ErrorKind) int {
	switch kind {
	case shared.KindValidation:
		return http.StatusBadRequest
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
