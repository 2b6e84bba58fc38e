package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Messages used by the blueprint API
const (
	MessageOK             = "execute ok"
	MessageCreated        = "blueprint created"
	MessagePointAdded     = "point added"
	MessageInvalidRequest = "invalid request"
	MessageInternalError  = "internal server error"
)

// Response is the envelope every endpoint answers with. Data is null on failure.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success responses
func Success(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Response{
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

func OK(c *gin.Context, data any) {
	Success(c, http.StatusOK, MessageOK, data)
}

func Created(c *gin.Context, message string, data any) {
	Success(c, http.StatusCreated, message, data)
}

func Accepted(c *gin.Context, message string) {
	Success(c, http.StatusAccepted, message, nil)
}

// Error responses
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Code:    statusCode,
		Message: message,
	})
}

// ErrorWithDetails keeps the envelope shape and puts field errors in data
func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.JSON(statusCode, Response{
		Code:    statusCode,
		Message: message,
		Data:    details,
	})
}

// Common error responses
func BadRequest(c *gin.Context, message string, details any) {
	ErrorWithDetails(c, http.StatusBadRequest, message, details)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, MessageInternalError)
}

// AbortInternalServerError is for middleware that must stop the chain
func AbortInternalServerError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: MessageInternalError,
	})
}
