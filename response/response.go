package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roomrent/errors"
)

// Response is the envelope every handler writes
type Response struct {
	Code    int                    `json:"code"`
	Mess    string                 `json:"mess"`
	Error   string                 `json:"error,omitempty"`
	Data    interface{}            `json:"data,omitempty"`
	Field   string                 `json:"field,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "success",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "created",
		Data: data,
	})
}

// Error writes a 400 with message
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "internal server error",
	})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "authentication required",
	})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "insufficient permissions",
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "not found",
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

// StatusFor maps an error code to its HTTP status
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeUnauthorized, errors.ErrCodeInvalidToken, errors.ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		return http.StatusForbidden
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeConflict, errors.ErrCodeUserExists:
		return http.StatusConflict
	case errors.ErrCodeUnavailable, errors.ErrCodeInvalidTransition, errors.ErrCodeInvalidState:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err. Domain errors keep their message, field and details;
// storage and unknown failures become a generic 500.
func FromError(c *gin.Context, err error) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}

	status := StatusFor(appErr.Code)
	if status == http.StatusInternalServerError {
		c.JSON(status, Response{Code: 0, Mess: "internal server error", Error: string(appErr.Code)})
		return
	}
	c.JSON(status, Response{
		Code:    0,
		Mess:    appErr.Message,
		Error:   string(appErr.Code),
		Field:   appErr.Field,
		Details: appErr.Details,
	})
}
