package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkstone/core/internal/pkg/apperr"
)

// Envelope is the unified JSON reply shape: {success, data?|errors?, message?}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Pagination metadata returned with paginated responses.
type Pagination struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"currentPage"`
	TotalPage   int   `json:"totalPage"`
	Size        int   `json:"size"`
	HasNextPage bool  `json:"hasNextPage"`
}

type pagedEnvelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// OK sends a 200 response wrapping data in the success envelope.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// OKMsg sends a 200 response with data and a message. Used for
// partial-failure outcomes where the mutation succeeded but a consistency
// side effect did not.
func OKMsg(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Paged sends a paginated list response.
func Paged(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, pagedEnvelope{Success: true, Data: data, Pagination: pagination})
}

// Created sends a 201 response.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// CreatedMsg sends a 201 response with a warning message attached.
func CreatedMsg(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data, Message: message})
}

// Deleted sends a 200 response with a confirmation message and no data.
func Deleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// BadRequest sends a 400 error response listing validation failures.
func BadRequest(c *gin.Context, errs ...string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Success: false, Errors: errs})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, Envelope{Success: false, Message: message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, Envelope{Success: false, Message: message})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Success: false, Message: err.Error()})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, Envelope{Success: false, Message: "method not allowed"})
}

// Error maps a classified error onto the matching status code and envelope.
func Error(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperr.StatusCode(err), Envelope{Success: false, Message: err.Error()})
}
