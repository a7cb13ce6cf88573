package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response shape returned by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

func respondSuccessWithData(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func respondValidationError(c *gin.Context, data any) {
	c.JSON(http.StatusBadRequest, Envelope{Success: false, Message: "Validation Error.", Data: data})
}

func respondUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Envelope{Success: false, Message: message})
}

func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Envelope{Success: false, Message: message})
}

func respondServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Envelope{Success: false, Message: "Internal server error."})
}
