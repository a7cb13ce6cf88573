package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiagokise/qr-api/internal/middleware"
	"github.com/tiagokise/qr-api/internal/model"
	"github.com/tiagokise/qr-api/internal/service"
	"github.com/tiagokise/qr-api/internal/validation"
)

// TagHandler handles tag requests
type TagHandler struct {
	service service.TagService
	logger  *zap.Logger
}

// NewTagHandler creates a new TagHandler
func NewTagHandler(s service.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{service: s, logger: logger}
}

// getAuthUserID reads the authenticated user ID set by the JWT middleware.
func getAuthUserID(c *gin.Context) (int, bool) {
	val, exists := c.Get(middleware.AuthUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := val.(int)
	return userID, ok
}

func (h *TagHandler) respondTagError(c *gin.Context, err error) {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondValidationError(c, verrs.Fields)
	case errors.Is(err, service.ErrTagNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, service.ErrNotTagOwner):
		respondUnauthorized(c, err.Error())
	default:
		h.logger.Error("tag request failed", zap.Error(err))
		respondServerError(c)
	}
}

func (h *TagHandler) List(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required.")
		return
	}

	tags, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		h.respondTagError(c, err)
		return
	}
	respondSuccessWithData(c, "Operation success", tags)
}

func (h *TagHandler) Detail(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required.")
		return
	}

	tagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		// A malformed id is answered with an empty object, not an error.
		respondSuccessWithData(c, "Operation success", struct{}{})
		return
	}

	tag, err := h.service.Detail(c.Request.Context(), tagID, userID)
	if err != nil {
		h.respondTagError(c, err)
		return
	}
	respondSuccessWithData(c, "Operation success", tag)
}

func (h *TagHandler) Create(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required.")
		return
	}

	var req model.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	tag, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.respondTagError(c, err)
		return
	}
	respondSuccessWithData(c, "Tag add Success.", tag)
}

func (h *TagHandler) Update(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required.")
		return
	}

	tagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, "Invalid ID.")
		return
	}

	var req model.TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	tag, err := h.service.Update(c.Request.Context(), tagID, userID, req)
	if err != nil {
		h.respondTagError(c, err)
		return
	}
	respondSuccessWithData(c, "Tag update Success.", tag)
}

func (h *TagHandler) Delete(c *gin.Context) {
	userID, ok := getAuthUserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required.")
		return
	}

	tagID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, "Invalid ID.")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tagID, userID); err != nil {
		h.respondTagError(c, err)
		return
	}
	respondSuccess(c, "Tag delete Success.")
}

// RegisterTagRoutes registers tag routes. Every route is behind the JWT gate:
// list and detail are owner-scoped like the mutating operations.
func (h *TagHandler) RegisterTagRoutes(r gin.IRouter, authMW gin.HandlerFunc) {
	tagGroup := r.Group("/tag")
	tagGroup.Use(authMW)
	{
		tagGroup.GET("", h.List)
		tagGroup.GET("/:id", h.Detail)
		tagGroup.POST("", h.Create)
		tagGroup.PUT("/:id", h.Update)
		tagGroup.DELETE("/:id", h.Delete)
	}
}
