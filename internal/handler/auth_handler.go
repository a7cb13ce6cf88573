package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tiagokise/qr-api/internal/model"
	"github.com/tiagokise/qr-api/internal/service"
	"github.com/tiagokise/qr-api/internal/validation"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(s service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: s, logger: logger}
}

// respondAuthError maps service failures onto the response envelope.
func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	var verrs *validation.Errors
	switch {
	case errors.As(err, &verrs):
		respondValidationError(c, verrs.Fields)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountNotConfirmed),
		errors.Is(err, service.ErrAccountDisabled),
		errors.Is(err, service.ErrEmailNotFound),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrOTPMismatch),
		errors.Is(err, service.ErrOTPTriesExceeded):
		respondUnauthorized(c, err.Error())
	default:
		h.logger.Error("auth request failed", zap.Error(err))
		respondServerError(c)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	user, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondSuccessWithData(c, "Registration Success.", model.SignupResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Phone:    user.Phone,
		Email:    user.Email,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	respondSuccessWithData(c, "Login Success.", model.LoginResponse{
		ID:       user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		Token:    token,
	})
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req model.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	if err := h.service.VerifyOTP(c.Request.Context(), req); err != nil {
		h.respondAuthError(c, err)
		return
	}
	respondSuccess(c, "Account confirmed success.")
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req model.ResendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, "Invalid request payload.")
		return
	}

	if err := h.service.ResendOTP(c.Request.Context(), req); err != nil {
		h.respondAuthError(c, err)
		return
	}
	respondSuccess(c, "Confirm otp sent.")
}

// RegisterAuthRoutes registers auth routes
func (h *AuthHandler) RegisterAuthRoutes(r gin.IRouter) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/verify-otp", h.VerifyOTP)
		authGroup.POST("/resend-otp", h.ResendOTP)
	}
}
