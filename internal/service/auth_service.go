package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tiagokise/qr-api/internal/mailer"
	"github.com/tiagokise/qr-api/internal/model"
	"github.com/tiagokise/qr-api/internal/repository"
	"github.com/tiagokise/qr-api/internal/utils"
	"github.com/tiagokise/qr-api/internal/validation"
)

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountNotConfirmed = errors.New("please confirm your email")
	ErrAccountDisabled     = errors.New("your account is disabled, please contact the administrator")
	ErrEmailNotFound       = errors.New("specified email not found")
	ErrAlreadyConfirmed    = errors.New("account already confirmed")
	ErrOTPMismatch         = errors.New("otp does not match")
	ErrOTPTriesExceeded    = errors.New("too many failed attempts, please request a new otp")
)

const otpDigits = 4

// AuthService provides signup, login and OTP confirmation.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error)
	VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) error
	ResendOTP(ctx context.Context, req model.ResendOTPRequest) error
}

type authService struct {
	userRepo    repository.UserRepository
	jwtUtil     *utils.JWTUtil
	mailer      mailer.Mailer
	logger      *zap.Logger
	otpMaxTries int
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, m mailer.Mailer, logger *zap.Logger, otpMaxTries int) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtUtil:     jwtUtil,
		mailer:      m,
		logger:      logger,
		otpMaxTries: otpMaxTries,
	}
}

// Signup registers a new, unconfirmed account.
func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	verrs := &validation.Errors{}
	verrs.Field("userFullName", req.FullName,
		validation.MinLength(3, "Full name is required."))
	verrs.Field("email", req.Email,
		validation.MinLength(3, "Email is required."),
		validation.Email("Please enter a valid email."))
	verrs.Field("phone", req.Phone,
		validation.MinLength(11, "Phone is required."),
		validation.Numeric("Please enter a valid phone."))
	verrs.Field("password", req.Password,
		validation.MinLength(6, "Password must be at least 6 characters."))

	// Uniqueness is checked only for a well-formed email, the way the field
	// rule chain runs in order.
	if !verrs.HasErrors() {
		existing, err := s.userRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existing != nil {
			verrs.Add("email", "Email is already in use.")
		}
	}
	if verrs.HasErrors() {
		return nil, verrs
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	otp, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate otp: %w", err)
	}

	user := &model.User{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		IsConfirmed:  false,
		ConfirmOTP:   &otp,
		Status:       true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Concurrent signup lost the race against the unique index.
			verrs.Add("email", "Email is already in use.")
			return nil, verrs
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Confirmation delivery is owned by the resend flow; the stored OTP is
	// immediately verifiable.
	s.logger.Info("user registered", zap.Int("user_id", user.ID))
	return user, nil
}

// Login authenticates a confirmed, active account and issues a JWT.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	verrs := &validation.Errors{}
	verrs.Field("email", req.Email,
		validation.MinLength(1, "Email must be specified."),
		validation.Email("Email must be a valid email address."))
	verrs.Field("password", req.Password,
		validation.MinLength(1, "Password must be specified."))
	if verrs.HasErrors() {
		return nil, "", verrs
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsConfirmed {
		return nil, "", ErrAccountNotConfirmed
	}
	if !user.Status {
		return nil, "", ErrAccountDisabled
	}

	token, err := s.jwtUtil.GenerateToken(user.ID, user.FullName, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}

// VerifyOTP confirms an account when the supplied code matches exactly.
func (s *authService) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) error {
	verrs := &validation.Errors{}
	verrs.Field("email", req.Email,
		validation.MinLength(1, "Email must be specified."),
		validation.Email("Email must be a valid email address."))
	verrs.Field("otp", req.OTP,
		validation.MinLength(1, "OTP must be specified."))
	if verrs.HasErrors() {
		return verrs
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return ErrEmailNotFound
	}
	if user.IsConfirmed {
		return ErrAlreadyConfirmed
	}
	if user.OTPTries >= s.otpMaxTries {
		return ErrOTPTriesExceeded
	}
	if user.ConfirmOTP == nil || *user.ConfirmOTP != req.OTP {
		if err := s.userRepo.IncrementOTPTries(ctx, req.Email); err != nil {
			s.logger.Error("failed to record otp attempt", zap.Error(err))
		}
		return ErrOTPMismatch
	}

	if err := s.userRepo.Confirm(ctx, req.Email); err != nil {
		return fmt.Errorf("failed to confirm account: %w", err)
	}
	s.logger.Info("account confirmed", zap.Int("user_id", user.ID))
	return nil
}

// ResendOTP regenerates the confirmation code and emails it. The new code is
// persisted before dispatch so a mail failure never leaves a code the user
// received but the store never saw.
func (s *authService) ResendOTP(ctx context.Context, req model.ResendOTPRequest) error {
	verrs := &validation.Errors{}
	verrs.Field("email", req.Email,
		validation.MinLength(1, "Email must be specified."),
		validation.Email("Email must be a valid email address."))
	if verrs.HasErrors() {
		return verrs
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		return ErrEmailNotFound
	}
	if user.IsConfirmed {
		return ErrAlreadyConfirmed
	}

	otp, err := utils.GenerateOTP(otpDigits)
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}
	if err := s.userRepo.SetOTP(ctx, req.Email, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	html := "<p>Please confirm your account.</p><p>OTP: " + otp + "</p>"
	if err := s.mailer.Send(req.Email, "Confirm Account", html); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}
	s.logger.Info("confirmation otp sent", zap.Int("user_id", user.ID))
	return nil
}
