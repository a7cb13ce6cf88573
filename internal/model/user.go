package model

import "time"

// User represents a registered account.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"userFullName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"` // Never expose the hash in JSON responses
	IsConfirmed  bool      `json:"-"`
	ConfirmOTP   *string   `json:"-"`
	OTPTries     int       `json:"-"`
	Status       bool      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	FullName string `json:"userFullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest carries the account confirmation fields.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPRequest carries the confirmation resend fields.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// SignupResponse is the identity returned after registration.
type SignupResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"userFullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// LoginResponse is the identity plus token returned after login.
type LoginResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"userFullName"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}
