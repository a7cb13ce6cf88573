package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tiagokise/qr-api/internal/model"
	"github.com/tiagokise/qr-api/internal/service"
	"github.com/tiagokise/qr-api/internal/validation"
)

type stubAuthService struct {
	signup func(context.Context, model.SignupRequest) (*model.User, error)
	login  func(context.Context, model.LoginRequest) (*model.User, string, error)
	verify func(context.Context, model.VerifyOTPRequest) error
	resend func(context.Context, model.ResendOTPRequest) error
}

func (s *stubAuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	return s.signup(ctx, req)
}

func (s *stubAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, string, error) {
	return s.login(ctx, req)
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) error {
	return s.verify(ctx, req)
}

func (s *stubAuthService) ResendOTP(ctx context.Context, req model.ResendOTPRequest) error {
	return s.resend(ctx, req)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func authRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewAuthHandler(svc, zap.NewNop()).RegisterAuthRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestSignupEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{
		signup: func(_ context.Context, req model.SignupRequest) (*model.User, error) {
			return &model.User{ID: 1, FullName: req.FullName, Email: req.Email, Phone: req.Phone, PasswordHash: "hash"}, nil
		},
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/signup", gin.H{
		"userFullName": "Ana Silva",
		"email":        "ana@example.com",
		"phone":        "11999999999",
		"password":     "secret1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Registration Success.", env.Message)

	var data map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "ana@example.com", data["email"])
	assert.Equal(t, "Ana Silva", data["userFullName"])
	// The hash never leaves the server
	assert.NotContains(t, data, "password")
	assert.NotContains(t, string(env.Data), "hash")
}

func TestSignupEndpoint_ValidationError(t *testing.T) {
	svc := &stubAuthService{
		signup: func(context.Context, model.SignupRequest) (*model.User, error) {
			verrs := &validation.Errors{}
			verrs.Add("email", "Email is already in use.")
			return nil, verrs
		},
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/signup", gin.H{"email": "ana@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation Error.", env.Message)

	var fields []validation.FieldError
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Param)
}

func TestLoginEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{
		login: func(context.Context, model.LoginRequest) (*model.User, string, error) {
			return &model.User{ID: 1, FullName: "Ana Silva", Email: "ana@example.com"}, "token-123", nil
		},
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login Success.", env.Message)

	var data model.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "token-123", data.Token)
	assert.Equal(t, 1, data.ID)
}

func TestLoginEndpoint_Unauthorized(t *testing.T) {
	svc := &stubAuthService{
		login: func(context.Context, model.LoginRequest) (*model.User, string, error) {
			return nil, "", service.ErrInvalidCredentials
		},
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, service.ErrInvalidCredentials.Error(), env.Message)
}

func TestLoginEndpoint_DisabledAccountMessage(t *testing.T) {
	svc := &stubAuthService{
		login: func(context.Context, model.LoginRequest) (*model.User, string, error) {
			return nil, "", service.ErrAccountDisabled
		},
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/login", gin.H{
		"email":    "ana@example.com",
		"password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.ErrAccountDisabled.Error(), env.Message)
}

func TestVerifyOTPEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{
		verify: func(context.Context, model.VerifyOTPRequest) error { return nil },
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/verify-otp", gin.H{
		"email": "ana@example.com",
		"otp":   "1234",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Account confirmed success.", env.Message)
	assert.Nil(t, env.Data)
}

func TestVerifyOTPEndpoint_Mismatch(t *testing.T) {
	svc := &stubAuthService{
		verify: func(context.Context, model.VerifyOTPRequest) error { return service.ErrOTPMismatch },
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/verify-otp", gin.H{
		"email": "ana@example.com",
		"otp":   "9999",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, service.ErrOTPMismatch.Error(), env.Message)
}

func TestResendOTPEndpoint_Success(t *testing.T) {
	svc := &stubAuthService{
		resend: func(context.Context, model.ResendOTPRequest) error { return nil },
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/resend-otp", gin.H{"email": "ana@example.com"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Confirm otp sent.", env.Message)
}

func TestResendOTPEndpoint_ServerError(t *testing.T) {
	svc := &stubAuthService{
		resend: func(context.Context, model.ResendOTPRequest) error { return errors.New("smtp unreachable") },
	}

	w, env := doJSON(t, authRouter(svc), http.MethodPost, "/auth/resend-otp", gin.H{"email": "ana@example.com"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, env.Success)
	// Internal failure details never reach the client
	assert.NotContains(t, env.Message, "smtp")
}
