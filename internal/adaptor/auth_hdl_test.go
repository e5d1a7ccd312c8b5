package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeAuthService returns canned results per method.
type fakeAuthService struct {
	registerResp *response.UserResponse
	registerErr  error
	loginResp    *response.LoginResponse
	loginErr     error
	forgetErr    error
	verifyResp   *response.VerifyOTPResponse
	verifyErr    error
	resetErr     error
}

func (f *fakeAuthService) Register(_ context.Context, _ *request.RegisterRequest, _ *string) (*response.UserResponse, error) {
	return f.registerResp, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, _ *request.LoginRequest) (*response.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthService) ForgetPassword(_ context.Context, _ *request.ForgetPasswordRequest) error {
	return f.forgetErr
}

func (f *fakeAuthService) VerifyOTP(_ context.Context, _ *request.VerifyOTPRequest) (*response.VerifyOTPResponse, error) {
	return f.verifyResp, f.verifyErr
}

func (f *fakeAuthService) ResetPassword(_ context.Context, _ *request.ResetPasswordRequest) error {
	return f.resetErr
}

func newAuthHandler(svc usecase.AuthService, t *testing.T) *AuthHandler {
	return NewAuthHandler(svc, utils.UploadConfig{Dir: t.TempDir()}, zap.NewNop())
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func registerFields() map[string]string {
	return map[string]string{
		"name":        "Ada Lovelace",
		"dateOfBirth": "1990-12-10",
		"email":       "a@x.com",
		"password":    "p1secret",
	}
}

func TestRegisterHandler(t *testing.T) {
	// success
	svc := &fakeAuthService{registerResp: &response.UserResponse{ID: 1, Email: "a@x.com"}}
	h := newAuthHandler(svc, t)

	body, contentType := multipartBody(t, registerFields())
	req := httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "p1secret")

	// duplicate account
	svc.registerErr = usecase.ErrDuplicateAccount
	svc.registerResp = nil
	body, contentType = multipartBody(t, registerFields())
	req = httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validation failure short-circuits before the service
	fields := registerFields()
	fields["email"] = "nope"
	body, contentType = multipartBody(t, fields)
	req = httptest.NewRequest(http.MethodPost, "/api/register", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// not multipart at all
	req = httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader("{}"))
	rec = httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterHandlerWithImage(t *testing.T) {
	svc := &fakeAuthService{registerResp: &response.UserResponse{ID: 1, Email: "a@x.com"}}
	h := newAuthHandler(svc, t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range registerFields() {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("profileImage", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
}

func jsonRequest(t *testing.T, path string, payload any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginHandler(t *testing.T) {
	svc := &fakeAuthService{loginResp: &response.LoginResponse{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}}
	h := newAuthHandler(svc, t)

	rec := httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "/api/login", request.LoginRequest{Email: "a@x.com", Password: "p1"}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "tok")

	// bad credentials
	svc.loginErr = usecase.ErrInvalidCredentials
	svc.loginResp = nil
	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "/api/login", request.LoginRequest{Email: "a@x.com", Password: "bad"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// store failure is a generic 500
	svc.loginErr = context.DeadlineExceeded
	rec = httptest.NewRecorder()
	h.Login(rec, jsonRequest(t, "/api/login", request.LoginRequest{Email: "a@x.com", Password: "p1"}))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "deadline")

	// malformed body
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader("{"))
	h.Login(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgetPasswordHandler(t *testing.T) {
	svc := &fakeAuthService{}
	h := newAuthHandler(svc, t)

	rec := httptest.NewRecorder()
	h.ForgetPassword(rec, jsonRequest(t, "/api/forget-password", request.ForgetPasswordRequest{Email: "a@x.com"}))
	require.Equal(t, http.StatusOK, rec.Code)

	// transport failure
	svc.forgetErr = usecase.ErrMailDelivery
	rec = httptest.NewRecorder()
	h.ForgetPassword(rec, jsonRequest(t, "/api/forget-password", request.ForgetPasswordRequest{Email: "a@x.com"}))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestVerifyOTPHandler(t *testing.T) {
	svc := &fakeAuthService{verifyResp: &response.VerifyOTPResponse{ResetToken: "reset-tok"}}
	h := newAuthHandler(svc, t)

	rec := httptest.NewRecorder()
	h.VerifyOTP(rec, jsonRequest(t, "/api/verify-otp-email", request.VerifyOTPRequest{Email: "a@x.com", OTP: "123456"}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "reset-tok")

	svc.verifyErr = usecase.ErrInvalidOTP
	svc.verifyResp = nil
	rec = httptest.NewRecorder()
	h.VerifyOTP(rec, jsonRequest(t, "/api/verify-otp-email", request.VerifyOTPRequest{Email: "a@x.com", OTP: "000000"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// validation rejects non-numeric codes before the service runs
	rec = httptest.NewRecorder()
	h.VerifyOTP(rec, jsonRequest(t, "/api/verify-otp-email", request.VerifyOTPRequest{Email: "a@x.com", OTP: "abc"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordHandler(t *testing.T) {
	svc := &fakeAuthService{}
	h := newAuthHandler(svc, t)

	payload := request.ResetPasswordRequest{Email: "a@x.com", Password: "p2secret", ResetToken: "tok"}

	rec := httptest.NewRecorder()
	h.ResetPassword(rec, jsonRequest(t, "/api/reset-password", payload))
	require.Equal(t, http.StatusOK, rec.Code)

	svc.resetErr = usecase.ErrNotFound
	rec = httptest.NewRecorder()
	h.ResetPassword(rec, jsonRequest(t, "/api/reset-password", payload))
	require.Equal(t, http.StatusNotFound, rec.Code)

	svc.resetErr = usecase.ErrInvalidResetToken
	rec = httptest.NewRecorder()
	h.ResetPassword(rec, jsonRequest(t, "/api/reset-password", payload))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
