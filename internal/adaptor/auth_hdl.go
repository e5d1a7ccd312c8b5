package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"account-service/internal/dto/request"
	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20 // 10 MB

type AuthHandler struct {
	service usecase.AuthService
	upload  utils.UploadConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, upload utils.UploadConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		upload:  upload,
		log:     log,
	}
}

// Register handles POST /api/register (multipart form)
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := request.RegisterRequest{
		Name:        r.FormValue("name"),
		DateOfBirth: r.FormValue("dateOfBirth"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Optional profile image
	var profileImagePath *string
	file, header, err := r.FormFile("profileImage")
	if err == nil {
		defer file.Close()

		path, err := utils.SaveUploadedFile(file, header, h.upload.Dir)
		if err != nil {
			h.log.Error("Failed to store profile image", zap.Error(err))
			utils.ResponseInternalError(w, "Internal server error")
			return
		}
		profileImagePath = &path
	} else if err != http.ErrMissingFile {
		utils.ResponseBadRequest(w, "Invalid profile image", nil)
		return
	}

	resp, err := h.service.Register(r.Context(), &req, profileImagePath)
	if err != nil {
		h.handleServiceError(w, err, "register")
		return
	}

	utils.ResponseCreated(w, "User registered successfully", resp)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// ForgetPassword handles POST /api/forget-password
func (h *AuthHandler) ForgetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ForgetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ForgetPassword(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "forget password")
		return
	}

	utils.ResponseSuccess(w, "OTP sent successfully", nil)
}

// VerifyOTP handles POST /api/verify-otp-email
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	resp, err := h.service.VerifyOTP(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "verify OTP")
		return
	}

	utils.ResponseSuccess(w, "OTP verified successfully", resp)
}

// ResetPassword handles POST /api/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req request.ResetPasswordRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		h.handleServiceError(w, err, "reset password")
		return
	}

	utils.ResponseSuccess(w, "Password reset successful", nil)
}

// handleServiceError maps service errors to HTTP responses. Internal
// detail stays in the logs.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrDuplicateAccount):
		h.log.Warn(operation+" failed - duplicate account", zap.Error(err))
		utils.ResponseBadRequest(w, "You already have an account", nil)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		h.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid email or password", nil)

	case errors.Is(err, usecase.ErrInvalidOTP):
		h.log.Warn(operation+" failed - invalid OTP", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid OTP", nil)

	case errors.Is(err, usecase.ErrInvalidResetToken):
		h.log.Warn(operation+" failed - invalid reset token", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid or expired reset token", nil)

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "User not found")

	case errors.Is(err, usecase.ErrMailDelivery):
		h.log.Error("Failed to "+operation+" - mail delivery", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to send OTP")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
