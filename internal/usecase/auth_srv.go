package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"account-service/internal/data/entity"
	"account-service/internal/data/repository"
	"account-service/internal/dto/request"
	"account-service/internal/dto/response"
	"account-service/pkg/mailer"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, profileImagePath *string) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error)
	ForgetPassword(ctx context.Context, req *request.ForgetPasswordRequest) error
	VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.VerifyOTPResponse, error)
	ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error
}

type authService struct {
	repo   *repository.Repository
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger

	// swapped out in tests for a fixed code
	generateOTP func(length int) string
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:        repo,
		mail:        mail,
		config:      config,
		log:         log,
		generateOTP: utils.GenerateOTP,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, profileImagePath *string) (*response.UserResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Reject duplicate email
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existingUser != nil {
		return nil, ErrDuplicateAccount
	}

	dateOfBirth, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: dateOfBirth must be YYYY-MM-DD", ErrValidation)
	}

	// 3. Hash password. The plaintext is never stored or logged.
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Name:             req.Name,
		DateOfBirth:      dateOfBirth,
		Email:            req.Email,
		PasswordHash:     hashedPassword,
		ProfileImagePath: profileImagePath,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// 4. Save user. The store assigns the id.
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.LoginResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find user: %w", err)
	}

	// Unknown email and wrong password collapse to the same answer so the
	// endpoint does not leak which accounts exist.
	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, ErrInvalidCredentials
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	// 4. Issue stateless bearer token
	ttl := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.GenerateAccessToken(s.config.JWT.Secret, user.ID, ttl)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return &response.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

func (s *authService) ForgetPassword(ctx context.Context, req *request.ForgetPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Forget password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Generate a fresh code and upsert it. One statement keyed by email,
	// so concurrent requests cannot leave duplicate rows behind.
	code := s.generateOTP(s.config.OTP.Length)
	expiresAt := time.Now().Add(time.Duration(s.config.OTP.ExpiryMinutes) * time.Minute)

	otp := &entity.PasswordOTP{
		Email:     req.Email,
		Code:      code,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.OTP.Upsert(ctx, otp); err != nil {
		s.log.Error("Failed to save OTP", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("save OTP: %w", err)
	}

	// 3. Dispatch the code by mail. A failed send leaves the row in place;
	// the next issue request overwrites it and the TTL bounds its life.
	body := fmt.Sprintf("Your OTP for email verification is: %s\nThis code expires in %d minutes.",
		code, s.config.OTP.ExpiryMinutes)

	if err := s.mail.Send(ctx, req.Email, "Verification OTP", body); err != nil {
		s.log.Error("Failed to send OTP email", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("%w: %s", ErrMailDelivery, req.Email)
	}

	s.log.Info("OTP issued",
		zap.String("email", req.Email),
		zap.Time("expires_at", expiresAt))

	return nil
}

func (s *authService) VerifyOTP(ctx context.Context, req *request.VerifyOTPRequest) (*response.VerifyOTPResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Verify OTP validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Look up the single live code for this email
	otp, err := s.repo.OTP.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find OTP", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("find OTP: %w", err)
	}
	if otp == nil || otp.Consumed || time.Now().After(otp.ExpiresAt) {
		return nil, ErrInvalidOTP
	}

	// 3. Constant-time compare; only the most recently issued code matches
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(req.OTP)) != 1 {
		s.log.Warn("OTP mismatch", zap.String("email", req.Email))
		return nil, ErrInvalidOTP
	}

	// 4. Burn the code before handing out the reset credential
	if err := s.repo.OTP.MarkConsumed(ctx, req.Email); err != nil {
		s.log.Error("Failed to consume OTP", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("consume OTP: %w", err)
	}

	// 5. Issue the short-lived reset token the reset endpoint requires
	ttl := time.Duration(s.config.JWT.ResetTokenMinutes) * time.Minute
	resetToken, err := utils.GenerateResetToken(s.config.JWT.Secret, req.Email, ttl)
	if err != nil {
		s.log.Error("Failed to sign reset token", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("sign reset token: %w", err)
	}

	s.log.Info("OTP verified", zap.String("email", req.Email))

	return &response.VerifyOTPResponse{
		ResetToken: resetToken,
		ExpiresAt:  time.Now().Add(ttl),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *request.ResetPasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reset password validation failed", zap.Any("errors", errs))
		return fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. The reset token proves a recent OTP verification for this email
	claims, err := utils.ParseToken(s.config.JWT.Secret, req.ResetToken)
	if err != nil {
		s.log.Warn("Invalid reset token", zap.Error(err), zap.String("email", req.Email))
		return ErrInvalidResetToken
	}
	if claims.Purpose != utils.TokenPurposePasswordReset || claims.Email != req.Email {
		s.log.Warn("Reset token does not match email", zap.String("email", req.Email))
		return ErrInvalidResetToken
	}

	// 3. Find user
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user", zap.Error(err), zap.String("email", req.Email))
		return fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	// 4. Re-hash and overwrite the credential
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.User.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		s.log.Error("Failed to update password", zap.Error(err), zap.Int64("user_id", user.ID))
		return fmt.Errorf("update password: %w", err)
	}

	s.log.Info("Password reset",
		zap.Int64("user_id", user.ID),
		zap.String("email", req.Email))

	return nil
}
