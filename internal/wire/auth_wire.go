package wire

import (
	"account-service/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// All auth routes are public
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/forget-password", authHandler.ForgetPassword)
	r.Post("/api/verify-otp-email", authHandler.VerifyOTP)
	r.Post("/api/reset-password", authHandler.ResetPassword)
}
