package wire

import (
	"account-service/internal/adaptor"
	"account-service/pkg/middleware"
	"account-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures the user routes. Listing and profile both require a
// valid bearer token.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.With(middleware.Auth(config.JWT, log)).Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)    // GET /api/users?page=1&per_page=10
		r.Get("/me", userHandler.GetProfile) // GET /api/users/me
	})
}
