package wire

import (
	"net/http"

	"account-service/internal/adaptor"
	"account-service/internal/data/repository"
	"account-service/internal/usecase"
	"account-service/pkg/mailer"
	"account-service/pkg/middleware"
	"account-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes.
func Wiring(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, mail, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
