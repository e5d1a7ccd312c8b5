package adaptor

import (
	"account-service/internal/usecase"
	"account-service/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth *AuthHandler
	User *UserHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth: NewAuthHandler(service.Auth, config.Upload, log),
		User: NewUserHandler(service.User, log),
	}
}
