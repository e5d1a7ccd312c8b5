package middleware

import (
	"net/http"
	"strings"

	"account-service/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer JWT and puts the user id into the request
// context. The token is stateless; no lookup happens server-side.
func Auth(jwtConfig utils.JWTConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			token := parts[1]

			claims, err := utils.ParseToken(jwtConfig.Secret, token)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			// Reset tokens must not pass as login credentials
			if claims.Purpose != utils.TokenPurposeAccess {
				logger.Warn("Token with wrong purpose used for auth",
					zap.String("purpose", claims.Purpose))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
