package users_middleware

import (
	"net/http"
	"strings"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_services "taskplane-backend/internal/features/users/services"
	"taskplane-backend/internal/util/logger"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
)

var log = logger.GetLogger()

const userContextKey = "authenticatedUser"

// AuthMiddleware authenticates the bearer token and attaches a minimal user
// record to the request. The password hash is never attached. Any failure
// terminates the request with 401.
func AuthMiddleware(
	tokenService *users_services.TokenService,
	userService *users_services.UserService,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := extractBearerToken(ctx)
		if !ok {
			response.Fail(ctx, http.StatusUnauthorized, "Access token required")
			ctx.Abort()
			return
		}

		user, failed := resolveUser(ctx, tokenService, userService, token)
		if failed {
			return
		}

		if user == nil {
			response.Fail(ctx, http.StatusUnauthorized, "Invalid token or user not found")
			ctx.Abort()
			return
		}

		ctx.Set(userContextKey, user)
		ctx.Next()
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present and
// otherwise lets the request proceed unauthenticated. Verification failures
// are swallowed; storage failures are logged so they stay distinguishable
// from "no token provided" in the logs.
func OptionalAuthMiddleware(
	tokenService *users_services.TokenService,
	userService *users_services.UserService,
) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, ok := extractBearerToken(ctx)
		if !ok {
			ctx.Next()
			return
		}

		claims, err := tokenService.VerifyAccessToken(token)
		if err != nil {
			ctx.Next()
			return
		}

		user, err := userService.GetActiveUserByID(claims.UserID)
		if err != nil {
			log.Error("Optional authentication lookup failed", "error", err)
			ctx.Next()
			return
		}

		if user != nil {
			ctx.Set(userContextKey, &users_dto.UserDTO{
				ID:     user.ID,
				Email:  user.Email,
				Name:   user.Name,
				Avatar: user.Avatar,
			})
		}

		ctx.Next()
	}
}

// GetUserFromContext returns the authenticated user attached by the
// middleware.
func GetUserFromContext(ctx *gin.Context) (*users_dto.UserDTO, bool) {
	value, exists := ctx.Get(userContextKey)
	if !exists {
		return nil, false
	}

	user, ok := value.(*users_dto.UserDTO)

	return user, ok
}

func resolveUser(
	ctx *gin.Context,
	tokenService *users_services.TokenService,
	userService *users_services.UserService,
	token string,
) (*users_dto.UserDTO, bool) {
	claims, err := tokenService.VerifyAccessToken(token)
	if err != nil {
		response.Fail(ctx, http.StatusUnauthorized, "Invalid token")
		ctx.Abort()
		return nil, true
	}

	user, err := userService.GetActiveUserByID(claims.UserID)
	if err != nil {
		log.Error("Authentication lookup failed", "error", err)
		response.Fail(ctx, http.StatusInternalServerError, "Authentication failed")
		ctx.Abort()
		return nil, true
	}

	if user == nil {
		return nil, false
	}

	return &users_dto.UserDTO{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: user.Avatar,
	}, false
}

func extractBearerToken(ctx *gin.Context) (string, bool) {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}
