package users_controllers

import (
	"errors"
	"net/http"

	users_dto "taskplane-backend/internal/features/users/dto"
	users_middleware "taskplane-backend/internal/features/users/middleware"
	users_services "taskplane-backend/internal/features/users/services"
	"taskplane-backend/internal/util/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

type AuthController struct {
	userService  *users_services.UserService
	tokenService *users_services.TokenService
	oauthService *users_services.OAuthService
	rateLimiter  *rate.Limiter
}

func NewAuthController(
	userService *users_services.UserService,
	tokenService *users_services.TokenService,
	oauthService *users_services.OAuthService,
) *AuthController {
	return &AuthController{
		userService,
		tokenService,
		oauthService,
		rate.NewLimiter(rate.Limit(3), 3), // 3 rps with 3 burst
	}
}

func (c *AuthController) RegisterRoutes(
	router *gin.RouterGroup,
	authenticate gin.HandlerFunc,
	optionalAuthenticate gin.HandlerFunc,
) {
	authRoutes := router.Group("/auth")

	authRoutes.POST("/register", c.Register)
	authRoutes.POST("/login", c.Login)
	authRoutes.POST("/refresh", c.Refresh)
	authRoutes.POST("/logout", c.Logout)
	authRoutes.POST("/oauth/github", c.GitHubCallback)
	authRoutes.POST("/oauth/google", c.GoogleCallback)

	authRoutes.GET("/session", optionalAuthenticate, c.Session)

	authRoutes.GET("/verify", authenticate, c.Verify)
	authRoutes.GET("/me", authenticate, c.GetProfile)
	authRoutes.PUT("/profile", authenticate, c.UpdateProfile)
	authRoutes.PUT("/change-password", authenticate, c.ChangePassword)
	authRoutes.POST("/logout-all", authenticate, c.LogoutAll)
}

// Register
// @Summary Register a new user
// @Description Create a new account and issue an access/refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.RegisterRequestDTO true "Registration data"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	if !c.rateLimiter.Allow() {
		response.Fail(ctx, http.StatusTooManyRequests, "Too many requests")
		return
	}

	var request users_dto.RegisterRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	tokens, err := c.userService.Register(&request)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusCreated, "Registration successful", tokens)
}

// Login
// @Summary Sign in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.LoginRequestDTO true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	if !c.rateLimiter.Allow() {
		response.Fail(ctx, http.StatusTooManyRequests, "Too many requests")
		return
	}

	var request users_dto.LoginRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	tokens, err := c.userService.Login(&request)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Login successful", tokens)
}

// Refresh
// @Summary Exchange a refresh token for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.RefreshRequestDTO true "Refresh token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (c *AuthController) Refresh(ctx *gin.Context) {
	var request users_dto.RefreshRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	accessToken, err := c.tokenService.RefreshAccessToken(request.RefreshToken)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Token refreshed", &users_dto.RefreshResponseDTO{
		AccessToken: accessToken,
	})
}

// Logout
// @Summary Revoke a single refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.LogoutRequestDTO true "Refresh token to revoke"
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var request users_dto.LogoutRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	// Revocation is idempotent: logging out an already revoked token
	// still reports success.
	if err := c.tokenService.Revoke(request.RefreshToken); err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Logout failed")
		return
	}

	response.OK(ctx, http.StatusOK, "Logged out", nil)
}

// LogoutAll
// @Summary Revoke every refresh token for the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/logout-all [post]
func (c *AuthController) LogoutAll(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := c.tokenService.RevokeAll(user.ID); err != nil {
		response.Fail(ctx, http.StatusInternalServerError, "Logout failed")
		return
	}

	response.OK(ctx, http.StatusOK, "Logged out from all devices", nil)
}

// Session
// @Summary Describe the current session
// @Description Anonymous callers get authenticated=false instead of a 401
// @Tags auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/session [get]
func (c *AuthController) Session(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.OK(ctx, http.StatusOK, "Anonymous session", &users_dto.SessionResponseDTO{
			Authenticated: false,
		})
		return
	}

	response.OK(ctx, http.StatusOK, "Authenticated session", &users_dto.SessionResponseDTO{
		Authenticated: true,
		User:          user,
	})
}

// Verify
// @Summary Verify the current access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/verify [get]
func (c *AuthController) Verify(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	response.OK(ctx, http.StatusOK, "Token is valid", user)
}

// GetProfile
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	profile, err := c.userService.GetProfile(user.ID)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Profile retrieved", profile)
}

// UpdateProfile
// @Summary Update the authenticated user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.UpdateProfileRequestDTO true "Profile fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/profile [put]
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request users_dto.UpdateProfileRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	profile, err := c.userService.UpdateProfile(user.ID, &request)
	if err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Profile updated", profile)
}

// ChangePassword
// @Summary Change the authenticated user's password
// @Description Changing the password revokes every refresh token for the user
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body users_dto.ChangePasswordRequestDTO true "Current and new password"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/change-password [put]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		response.Fail(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var request users_dto.ChangePasswordRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	if err := c.userService.ChangePassword(user.ID, request.CurrentPassword, request.NewPassword); err != nil {
		c.respondAuthError(ctx, err)
		return
	}

	response.OK(ctx, http.StatusOK, "Password changed, please sign in again", nil)
}

// GitHubCallback
// @Summary Complete GitHub OAuth sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.OAuthCallbackRequestDTO true "Authorization code"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/oauth/github [post]
func (c *AuthController) GitHubCallback(ctx *gin.Context) {
	var request users_dto.OAuthCallbackRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	tokens, err := c.oauthService.HandleGitHubCallback(
		ctx.Request.Context(), request.Code, request.RedirectUri,
	)
	if err != nil {
		response.Fail(ctx, http.StatusUnauthorized, "OAuth sign-in failed")
		return
	}

	response.OK(ctx, http.StatusOK, "Login successful", tokens)
}

// GoogleCallback
// @Summary Complete Google OAuth sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body users_dto.OAuthCallbackRequestDTO true "Authorization code"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/oauth/google [post]
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	var request users_dto.OAuthCallbackRequestDTO
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondValidationError(ctx, err)
		return
	}

	tokens, err := c.oauthService.HandleGoogleCallback(
		ctx.Request.Context(), request.Code, request.RedirectUri,
	)
	if err != nil {
		response.Fail(ctx, http.StatusUnauthorized, "OAuth sign-in failed")
		return
	}

	response.OK(ctx, http.StatusOK, "Login successful", tokens)
}

func (c *AuthController) respondAuthError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, users_services.ErrUserExists):
		response.Fail(ctx, http.StatusConflict, "User with this email already exists")
	case errors.Is(err, users_services.ErrInvalidCredentials):
		response.Fail(ctx, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, users_services.ErrInvalidToken),
		errors.Is(err, users_services.ErrInvalidRefreshToken):
		response.Fail(ctx, http.StatusUnauthorized, "Invalid or expired token")
	case errors.Is(err, users_services.ErrRefreshTokenExpired):
		response.Fail(ctx, http.StatusUnauthorized, "Refresh token expired, please sign in again")
	case errors.Is(err, users_services.ErrIncorrectPassword):
		response.Fail(ctx, http.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, users_services.ErrUserNotFound):
		response.Fail(ctx, http.StatusNotFound, "User not found")
	default:
		response.Fail(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func respondValidationError(ctx *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details = append(details, fieldErr.Field()+" failed on "+fieldErr.Tag())
		}

		response.ValidationFailed(ctx, details)

		return
	}

	response.Fail(ctx, http.StatusBadRequest, "Invalid request format")
}
