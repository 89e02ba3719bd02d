package users_services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"taskplane-backend/internal/cache"
	users_dto "taskplane-backend/internal/features/users/dto"
	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userStore      users_interfaces.UserStore
	tokenService   *TokenService
	sessionCache   cache.Cache
	auditLogWriter users_interfaces.AuditLogWriter
	bcryptCost     int
}

func NewUserService(
	userStore users_interfaces.UserStore,
	tokenService *TokenService,
	sessionCache cache.Cache,
	auditLogWriter users_interfaces.AuditLogWriter,
	bcryptCost int,
) *UserService {
	return &UserService{
		userStore:      userStore,
		tokenService:   tokenService,
		sessionCache:   sessionCache,
		auditLogWriter: auditLogWriter,
		bcryptCost:     bcryptCost,
	}
}

func (s *UserService) Register(
	request *users_dto.RegisterRequestDTO,
) (*users_dto.AuthTokensResponseDTO, error) {
	email := strings.ToLower(request.Email)

	existingUser, err := s.userStore.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &users_models.User{
		ID:             uuid.New(),
		Email:          email,
		HashedPassword: string(hashedPassword),
		Name:           request.Name,
		Avatar:         request.Avatar,
		IsActive:       true,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.userStore.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User registered with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return s.issueTokenPair(user)
}

func (s *UserService) Login(
	request *users_dto.LoginRequestDTO,
) (*users_dto.AuthTokensResponseDTO, error) {
	user, err := s.userStore.GetUserByEmail(strings.ToLower(request.Email))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Unknown email and wrong password must be indistinguishable to the
	// caller.
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.HashedPassword),
		[]byte(request.Password),
	); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.stampLastLogin(user); err != nil {
		return nil, err
	}

	s.auditLogWriter.WriteAuditLog(
		fmt.Sprintf("User signed in with email: %s", user.Email),
		&user.ID,
		nil,
	)

	return s.issueTokenPair(user)
}

// OAuthLogin resolves the profile by provider ID first, then by email
// (linking the provider to the existing account), and creates a user when
// neither matches. Created users receive a random placeholder password that
// cannot be used for credential login.
func (s *UserService) OAuthLogin(
	profile *users_dto.OAuthProfile,
) (*users_dto.AuthTokensResponseDTO, error) {
	user, err := s.userStore.GetUserByOAuthID(profile.Provider, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check oauth id: %w", err)
	}

	if user == nil {
		email := strings.ToLower(profile.Email)

		userByEmail, err := s.userStore.GetUserByEmail(email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}

		if userByEmail != nil {
			// Account linking by email match: trusted deliberately, see
			// the dedicated takeover test.
			if err := s.userStore.LinkOAuthID(userByEmail.ID, profile.Provider, profile.ID); err != nil {
				return nil, fmt.Errorf("failed to link oauth id: %w", err)
			}

			user = userByEmail

			s.auditLogWriter.WriteAuditLog(
				fmt.Sprintf("%s account linked to existing user", profile.Provider),
				&user.ID,
				nil,
			)
		} else {
			placeholder, err := randomPlaceholderPassword(s.bcryptCost)
			if err != nil {
				return nil, err
			}

			user = &users_models.User{
				ID:             uuid.New(),
				Email:          email,
				HashedPassword: placeholder,
				Name:           profile.Name,
				Avatar:         profile.Avatar,
				IsActive:       true,
				CreatedAt:      time.Now().UTC(),
			}

			switch profile.Provider {
			case users_interfaces.OAuthProviderGoogle:
				user.GoogleID = &profile.ID
			case users_interfaces.OAuthProviderGitHub:
				user.GitHubID = &profile.ID
			}

			if err := s.userStore.CreateUser(user); err != nil {
				return nil, fmt.Errorf("failed to create user: %w", err)
			}

			s.auditLogWriter.WriteAuditLog(
				fmt.Sprintf("User registered via %s oauth: %s", profile.Provider, user.Email),
				&user.ID,
				nil,
			)
		}
	}

	if err := s.stampLastLogin(user); err != nil {
		return nil, err
	}

	return s.issueTokenPair(user)
}

func (s *UserService) ChangePassword(
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	user, err := s.userStore.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.HashedPassword),
		[]byte(currentPassword),
	); err != nil {
		return ErrIncorrectPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userStore.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	// Forces re-login on every device that holds an old refresh token.
	if err := s.tokenService.RevokeAll(userID); err != nil {
		return err
	}

	s.auditLogWriter.WriteAuditLog("Password changed", &userID, nil)

	return nil
}

func (s *UserService) GetProfile(userID uuid.UUID) (*users_dto.ProfileResponseDTO, error) {
	user, err := s.userStore.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return &users_dto.ProfileResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}, nil
}

func (s *UserService) UpdateProfile(
	userID uuid.UUID,
	request *users_dto.UpdateProfileRequestDTO,
) (*users_dto.ProfileResponseDTO, error) {
	if err := s.userStore.UpdateUserProfile(userID, request.Name, request.Avatar); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.sessionCache.Delete(cache.SessionKey(userID))
	s.auditLogWriter.WriteAuditLog("User profile updated", &userID, nil)

	return s.GetProfile(userID)
}

func (s *UserService) GetActiveUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userStore.GetActiveUserByID(userID)
}

func (s *UserService) TokenService() *TokenService {
	return s.tokenService
}

func (s *UserService) issueTokenPair(
	user *users_models.User,
) (*users_dto.AuthTokensResponseDTO, error) {
	accessToken, err := s.tokenService.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &users_dto.AuthTokensResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: users_dto.UserDTO{
			ID:     user.ID,
			Email:  user.Email,
			Name:   user.Name,
			Avatar: user.Avatar,
		},
	}, nil
}

func (s *UserService) stampLastLogin(user *users_models.User) error {
	now := time.Now().UTC()

	if err := s.userStore.UpdateLastLogin(user.ID, now); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	user.LastLogin = &now

	return nil
}

func randomPlaceholderPassword(cost int) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate placeholder password: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(raw)), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	return string(hashed), nil
}
