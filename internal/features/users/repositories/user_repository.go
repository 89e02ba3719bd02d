package users_repositories

import (
	"errors"
	"fmt"
	"time"

	users_interfaces "taskplane-backend/internal/features/users/interfaces"
	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(user *users_models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(user).Error
}

func (r *UserRepository) GetUserByEmail(email string) (*users_models.User, error) {
	var user users_models.User

	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := r.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetActiveUserByID(userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := r.db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) GetUserByOAuthID(
	provider users_interfaces.OAuthProvider,
	oauthID string,
) (*users_models.User, error) {
	column, err := oauthColumn(provider)
	if err != nil {
		return nil, err
	}

	var user users_models.User

	if err := r.db.Where(column+" = ? AND is_active = ?", oauthID, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &user, nil
}

func (r *UserRepository) UpdateLastLogin(userID uuid.UUID, at time.Time) error {
	return r.db.Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

func (r *UserRepository) UpdateUserPassword(userID uuid.UUID, hashedPassword string) error {
	return r.db.Model(&users_models.User{}).
		Where("id = ?", userID).
		Update("hashed_password", hashedPassword).Error
}

func (r *UserRepository) UpdateUserProfile(userID uuid.UUID, name *string, avatar *string) error {
	updates := make(map[string]any)

	if name != nil {
		updates["name"] = *name
	}
	if avatar != nil {
		updates["avatar"] = *avatar
	}

	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&users_models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

func (r *UserRepository) LinkOAuthID(
	userID uuid.UUID,
	provider users_interfaces.OAuthProvider,
	oauthID string,
) error {
	column, err := oauthColumn(provider)
	if err != nil {
		return err
	}

	return r.db.Model(&users_models.User{}).
		Where("id = ?", userID).
		Update(column, oauthID).Error
}

func oauthColumn(provider users_interfaces.OAuthProvider) (string, error) {
	switch provider {
	case users_interfaces.OAuthProviderGoogle:
		return "google_id", nil
	case users_interfaces.OAuthProviderGitHub:
		return "github_id", nil
	default:
		return "", fmt.Errorf("unknown oauth provider: %s", provider)
	}
}
