package users_repositories

import (
	"errors"
	"time"

	users_models "taskplane-backend/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) CreateRefreshToken(token *users_models.RefreshToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}

	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}

	return r.db.Create(token).Error
}

func (r *RefreshTokenRepository) GetRefreshToken(
	token string,
) (*users_models.RefreshToken, error) {
	var stored users_models.RefreshToken

	if err := r.db.Where("token = ?", token).First(&stored).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return &stored, nil
}

func (r *RefreshTokenRepository) DeleteRefreshToken(token string) error {
	return r.db.Where("token = ?", token).
		Delete(&users_models.RefreshToken{}).Error
}

func (r *RefreshTokenRepository) DeleteUserRefreshTokens(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).
		Delete(&users_models.RefreshToken{}).Error
}

func (r *RefreshTokenRepository) DeleteExpiredRefreshTokens(before time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", before).
		Delete(&users_models.RefreshToken{})

	return result.RowsAffected, result.Error
}
