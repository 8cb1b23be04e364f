package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/database"
	"movie-catalog/internal/models"

	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *models.PersonalAccessToken) error
	// FindByID loads the token together with its user; nil, nil when revoked or unknown.
	FindByID(ctx context.Context, id uint) (*models.PersonalAccessToken, error)
	Touch(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
}

type tokenRepository struct {
	db      *database.Database
	timeout time.Duration
}

func NewTokenRepository(db *database.Database) TokenRepository {
	return &tokenRepository{
		db:      db,
		timeout: db.GetQueryTimeout(),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *models.PersonalAccessToken) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Omit("User").Create(token).Error; err != nil {
		return fmt.Errorf("insert access token for user %d: %w", token.UserID, err)
	}
	return nil
}

func (r *tokenRepository) FindByID(ctx context.Context, id uint) (*models.PersonalAccessToken, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var token models.PersonalAccessToken
	err := r.db.WithContext(ctx).Preload("User").Take(&token, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find access token %d: %w", id, err)
	}
	return &token, nil
}

// Touch records when the token was last presented.
func (r *tokenRepository) Touch(ctx context.Context, id uint, at time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	err := r.db.WithContext(ctx).
		Model(&models.PersonalAccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", at).Error
	if err != nil {
		return fmt.Errorf("touch access token %d: %w", id, err)
	}
	return nil
}

func (r *tokenRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Delete(&models.PersonalAccessToken{}, id).Error; err != nil {
		return fmt.Errorf("delete access token %d: %w", id, err)
	}
	return nil
}
