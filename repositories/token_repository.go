package repositories

import (
	"time"

	"gorm.io/gorm"

	"reservation-server/models"
)

// TokenStore is the persistence contract for refresh tokens and
// single-use email tokens.
type TokenStore interface {
	CreateRefreshToken(token *models.RefreshToken) error
	GetRefreshToken(token string) (*models.RefreshToken, error)
	UpdateRefreshToken(token *models.RefreshToken) error
	RevokeUserRefreshTokens(userID uint) error
	DeleteExpiredRefreshTokens() (int64, error)

	CreateEmailToken(token *models.EmailToken) error
	GetEmailToken(token string, tokenType models.EmailTokenType) (*models.EmailToken, error)
	DeleteEmailToken(id uint) error
	DeleteExpiredEmailTokens() (int64, error)
}

type tokenStore struct {
	db *gorm.DB
}

func NewTokenStore(db *gorm.DB) TokenStore {
	return &tokenStore{db: db}
}

func (s *tokenStore) CreateRefreshToken(token *models.RefreshToken) error {
	return s.db.Create(token).Error
}

func (s *tokenStore) GetRefreshToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token = ?", token).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (s *tokenStore) UpdateRefreshToken(token *models.RefreshToken) error {
	return s.db.Save(token).Error
}

func (s *tokenStore) RevokeUserRefreshTokens(userID uint) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

func (s *tokenStore) DeleteExpiredRefreshTokens() (int64, error) {
	result := s.db.Where("expires_at < ? OR is_revoked = ?", time.Now(), true).
		Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (s *tokenStore) CreateEmailToken(token *models.EmailToken) error {
	return s.db.Create(token).Error
}

func (s *tokenStore) GetEmailToken(token string, tokenType models.EmailTokenType) (*models.EmailToken, error) {
	var et models.EmailToken
	err := s.db.Where("token = ? AND type = ?", token, tokenType).First(&et).Error
	if err != nil {
		return nil, err
	}
	return &et, nil
}

func (s *tokenStore) DeleteEmailToken(id uint) error {
	return s.db.Delete(&models.EmailToken{}, id).Error
}

func (s *tokenStore) DeleteExpiredEmailTokens() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.EmailToken{})
	return result.RowsAffected, result.Error
}
