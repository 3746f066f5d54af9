package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reservation-server/config"
	"reservation-server/models"
	"reservation-server/repositories"
	"reservation-server/types"
)

// JWTService handles JWT token operations
type JWTService struct {
	tokens repositories.TokenStore
}

// NewJWTService creates a new JWT service
func NewJWTService(tokens repositories.TokenStore) *JWTService {
	return &JWTService{tokens: tokens}
}

// TokenPair represents a pair of access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// GenerateTokenPair generates both access and refresh tokens
func (js *JWTService) GenerateTokenPair(user *models.User, deviceID, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := js.generateRefreshToken(user.ID, deviceID, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// generateAccessToken generates a short-lived access token
func (js *JWTService) generateAccessToken(user *models.User) (string, int64, error) {
	claims := &types.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(config.AppConfig.JWT.ExpiryHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "reservation-server",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.AppConfig.JWT.Secret))
	if err != nil {
		return "", 0, err
	}

	expiresIn := int64(config.AppConfig.JWT.ExpiryHours * 3600)
	return tokenString, expiresIn, nil
}

// generateRefreshToken generates a long-lived opaque refresh token and
// persists it with device metadata.
func (js *JWTService) generateRefreshToken(userID uint, deviceID, userAgent, ipAddress string) (string, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	tokenString := hex.EncodeToString(tokenBytes)

	refreshToken := &models.RefreshToken{
		Token:     tokenString,
		UserID:    userID,
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
		DeviceID:  deviceID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := js.tokens.CreateRefreshToken(refreshToken); err != nil {
		return "", err
	}

	logrus.WithField("user_id", userID).Debug("Refresh token generated")
	return tokenString, nil
}

// ValidateAccessToken validates an access token and returns its claims
func (js *JWTService) ValidateAccessToken(tokenString string) (*types.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*types.Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// ValidateRefreshToken validates a refresh token
func (js *JWTService) ValidateRefreshToken(tokenString string) (*models.RefreshToken, error) {
	refreshToken, err := js.tokens.GetRefreshToken(tokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, UnauthorizedError("Refresh token not found")
		}
		return nil, err
	}

	if !refreshToken.IsValid() {
		return nil, UnauthorizedError("Refresh token is invalid or expired")
	}

	return refreshToken, nil
}

// RefreshAccessToken generates a new access token using a refresh token
func (js *JWTService) RefreshAccessToken(refreshTokenString string, user *models.User) (*TokenPair, error) {
	refreshToken, err := js.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return nil, err
	}
	if user.ID != refreshToken.UserID {
		return nil, UnauthorizedError("Refresh token does not belong to this user")
	}

	accessToken, expiresIn, err := js.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken.UpdatedAt = time.Now()
	if err := js.tokens.UpdateRefreshToken(refreshToken); err != nil {
		logrus.WithError(err).Warn("Failed to touch refresh token")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshTokenString,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// RefreshTokenOwner returns the user id behind a valid refresh token.
func (js *JWTService) RefreshTokenOwner(refreshTokenString string) (uint, error) {
	refreshToken, err := js.ValidateRefreshToken(refreshTokenString)
	if err != nil {
		return 0, err
	}
	return refreshToken.UserID, nil
}

// RevokeRefreshToken revokes a refresh token
func (js *JWTService) RevokeRefreshToken(tokenString string) error {
	refreshToken, err := js.tokens.GetRefreshToken(tokenString)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UnauthorizedError("Refresh token not found")
		}
		return err
	}

	refreshToken.Revoke()
	if err := js.tokens.UpdateRefreshToken(refreshToken); err != nil {
		return err
	}

	logrus.WithField("user_id", refreshToken.UserID).Info("Refresh token revoked")
	return nil
}

// RevokeAllUserTokens revokes all refresh tokens for a user
func (js *JWTService) RevokeAllUserTokens(userID uint) error {
	if err := js.tokens.RevokeUserRefreshTokens(userID); err != nil {
		return err
	}
	logrus.WithField("user_id", userID).Info("All refresh tokens revoked")
	return nil
}

// CleanupExpiredTokens removes expired refresh tokens and stale email
// tokens.
func (js *JWTService) CleanupExpiredTokens() error {
	removed, err := js.tokens.DeleteExpiredRefreshTokens()
	if err != nil {
		return err
	}
	emailRemoved, err := js.tokens.DeleteExpiredEmailTokens()
	if err != nil {
		return err
	}
	if removed > 0 || emailRemoved > 0 {
		logrus.WithFields(logrus.Fields{
			"refresh_tokens": removed,
			"email_tokens":   emailRemoved,
		}).Info("Expired tokens cleaned up")
	}
	return nil
}
