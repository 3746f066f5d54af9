package services

import (
	"errors"
	"testing"

	"reservation-server/config"
	"reservation-server/models"
)

func newJWTFixture(t *testing.T) (*JWTService, *mockTokenStore) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
	}
	tokens := newMockTokenStore()
	return NewJWTService(tokens), tokens
}

func TestTokenPairRoundTrip(t *testing.T) {
	service, _ := newJWTFixture(t)
	user := &models.User{Email: "tenant@example.com", Role: models.RoleAdmin}
	user.ID = 7

	pair, err := service.GenerateTokenPair(user, "device-1", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	if pair.TokenType != "Bearer" {
		t.Fatalf("unexpected token type: %q", pair.TokenType)
	}

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Role != string(models.RoleAdmin) {
		t.Fatalf("expected admin role claim, got %q", claims.Role)
	}

	owner, err := service.RefreshTokenOwner(pair.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshTokenOwner failed: %v", err)
	}
	if owner != 7 {
		t.Fatalf("expected owner 7, got %d", owner)
	}
}

func TestValidateAccessTokenRejectsTampering(t *testing.T) {
	service, _ := newJWTFixture(t)
	user := &models.User{Email: "tenant@example.com", Role: models.RoleTenant}
	user.ID = 7

	pair, err := service.GenerateTokenPair(user, "device-1", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if _, err := service.ValidateAccessToken(pair.AccessToken + "x"); err == nil {
		t.Fatal("expected tampered token to be rejected")
	}

	config.AppConfig.JWT.Secret = "rotated-secret"
	if _, err := service.ValidateAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected token signed with the old secret to be rejected")
	}
}

func TestRefreshAccessToken(t *testing.T) {
	service, _ := newJWTFixture(t)
	user := &models.User{Email: "tenant@example.com", Role: models.RoleTenant}
	user.ID = 7

	pair, err := service.GenerateTokenPair(user, "device-1", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	refreshed, err := service.RefreshAccessToken(pair.RefreshToken, user)
	if err != nil {
		t.Fatalf("RefreshAccessToken failed: %v", err)
	}
	if refreshed.RefreshToken != pair.RefreshToken {
		t.Fatal("refresh should keep the same refresh token")
	}

	other := &models.User{Email: "other@example.com", Role: models.RoleTenant}
	other.ID = 8
	if _, err := service.RefreshAccessToken(pair.RefreshToken, other); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for another user's refresh token, got %v", err)
	}
}

func TestRevokeRefreshToken(t *testing.T) {
	service, _ := newJWTFixture(t)
	user := &models.User{Email: "tenant@example.com", Role: models.RoleTenant}
	user.ID = 7

	pair, err := service.GenerateTokenPair(user, "device-1", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if err := service.RevokeRefreshToken(pair.RefreshToken); err != nil {
		t.Fatalf("RevokeRefreshToken failed: %v", err)
	}
	if _, err := service.ValidateRefreshToken(pair.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected revoked token to be unauthorized, got %v", err)
	}
}

func TestRevokeAllUserTokens(t *testing.T) {
	service, _ := newJWTFixture(t)
	user := &models.User{Email: "tenant@example.com", Role: models.RoleTenant}
	user.ID = 7

	first, err := service.GenerateTokenPair(user, "device-1", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}
	second, err := service.GenerateTokenPair(user, "device-2", "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateTokenPair failed: %v", err)
	}

	if err := service.RevokeAllUserTokens(7); err != nil {
		t.Fatalf("RevokeAllUserTokens failed: %v", err)
	}
	if _, err := service.ValidateRefreshToken(first.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected first token revoked, got %v", err)
	}
	if _, err := service.ValidateRefreshToken(second.RefreshToken); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected second token revoked, got %v", err)
	}
}

func TestValidateUnknownRefreshToken(t *testing.T) {
	service, _ := newJWTFixture(t)

	if _, err := service.ValidateRefreshToken("missing"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown token, got %v", err)
	}
}
