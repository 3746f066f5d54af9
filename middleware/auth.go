package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"reservation-server/config"
	"reservation-server/database"
	"reservation-server/models"
	"reservation-server/types"
)

// Claims represents the JWT claims (using shared types)
type Claims = types.Claims

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

func parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(config.AppConfig.JWT.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// authenticate resolves a bearer token into a live user and stores it
// on the context.
func authenticate(c *gin.Context, tokenString string) bool {
	claims, err := parseToken(tokenString)
	if err != nil {
		logrus.WithError(err).Debug("Token validation failed")
		abortUnauthorized(c, "Token is invalid or expired")
		return false
	}

	var user models.User
	if err := database.DB.First(&user, claims.UserID).Error; err != nil {
		abortUnauthorized(c, "User associated with token not found")
		return false
	}

	c.Set("user", user)
	c.Set("user_id", user.ID)
	c.Set("role", string(user.Role))
	return true
}

// AuthMiddleware validates JWT tokens and sets user context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Token must be in format: Bearer <token>")
			return
		}

		if authenticate(c, tokenString) {
			c.Next()
		}
	}
}

// AdminMiddleware requires an authenticated admin. It must run after
// AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			abortUnauthorized(c, "Authentication required")
			return
		}
		u, ok := user.(models.User)
		if !ok || !u.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin privileges required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// WebSocketAuthMiddleware validates JWT tokens from query parameters
// for WebSocket connections, which cannot carry headers from browsers.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.Query("token")
		if tokenString == "" {
			abortUnauthorized(c, "Token required in query parameters")
			return
		}

		if authenticate(c, tokenString) {
			c.Next()
		}
	}
}
