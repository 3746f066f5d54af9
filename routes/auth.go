package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reservation-server/database"
	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/repositories"
	"reservation-server/services"
	"reservation-server/utils"
)

func userPayload(user *models.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"role":         user.Role,
		"created_at":   user.CreatedAt,
	}
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup, jwtService *services.JWTService, mailService *services.MailService, tokens repositories.TokenStore) {
	router.POST("/register", func(c *gin.Context) {
		var req struct {
			FirstName       string `json:"first_name" binding:"required,min=2,max=100"`
			LastName        string `json:"last_name" binding:"required,min=2,max=100"`
			Email           string `json:"email" binding:"required,email"`
			PhoneNumber     string `json:"phone_number"`
			Password        string `json:"password" binding:"required,min=8,max=128"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		if req.Password != req.ConfirmPassword {
			utils.Fail(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		var existing models.User
		if err := database.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			utils.Error(c, services.ConflictError("An account with this email already exists"))
			return
		}

		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			logrus.WithError(err).Error("Password hashing failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to process password")
			return
		}

		user := models.User{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: strings.TrimSpace(req.PhoneNumber),
			Password:    hashedPassword,
			Role:        models.RoleTenant,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			logrus.WithError(err).Error("User creation failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to create account")
			return
		}

		tokenPair, err := jwtService.GenerateTokenPair(&user, deviceID(c), c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			logrus.WithError(err).Error("Token generation failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to generate authentication tokens")
			return
		}

		logrus.WithField("user_id", user.ID).Info("User registered")

		utils.Success(c, http.StatusCreated, "Account created successfully", gin.H{
			"user":   userPayload(&user),
			"tokens": tokenPair,
		})
	})

	router.POST("/login", func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Email or password is incorrect")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			logrus.WithField("user_id", user.ID).Debug("Invalid password")
			utils.Fail(c, http.StatusUnauthorized, "Email or password is incorrect")
			return
		}

		tokenPair, err := jwtService.GenerateTokenPair(&user, deviceID(c), c.GetHeader("User-Agent"), c.ClientIP())
		if err != nil {
			logrus.WithError(err).Error("Token generation failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to generate authentication tokens")
			return
		}

		logrus.WithField("user_id", user.ID).Info("User signed in")

		utils.Success(c, http.StatusOK, "Sign in successful", gin.H{
			"user":   userPayload(&user),
			"tokens": tokenPair,
		})
	})

	router.POST("/refresh", func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		userID, err := jwtService.RefreshTokenOwner(req.RefreshToken)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Refresh token is invalid or expired")
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			utils.Fail(c, http.StatusUnauthorized, "User associated with token not found")
			return
		}

		tokenPair, err := jwtService.RefreshAccessToken(req.RefreshToken, &user)
		if err != nil {
			utils.Fail(c, http.StatusUnauthorized, "Refresh token is invalid or expired")
			return
		}

		utils.Success(c, http.StatusOK, "Token refreshed successfully", gin.H{
			"tokens": tokenPair,
		})
	})

	router.POST("/logout", middleware.AuthMiddleware(), func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil && req.RefreshToken != "" {
			if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
				logrus.WithError(err).Warn("Failed to revoke refresh token")
			}
		} else {
			if err := jwtService.RevokeAllUserTokens(userID); err != nil {
				logrus.WithError(err).WithField("user_id", userID).Warn("Failed to revoke tokens")
			}
		}

		utils.Success(c, http.StatusOK, "Sign out successful", nil)
	})

	router.POST("/forgot-password", func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		// Always answer the same way so the endpoint cannot be used to
		// probe which emails are registered.
		response := func() {
			utils.Success(c, http.StatusOK, "If the email is registered, a reset code has been sent", nil)
		}

		var user models.User
		if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
			response()
			return
		}

		emailToken := &models.EmailToken{
			UserID: user.ID,
			Token:  uuid.NewString(),
			Type:   models.EmailTokenResetPassword,
		}
		if err := tokens.CreateEmailToken(emailToken); err != nil {
			logrus.WithError(err).Error("Failed to create reset token")
			response()
			return
		}

		mailService.SendPasswordReset(user.Email, emailToken.Token)
		logrus.WithField("user_id", user.ID).Info("Password reset requested")
		response()
	})

	router.POST("/reset-password", func(c *gin.Context) {
		var req struct {
			Token           string `json:"token" binding:"required"`
			NewPassword     string `json:"new_password" binding:"required,min=8,max=128"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		if req.NewPassword != req.ConfirmPassword {
			utils.Fail(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		emailToken, err := tokens.GetEmailToken(req.Token, models.EmailTokenResetPassword)
		if err != nil || emailToken.IsExpired() {
			utils.Fail(c, http.StatusBadRequest, "Reset code is invalid or expired")
			return
		}

		var user models.User
		if err := database.DB.First(&user, emailToken.UserID).Error; err != nil {
			utils.Fail(c, http.StatusBadRequest, "Reset code is invalid or expired")
			return
		}

		hashedPassword, err := utils.HashPassword(req.NewPassword)
		if err != nil {
			logrus.WithError(err).Error("Password hashing failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to process password")
			return
		}

		user.Password = hashedPassword
		if err := database.DB.Save(&user).Error; err != nil {
			logrus.WithError(err).Error("Password update failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to update password")
			return
		}

		// Single use: burn the token and every session.
		if err := tokens.DeleteEmailToken(emailToken.ID); err != nil {
			logrus.WithError(err).Warn("Failed to delete used reset token")
		}
		if err := jwtService.RevokeAllUserTokens(user.ID); err != nil {
			logrus.WithError(err).Warn("Failed to revoke tokens after reset")
		}

		logrus.WithField("user_id", user.ID).Info("Password reset completed")

		utils.Success(c, http.StatusOK, "Password reset successfully. Please sign in again.", nil)
	})
}

// deviceID reads the client-supplied device id, minting one when the
// client does not send it so every refresh token row carries one.
func deviceID(c *gin.Context) string {
	if id := c.GetHeader("X-Device-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}
