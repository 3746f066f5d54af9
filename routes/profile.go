package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reservation-server/database"
	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterProfileRoutes registers the authenticated self-service routes
func RegisterProfileRoutes(router *gin.RouterGroup, occupancy *services.OccupancyService, payments *services.PaymentService, notifications *services.NotificationService, jwtService *services.JWTService) {
	profile := router.Group("/profile", middleware.AuthMiddleware())

	profile.GET("", func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var user models.User
		if err := database.DB.Preload("TenantLink.Property").First(&user, userID).Error; err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		utils.Success(c, http.StatusOK, "Profile retrieved", user)
	})

	profile.PUT("", func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req models.UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		req.Apply(&user)
		if err := database.DB.Save(&user).Error; err != nil {
			logrus.WithError(err).Error("Profile update failed")
			utils.Fail(c, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		utils.Success(c, http.StatusOK, "Profile updated", user)
	})

	profile.POST("/change-password", func(c *gin.Context) {
		userID := c.GetUint("user_id")

		var req struct {
			CurrentPassword string `json:"current_password" binding:"required"`
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

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			utils.Fail(c, http.StatusNotFound, "User not found")
			return
		}

		if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
			utils.Fail(c, http.StatusUnauthorized, "Current password is incorrect")
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

		if err := jwtService.RevokeAllUserTokens(userID); err != nil {
			logrus.WithError(err).Warn("Failed to revoke tokens after password change")
		}

		utils.Success(c, http.StatusOK, "Password changed successfully. Please sign in again.", nil)
	})

	profile.GET("/bookings", func(c *gin.Context) {
		bookings, err := occupancy.ListUserBookings(c.GetUint("user_id"))
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Bookings retrieved", gin.H{
			"bookings": bookings,
			"count":    len(bookings),
		})
	})

	profile.GET("/bookings/:bookingId", func(c *gin.Context) {
		bookingID, ok := parseID(c, "bookingId")
		if !ok {
			return
		}

		booking, err := occupancy.GetUserBooking(c.GetUint("user_id"), bookingID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Booking retrieved", booking)
	})

	profile.POST("/bookings/:bookingId/cancel", func(c *gin.Context) {
		bookingID, ok := parseID(c, "bookingId")
		if !ok {
			return
		}

		booking, err := occupancy.CancelBooking(c.GetUint("user_id"), bookingID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(booking.PropertyID))
		utils.Success(c, http.StatusOK, "Booking canceled", booking)
	})

	profile.GET("/payments", func(c *gin.Context) {
		list, err := payments.ListByUser(c.GetUint("user_id"))
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payments retrieved", gin.H{
			"payments": list,
			"count":    len(list),
		})
	})

	profile.GET("/notifications", func(c *gin.Context) {
		userID := c.GetUint("user_id")

		list, err := notifications.List(userID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		unseen, err := notifications.UnseenCount(userID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Notifications retrieved", gin.H{
			"notifications": list,
			"count":         len(list),
			"unseen":        unseen,
		})
	})

	profile.PUT("/notifications/:notificationId", func(c *gin.Context) {
		notificationID, ok := parseID(c, "notificationId")
		if !ok {
			return
		}

		notification, err := notifications.MarkRead(notificationID, c.GetUint("user_id"))
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Notification marked as read", notification)
	})

	profile.PUT("/notifications", func(c *gin.Context) {
		if err := notifications.MarkAllRead(c.GetUint("user_id")); err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "All notifications marked as read", nil)
	})
}
