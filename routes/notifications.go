package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterNotificationRoutes registers the admin notification routes
func RegisterNotificationRoutes(router *gin.RouterGroup, notifications *services.NotificationService) {
	admin := router.Group("/notifications", middleware.AuthMiddleware(), middleware.AdminMiddleware())

	admin.POST("/broadcast", func(c *gin.Context) {
		var req models.NotifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		sent, err := notifications.Broadcast(req.Message)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusCreated, "Broadcast sent", gin.H{
			"recipients": sent,
		})
	})
}
