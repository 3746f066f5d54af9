package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterTenantRoutes registers the admin tenant-management routes
func RegisterTenantRoutes(router *gin.RouterGroup, occupancy *services.OccupancyService, notifications *services.NotificationService) {
	admin := router.Group("", middleware.AuthMiddleware(), middleware.AdminMiddleware())

	admin.POST("/properties/:id/tenants", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req struct {
			UserID uint `json:"user_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		link, err := occupancy.AddTenant(propertyID, req.UserID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusCreated, "Tenant assigned", link)
	})

	admin.GET("/properties/:id/tenants", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		tenants, err := occupancy.ListTenants(propertyID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Tenants retrieved", gin.H{
			"tenants": tenants,
			"count":   len(tenants),
		})
	})

	admin.DELETE("/properties/:id/tenants/:tenantId", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}
		tenantID, ok := parseID(c, "tenantId")
		if !ok {
			return
		}

		if err := occupancy.RemoveTenant(propertyID, tenantID); err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Tenant removed", nil)
	})

	admin.GET("/tenants", func(c *gin.Context) {
		tenants, err := occupancy.ListAllTenants()
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Tenants retrieved", gin.H{
			"tenants": tenants,
			"count":   len(tenants),
		})
	})

	admin.GET("/tenants/:tenantId", func(c *gin.Context) {
		tenantID, ok := parseID(c, "tenantId")
		if !ok {
			return
		}

		link, err := occupancy.GetTenant(tenantID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Tenant retrieved", link)
	})

	admin.POST("/tenants/:tenantId/notifications", func(c *gin.Context) {
		tenantID, ok := parseID(c, "tenantId")
		if !ok {
			return
		}

		var req models.NotifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		link, err := occupancy.GetTenant(tenantID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		if err := notifications.Notify(link.UserID, req.Message, models.NotificationCreatorSystem); err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusCreated, "Notification sent", nil)
	})
}
