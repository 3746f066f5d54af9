package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterAnalyticsRoutes registers the admin analytics routes
func RegisterAnalyticsRoutes(router *gin.RouterGroup, analytics *services.AnalyticsService) {
	admin := router.Group("/analytics", middleware.AuthMiddleware(), middleware.AdminMiddleware())

	admin.GET("/payments", func(c *gin.Context) {
		year, err := strconv.Atoi(c.DefaultQuery("year", "0"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid year")
			return
		}
		month, err := strconv.Atoi(c.DefaultQuery("month", "0"))
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Invalid month")
			return
		}

		report, err := analytics.MonthlyRevenue(year, month)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Revenue report generated", report)
	})
}
