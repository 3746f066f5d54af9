package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterPaymentRoutes registers the admin payment routes
func RegisterPaymentRoutes(router *gin.RouterGroup, payments *services.PaymentService) {
	admin := router.Group("/payments", middleware.AuthMiddleware(), middleware.AdminMiddleware())

	admin.GET("", func(c *gin.Context) {
		list, err := payments.List()
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payments retrieved", gin.H{
			"payments": list,
			"count":    len(list),
		})
	})

	admin.GET("/:paymentId", func(c *gin.Context) {
		paymentID, ok := parseID(c, "paymentId")
		if !ok {
			return
		}

		payment, err := payments.Get(paymentID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payment retrieved", payment)
	})

	admin.POST("/:paymentId/paid", func(c *gin.Context) {
		paymentID, ok := parseID(c, "paymentId")
		if !ok {
			return
		}

		payment, err := payments.MarkPaid(paymentID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payment marked as paid", payment)
	})

	admin.POST("/:paymentId/declined", func(c *gin.Context) {
		paymentID, ok := parseID(c, "paymentId")
		if !ok {
			return
		}

		payment, err := payments.MarkDeclined(paymentID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payment marked as declined", payment)
	})

	admin.DELETE("/:paymentId", func(c *gin.Context) {
		paymentID, ok := parseID(c, "paymentId")
		if !ok {
			return
		}

		if err := payments.Delete(paymentID); err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Payment deleted", nil)
	})
}
