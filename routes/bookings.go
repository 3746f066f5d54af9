package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/services"
	"reservation-server/utils"
)

// RegisterBookingRoutes registers the booking lifecycle routes
func RegisterBookingRoutes(router *gin.RouterGroup, occupancy *services.OccupancyService, mailService *services.MailService) {
	router.POST("/properties/:id/bookings", middleware.AuthMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req models.BookingCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		booking, err := occupancy.BookProperty(propertyID, c.GetUint("user_id"), req)
		if err != nil {
			utils.Error(c, err)
			return
		}

		if user, exists := c.Get("user"); exists {
			if u, ok := user.(models.User); ok {
				mailService.SendBookingConfirmation(u.Email, booking.Property.Name)
			}
		}

		utils.Success(c, http.StatusCreated, "Booking created", booking)
	})

	router.GET("/properties/:id/bookings", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		bookings, err := occupancy.ListPropertyBookings(propertyID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Bookings retrieved", gin.H{
			"bookings": bookings,
			"count":    len(bookings),
		})
	})

	router.GET("/bookings/pending", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		bookings, err := occupancy.ListPendingBookings()
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Pending bookings retrieved", gin.H{
			"bookings": bookings,
			"count":    len(bookings),
		})
	})

	router.GET("/bookings/:bookingId", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		bookingID, ok := parseID(c, "bookingId")
		if !ok {
			return
		}

		booking, err := occupancy.GetBooking(bookingID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Booking retrieved", booking)
	})

	router.POST("/bookings/:bookingId/accept", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		bookingID, ok := parseID(c, "bookingId")
		if !ok {
			return
		}

		booking, err := occupancy.AcceptBooking(bookingID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(booking.PropertyID))
		utils.Success(c, http.StatusOK, "Booking accepted", booking)
	})

	router.POST("/bookings/:bookingId/decline", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		bookingID, ok := parseID(c, "bookingId")
		if !ok {
			return
		}

		booking, err := occupancy.DeclineBooking(bookingID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Booking declined", booking)
	})
}
