package routes

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/services"
	"reservation-server/utils"
)

const propertyCacheTTL = 5 * time.Minute

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		utils.Fail(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

// propertyView augments a property with its derived occupancy fields.
func propertyView(p *models.Property) gin.H {
	return gin.H{
		"id":               p.ID,
		"name":             p.Name,
		"description":      p.Description,
		"address":          p.Address,
		"city":             p.City,
		"state":            p.State,
		"zip":              p.Zip,
		"type":             p.Type,
		"price":            p.Price,
		"max_occupancy":    p.MaxOccupancy,
		"current_occupant": p.CurrentOccupant(),
		"occupied":         p.CurrentOccupant() > 0,
		"images":           p.Images,
		"reviews":          p.Reviews,
		"tenants":          p.Tenants,
		"created_at":       p.CreatedAt,
		"updated_at":       p.UpdatedAt,
	}
}

// RegisterPropertyRoutes registers property CRUD, listing and review routes
func RegisterPropertyRoutes(router *gin.RouterGroup, occupancy *services.OccupancyService) {
	router.GET("/properties", func(c *gin.Context) {
		var filters models.PropertyFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		properties, err := occupancy.ListProperties(filters)
		if err != nil {
			utils.Error(c, err)
			return
		}

		views := make([]gin.H, 0, len(properties))
		for i := range properties {
			views = append(views, propertyView(&properties[i]))
		}

		utils.Success(c, http.StatusOK, "Properties retrieved", gin.H{
			"properties": views,
			"count":      len(views),
		})
	})

	router.GET("/properties/:id", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		cacheKey := utils.PropertyCacheKey(propertyID)
		if cached, hit := utils.CacheGet(cacheKey); hit {
			utils.Success(c, http.StatusOK, "Property retrieved", json.RawMessage(cached))
			return
		}

		property, err := occupancy.GetProperty(propertyID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		view := propertyView(property)
		if payload, err := json.Marshal(view); err == nil {
			utils.CacheSet(cacheKey, string(payload), propertyCacheTTL)
		}

		utils.Success(c, http.StatusOK, "Property retrieved", view)
	})

	router.POST("/properties", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		var req models.PropertyCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		property, err := occupancy.CreateProperty(req)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusCreated, "Property created", property)
	})

	router.PUT("/properties/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req models.PropertyUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		property, err := occupancy.UpdateProperty(propertyID, req)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Property updated", propertyView(property))
	})

	router.DELETE("/properties/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		if err := occupancy.DeleteProperty(propertyID); err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Property deleted", nil)
	})

	router.GET("/properties/:id/reviews", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		property, err := occupancy.GetProperty(propertyID)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.Success(c, http.StatusOK, "Reviews retrieved", gin.H{
			"reviews": property.Reviews,
		})
	})

	router.POST("/properties/:id/reviews", middleware.AuthMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		var req models.ReviewCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		review, err := occupancy.AddReview(propertyID, c.GetUint("user_id"), req)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusCreated, "Review added", review)
	})

	router.PUT("/properties/:id/reviews/:reviewId", middleware.AuthMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}
		reviewID, ok := parseID(c, "reviewId")
		if !ok {
			return
		}

		var req models.ReviewUpdate
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.Fail(c, http.StatusBadRequest, err.Error())
			return
		}

		review, err := occupancy.UpdateReview(propertyID, reviewID, c.GetUint("user_id"), req)
		if err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Review updated", review)
	})

	router.DELETE("/properties/:id/reviews/:reviewId", middleware.AuthMiddleware(), func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}
		reviewID, ok := parseID(c, "reviewId")
		if !ok {
			return
		}

		if err := occupancy.DeleteReview(propertyID, reviewID, c.GetUint("user_id")); err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Review deleted", nil)
	})
}
