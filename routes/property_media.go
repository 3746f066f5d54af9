package routes

import (
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"reservation-server/config"
	"reservation-server/middleware"
	"reservation-server/models"
	"reservation-server/repositories"
	"reservation-server/services"
	"reservation-server/utils"
)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// validateImageFile validates content type, extension and size (<= 5MB)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 5*1024*1024 {
		return false
	}
	if !imageContentTypes[h.Header.Get("Content-Type")] {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary not configured")
	}
	return cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
}

// RegisterPropertyMediaRoutes registers the admin image upload routes
func RegisterPropertyMediaRoutes(router *gin.RouterGroup, occupancy *services.OccupancyService, properties repositories.PropertyStore) {
	admin := router.Group("", middleware.AuthMiddleware(), middleware.AdminMiddleware())

	admin.POST("/properties/:id/images", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}

		if _, err := occupancy.GetProperty(propertyID); err != nil {
			utils.Error(c, err)
			return
		}

		header, err := c.FormFile("image")
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "No image provided")
			return
		}
		if !validateImageFile(header) {
			utils.Fail(c, http.StatusBadRequest, "Image must be jpg, png or webp and at most 5MB")
			return
		}

		cld, err := newCloudinary()
		if err != nil {
			logrus.WithError(err).Error("Cloudinary initialization failed")
			utils.Fail(c, http.StatusInternalServerError, "Image storage not configured")
			return
		}

		file, err := header.Open()
		if err != nil {
			utils.Fail(c, http.StatusBadRequest, "Failed to read image")
			return
		}
		defer file.Close()

		uf := true
		up, err := cld.Upload.Upload(context.Background(), file, uploader.UploadParams{
			Folder:         "properties/" + strconv.Itoa(int(propertyID)),
			PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
			UniqueFilename: &uf,
			ResourceType:   "image",
		})
		if err != nil {
			logrus.WithError(err).Error("Image upload failed")
			utils.Fail(c, http.StatusBadRequest, "Image upload failed")
			return
		}

		image := &models.PropertyImage{
			PropertyID: propertyID,
			URL:        up.SecureURL,
			PublicID:   up.PublicID,
		}
		if err := properties.AddImage(image); err != nil {
			logrus.WithError(err).Error("Failed to save image record")
			utils.Fail(c, http.StatusInternalServerError, "Failed to save image")
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusCreated, "Image uploaded", image)
	})

	admin.DELETE("/properties/:id/images/:imageId", func(c *gin.Context) {
		propertyID, ok := parseID(c, "id")
		if !ok {
			return
		}
		imageID, ok := parseID(c, "imageId")
		if !ok {
			return
		}

		image, err := properties.GetImage(propertyID, imageID)
		if err != nil {
			utils.Fail(c, http.StatusNotFound, "Image not found")
			return
		}

		// Remote cleanup is best-effort; the record goes either way.
		if image.PublicID != "" {
			if cld, err := newCloudinary(); err == nil {
				if _, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
					PublicID: image.PublicID,
				}); err != nil {
					logrus.WithError(err).Warn("Failed to destroy remote image")
				}
			}
		}

		if err := properties.DeleteImage(propertyID, imageID); err != nil {
			utils.Error(c, err)
			return
		}

		utils.CacheDelete(utils.PropertyCacheKey(propertyID))
		utils.Success(c, http.StatusOK, "Image deleted", nil)
	})
}
