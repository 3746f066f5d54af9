package repositories

import (
	"strings"

	"gorm.io/gorm"

	"reservation-server/models"
)

// PropertyStore is the persistence contract for properties and their
// attached images, reviews and tenant links.
type PropertyStore interface {
	Create(property *models.Property) error
	GetByID(id uint) (*models.Property, error)
	GetByName(name string) (*models.Property, error)
	List(filters models.PropertyFilters) ([]models.Property, error)
	Update(property *models.Property) error
	Delete(id uint) error

	AddImage(image *models.PropertyImage) error
	GetImage(propertyID, imageID uint) (*models.PropertyImage, error)
	DeleteImage(propertyID, imageID uint) error

	CreateReview(review *models.Review) error
	GetReviewForUser(propertyID, reviewID, userID uint) (*models.Review, error)
	UpdateReview(review *models.Review) error
	DeleteReview(propertyID, reviewID, userID uint) (int64, error)

	AddTenant(link *models.TenantLink) error
	GetTenantLinkByUser(userID uint) (*models.TenantLink, error)
	RemoveTenant(propertyID, userID uint) (int64, error)
	ListTenants(propertyID uint) ([]models.TenantLink, error)
	ListAllTenants() ([]models.TenantLink, error)
}

type propertyStore struct {
	db *gorm.DB
}

func NewPropertyStore(db *gorm.DB) PropertyStore {
	return &propertyStore{db: db}
}

func (s *propertyStore) Create(property *models.Property) error {
	return s.db.Create(property).Error
}

func (s *propertyStore) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.
		Preload("Images").
		Preload("Reviews.User").
		Preload("Tenants.User").
		First(&property, id).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (s *propertyStore) GetByName(name string) (*models.Property, error) {
	var property models.Property
	if err := s.db.Where("name = ?", name).First(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// occupancyExpr counts tenant links per property so occupancy filters
// run in the database rather than over a loaded page.
const occupancyExpr = "(SELECT COUNT(*) FROM tenant_links WHERE tenant_links.property_id = properties.id)"

var sortColumns = map[string]string{
	"price":      "price",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"occupancy":  occupancyExpr,
}

// sortClause resolves the ORDER BY for a listing. Unknown sort keys
// fall back to created_at rather than erroring; the direction defaults
// to newest-first only when neither sort nor order was given.
func sortClause(filters models.PropertyFilters) string {
	column, ok := sortColumns[filters.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "ASC"
	if strings.EqualFold(filters.Order, "desc") || (filters.Sort == "" && filters.Order == "") {
		direction = "DESC"
	}
	return column + " " + direction
}

func (s *propertyStore) List(filters models.PropertyFilters) ([]models.Property, error) {
	query := s.db.Model(&models.Property{}).
		Preload("Images").
		Preload("Tenants.User")

	if filters.Keyword != "" {
		kw := "%" + filters.Keyword + "%"
		query = query.Where("name ILIKE ? OR address ILIKE ? OR city ILIKE ?", kw, kw, kw)
	}
	if models.IsValidPropertyType(filters.Type) {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Price > 0 {
		query = query.Where("price = ?", filters.Price)
	} else {
		if filters.MinPrice > 0 {
			query = query.Where("price >= ?", filters.MinPrice)
		}
		if filters.MaxPrice > 0 {
			query = query.Where("price <= ?", filters.MaxPrice)
		}
	}
	if filters.Occupancy > 0 {
		query = query.Where(occupancyExpr+" = ?", filters.Occupancy)
	} else {
		if filters.MinOccupancy > 0 {
			query = query.Where(occupancyExpr+" >= ?", filters.MinOccupancy)
		}
		if filters.MaxOccupancy > 0 {
			query = query.Where(occupancyExpr+" <= ?", filters.MaxOccupancy)
		}
	}

	query = query.Order(sortClause(filters))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *propertyStore) Update(property *models.Property) error {
	return s.db.Save(property).Error
}

func (s *propertyStore) Delete(id uint) error {
	return s.db.Select("Images", "Reviews", "Tenants").Delete(&models.Property{ID: id}).Error
}

func (s *propertyStore) AddImage(image *models.PropertyImage) error {
	return s.db.Create(image).Error
}

func (s *propertyStore) GetImage(propertyID, imageID uint) (*models.PropertyImage, error) {
	var image models.PropertyImage
	err := s.db.Where("id = ? AND property_id = ?", imageID, propertyID).First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (s *propertyStore) DeleteImage(propertyID, imageID uint) error {
	return s.db.Where("id = ? AND property_id = ?", imageID, propertyID).
		Delete(&models.PropertyImage{}).Error
}

func (s *propertyStore) CreateReview(review *models.Review) error {
	return s.db.Create(review).Error
}

// GetReviewForUser scopes the lookup to the author, so a review someone
// else wrote is indistinguishable from a missing one.
func (s *propertyStore) GetReviewForUser(propertyID, reviewID, userID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.Where("id = ? AND property_id = ? AND user_id = ?", reviewID, propertyID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *propertyStore) UpdateReview(review *models.Review) error {
	return s.db.Save(review).Error
}

func (s *propertyStore) DeleteReview(propertyID, reviewID, userID uint) (int64, error) {
	result := s.db.Where("id = ? AND property_id = ? AND user_id = ?", reviewID, propertyID, userID).
		Delete(&models.Review{})
	return result.RowsAffected, result.Error
}

func (s *propertyStore) AddTenant(link *models.TenantLink) error {
	return s.db.Create(link).Error
}

func (s *propertyStore) GetTenantLinkByUser(userID uint) (*models.TenantLink, error) {
	var link models.TenantLink
	err := s.db.Preload("Property").Where("user_id = ?", userID).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *propertyStore) RemoveTenant(propertyID, userID uint) (int64, error) {
	result := s.db.Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&models.TenantLink{})
	return result.RowsAffected, result.Error
}

func (s *propertyStore) ListTenants(propertyID uint) ([]models.TenantLink, error) {
	var links []models.TenantLink
	err := s.db.Preload("User").Where("property_id = ?", propertyID).
		Order("created_at ASC").Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *propertyStore) ListAllTenants() ([]models.TenantLink, error) {
	var links []models.TenantLink
	err := s.db.Preload("User").Preload("Property").
		Order("created_at ASC").Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}
