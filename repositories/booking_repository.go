package repositories

import (
	"time"

	"gorm.io/gorm"

	"reservation-server/models"
)

// BookingStore is the persistence contract for the booking ledger.
// Processed bookings keep their rows; status transitions are the only
// writes after creation.
type BookingStore interface {
	Create(booking *models.Booking) error
	GetByID(id uint) (*models.Booking, error)
	GetActiveForProperty(propertyID, userID uint) (*models.Booking, error)
	GetForUser(bookingID, userID uint) (*models.Booking, error)
	ListByProperty(propertyID uint) ([]models.Booking, error)
	ListByUser(userID uint) ([]models.Booking, error)
	ListPending() ([]models.Booking, error)
	CountPendingByProperty(propertyID uint) (int64, error)
	ListStalePending(before time.Time) ([]models.Booking, error)
	Update(booking *models.Booking) error
}

type bookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) BookingStore {
	return &bookingStore{db: db}
}

func (s *bookingStore) Create(booking *models.Booking) error {
	return s.db.Create(booking).Error
}

func (s *bookingStore) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("User").Preload("Property").Preload("Payment").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetActiveForProperty returns the user's pending or accepted booking
// on a property, if any. A user holds at most one active booking per
// property.
func (s *bookingStore) GetActiveForProperty(propertyID, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Where("property_id = ? AND user_id = ? AND status IN ?", propertyID, userID,
		[]models.BookingStatus{models.BookingStatusPending, models.BookingStatusAccepted}).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *bookingStore) GetForUser(bookingID, userID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Preload("Property").Preload("Payment").
		Where("id = ? AND user_id = ?", bookingID, userID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *bookingStore) ListByProperty(propertyID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("User").Preload("Payment").
		Where("property_id = ?", propertyID).
		Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingStore) ListByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").Preload("Payment").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingStore) ListPending() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("User").Preload("Property").
		Where("status = ?", models.BookingStatusPending).
		Order("created_at ASC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountPendingByProperty counts pending bookings against a property.
// They hold capacity slots on the booking path until processed.
func (s *bookingStore) CountPendingByProperty(propertyID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Booking{}).
		Where("property_id = ? AND status = ?", propertyID, models.BookingStatusPending).
		Count(&count).Error
	return count, err
}

// ListStalePending returns pending bookings whose start date has already
// passed, candidates for auto-decline.
func (s *bookingStore) ListStalePending(before time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Property").
		Where("status = ? AND start_date < ?", models.BookingStatusPending, before).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *bookingStore) Update(booking *models.Booking) error {
	return s.db.Save(booking).Error
}
