package repositories

import (
	"gorm.io/gorm"

	"reservation-server/models"
)

// PropertyRevenue is one row of the monthly analytics rollup: the sum
// of paid payment amounts attributed to a property.
type PropertyRevenue struct {
	PropertyID   uint   `json:"property_id"`
	PropertyName string `json:"property_name"`
	Total        int    `json:"total"`
	Payments     int    `json:"payments"`
}

// PaymentStore is the persistence contract for payments.
type PaymentStore interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByBookingID(bookingID uint) (*models.Payment, error)
	List() ([]models.Payment, error)
	ListByUser(userID uint) ([]models.Payment, error)
	Update(payment *models.Payment) error
	Delete(id uint) error
	RevenueByMonth(year, month int) ([]PropertyRevenue, error)
}

type paymentStore struct {
	db *gorm.DB
}

func NewPaymentStore(db *gorm.DB) PaymentStore {
	return &paymentStore{db: db}
}

func (s *paymentStore) Create(payment *models.Payment) error {
	return s.db.Create(payment).Error
}

func (s *paymentStore) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Preload("User").Preload("Booking.Property").
		First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) GetByBookingID(bookingID uint) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Where("booking_id = ?", bookingID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (s *paymentStore) List() ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Preload("User").Preload("Booking.Property").
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *paymentStore) ListByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.Preload("Booking.Property").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *paymentStore) Update(payment *models.Payment) error {
	return s.db.Save(payment).Error
}

func (s *paymentStore) Delete(id uint) error {
	return s.db.Delete(&models.Payment{}, id).Error
}

// RevenueByMonth sums paid payments per property for the given calendar
// month, keyed on the payment's creation time.
func (s *paymentStore) RevenueByMonth(year, month int) ([]PropertyRevenue, error) {
	var rows []PropertyRevenue
	err := s.db.Model(&models.Payment{}).
		Select("properties.id AS property_id, properties.name AS property_name, "+
			"COALESCE(SUM(payments.amount), 0) AS total, COUNT(payments.id) AS payments").
		Joins("JOIN bookings ON bookings.id = payments.booking_id").
		Joins("JOIN properties ON properties.id = bookings.property_id").
		Where("payments.status = ?", models.PaymentStatusPaid).
		Where("EXTRACT(YEAR FROM payments.created_at) = ? AND EXTRACT(MONTH FROM payments.created_at) = ?", year, month).
		Group("properties.id, properties.name").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
