package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reservation-server/models"
	"reservation-server/repositories"
)

// propertyLocks serializes the capacity check-then-create span per
// property id. Two concurrent bookers of the same property must not
// both observe "not full"; the unique index on tenant_links.user_id is
// the store-level backstop, this is the primary serialization point.
type propertyLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newPropertyLocks() *propertyLocks {
	return &propertyLocks{locks: make(map[uint]*sync.Mutex)}
}

func (l *propertyLocks) lock(propertyID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[propertyID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[propertyID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// OccupancyService orchestrates the property and booking lifecycle:
// capacity checks, booking creation, accept/decline transitions, tenant
// assignment, and the payment and notification side effects those
// transitions emit.
type OccupancyService struct {
	properties    repositories.PropertyStore
	bookings      repositories.BookingStore
	payments      repositories.PaymentStore
	notifications *NotificationService
	policy        CapacityPolicy
	locks         *propertyLocks
}

func NewOccupancyService(
	properties repositories.PropertyStore,
	bookings repositories.BookingStore,
	payments repositories.PaymentStore,
	notifications *NotificationService,
	policy CapacityPolicy,
) *OccupancyService {
	return &OccupancyService{
		properties:    properties,
		bookings:      bookings,
		payments:      payments,
		notifications: notifications,
		policy:        policy,
		locks:         newPropertyLocks(),
	}
}

// GetProperty returns a property with its images, reviews and live
// occupancy projection.
func (s *OccupancyService) GetProperty(propertyID uint) (*models.Property, error) {
	property, err := s.properties.GetByID(propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Property not found")
		}
		return nil, err
	}
	return property, nil
}

func (s *OccupancyService) ListProperties(filters models.PropertyFilters) ([]models.Property, error) {
	return s.properties.List(filters)
}

func (s *OccupancyService) CreateProperty(req models.PropertyCreate) (*models.Property, error) {
	if _, err := s.properties.GetByName(req.Name); err == nil {
		return nil, ConflictError("A property with this name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	property := &models.Property{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Zip:          req.Zip,
		Type:         models.PropertyType(req.Type),
		Price:        req.Price,
		MaxOccupancy: req.MaxOccupancy,
	}
	if err := s.properties.Create(property); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"property_id": property.ID,
		"name":        property.Name,
	}).Info("Property created")

	return property, nil
}

// UpdateProperty applies a partial update. Omitted and zero-value
// fields are left as they are.
func (s *OccupancyService) UpdateProperty(propertyID uint, req models.PropertyUpdate) (*models.Property, error) {
	property, err := s.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	if req.Type != nil && *req.Type != "" && !models.IsValidPropertyType(*req.Type) {
		return nil, BadRequestError("Invalid property type")
	}
	req.Apply(property)
	if err := s.properties.Update(property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *OccupancyService) DeleteProperty(propertyID uint) error {
	property, err := s.GetProperty(propertyID)
	if err != nil {
		return err
	}
	if err := s.properties.Delete(property.ID); err != nil {
		return err
	}
	logrus.WithField("property_id", property.ID).Info("Property deleted")
	return nil
}

// BookProperty is the tenant-facing write path. The capacity check and
// the duplicate-booking check run under the property's lock so two
// concurrent bookers cannot both pass them.
func (s *OccupancyService) BookProperty(propertyID, userID uint, req models.BookingCreate) (*models.Booking, error) {
	if !req.EndDate.After(req.StartDate) {
		return nil, BadRequestError("End date must be after start date")
	}

	unlock := s.locks.lock(propertyID)
	defer unlock()

	property, err := s.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}

	// Pending bookings hold a slot until they are processed, so a
	// second booker cannot pass the capacity check while the first
	// booking awaits review.
	pending, err := s.bookings.CountPendingByProperty(propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(property, property.CurrentOccupant()+int(pending)); err != nil {
		return nil, err
	}

	if _, err := s.bookings.GetActiveForProperty(propertyID, userID); err == nil {
		return nil, ConflictError("You already have a booking")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	booking := &models.Booking{
		UserID:     userID,
		PropertyID: propertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     models.BookingStatusPending,
	}
	if err := s.bookings.Create(booking); err != nil {
		return nil, err
	}

	// Rent is charged on booking; the payment stays pending until an
	// admin settles it.
	payment := &models.Payment{
		UserID:    userID,
		BookingID: booking.ID,
		Amount:    property.Price,
		Type:      models.PaymentTypeRent,
		Status:    models.PaymentStatusPending,
	}
	if err := s.payments.Create(payment); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"property_id": propertyID,
		"user_id":     userID,
	}).Info("Booking created")

	booking.Property = *property
	booking.Payment = payment
	return booking, nil
}

// AcceptBooking moves a pending booking to accepted, materializes the
// tenant link and notifies the booker. Accepting an already-accepted
// booking is a no-op; occupancy is never incremented twice.
func (s *OccupancyService) AcceptBooking(bookingID uint) (*models.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusAccepted:
		return booking, nil
	case models.BookingStatusDeclined, models.BookingStatusCanceled:
		return nil, ConflictError("Booking has already been processed")
	}

	unlock := s.locks.lock(booking.PropertyID)
	defer unlock()

	// Re-read under the lock; another accept or a direct tenant add
	// may have filled the property in the meantime.
	property, err := s.GetProperty(booking.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(property, property.CurrentOccupant()); err != nil {
		return nil, err
	}
	if _, err := s.properties.GetTenantLinkByUser(booking.UserID); err == nil {
		return nil, ConflictError("User is already a tenant of a property")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.properties.AddTenant(&models.TenantLink{
		PropertyID: booking.PropertyID,
		UserID:     booking.UserID,
	}); err != nil {
		return nil, err
	}

	booking.Status = models.BookingStatusAccepted
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}

	if err := s.notifications.Notify(booking.UserID,
		fmt.Sprintf("Your booking for %s was accepted", property.Name),
		models.NotificationCreatorSystem); err != nil {
		logrus.WithError(err).Warn("Failed to record acceptance notification")
	}

	logrus.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"property_id": booking.PropertyID,
		"user_id":     booking.UserID,
	}).Info("Booking accepted")

	return booking, nil
}

// DeclineBooking marks a pending booking declined and declines its
// pending payment. Occupancy is untouched.
func (s *OccupancyService) DeclineBooking(bookingID uint) (*models.Booking, error) {
	booking, err := s.getBooking(bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusDeclined:
		return booking, nil
	case models.BookingStatusAccepted, models.BookingStatusCanceled:
		return nil, ConflictError("Booking has already been processed")
	}

	booking.Status = models.BookingStatusDeclined
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}

	if payment, err := s.payments.GetByBookingID(booking.ID); err == nil {
		if payment.Status == models.PaymentStatusPending {
			payment.Status = models.PaymentStatusDeclined
			if err := s.payments.Update(payment); err != nil {
				logrus.WithError(err).Warn("Failed to decline payment with booking")
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	propertyName := booking.Property.Name
	if propertyName == "" {
		if property, err := s.GetProperty(booking.PropertyID); err == nil {
			propertyName = property.Name
		}
	}
	if err := s.notifications.Notify(booking.UserID,
		fmt.Sprintf("Your booking for %s was declined", propertyName),
		models.NotificationCreatorSystem); err != nil {
		logrus.WithError(err).Warn("Failed to record decline notification")
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
	}).Info("Booking declined")

	return booking, nil
}

// CancelBooking is user-initiated. The lookup is scoped to the owner,
// so someone else's booking reads as missing. Canceling an accepted
// booking also releases the tenant link.
func (s *OccupancyService) CancelBooking(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.GetForUser(bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Booking not found")
		}
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusCanceled:
		return booking, nil
	case models.BookingStatusDeclined:
		return nil, ConflictError("Booking has already been processed")
	}

	wasAccepted := booking.Status == models.BookingStatusAccepted

	booking.Status = models.BookingStatusCanceled
	if err := s.bookings.Update(booking); err != nil {
		return nil, err
	}

	if wasAccepted {
		unlock := s.locks.lock(booking.PropertyID)
		if _, err := s.properties.RemoveTenant(booking.PropertyID, userID); err != nil {
			logrus.WithError(err).Warn("Failed to release tenant link on cancel")
		}
		unlock()
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    userID,
	}).Info("Booking canceled")

	return booking, nil
}

func (s *OccupancyService) GetBooking(bookingID uint) (*models.Booking, error) {
	return s.getBooking(bookingID)
}

// GetUserBooking resolves a booking scoped to its owner.
func (s *OccupancyService) GetUserBooking(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.GetForUser(bookingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Booking not found")
		}
		return nil, err
	}
	return booking, nil
}

func (s *OccupancyService) ListPendingBookings() ([]models.Booking, error) {
	return s.bookings.ListPending()
}

func (s *OccupancyService) ListPropertyBookings(propertyID uint) ([]models.Booking, error) {
	if _, err := s.GetProperty(propertyID); err != nil {
		return nil, err
	}
	return s.bookings.ListByProperty(propertyID)
}

func (s *OccupancyService) ListUserBookings(userID uint) ([]models.Booking, error) {
	return s.bookings.ListByUser(userID)
}

// AddTenant is the admin path that assigns a tenant directly, bypassing
// the booking flow. Same capacity and exclusivity checks apply.
func (s *OccupancyService) AddTenant(propertyID, userID uint) (*models.TenantLink, error) {
	unlock := s.locks.lock(propertyID)
	defer unlock()

	property, err := s.GetProperty(propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(property, property.CurrentOccupant()); err != nil {
		return nil, err
	}

	if link, err := s.properties.GetTenantLinkByUser(userID); err == nil {
		if link.PropertyID == propertyID {
			return nil, ConflictError("User is already a tenant of this property")
		}
		return nil, ConflictError("User is already a tenant of another property")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	link := &models.TenantLink{PropertyID: propertyID, UserID: userID}
	if err := s.properties.AddTenant(link); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"property_id": propertyID,
		"user_id":     userID,
	}).Info("Tenant assigned")

	return link, nil
}

// RemoveTenant clears a tenant link. Removing a user who is not a
// tenant of the given property is a conflict, which also defends
// against cross-property removal.
func (s *OccupancyService) RemoveTenant(propertyID, userID uint) error {
	if _, err := s.GetProperty(propertyID); err != nil {
		return err
	}

	unlock := s.locks.lock(propertyID)
	defer unlock()

	affected, err := s.properties.RemoveTenant(propertyID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ConflictError("User is not a tenant of this property")
	}

	logrus.WithFields(logrus.Fields{
		"property_id": propertyID,
		"user_id":     userID,
	}).Info("Tenant removed")

	return nil
}

func (s *OccupancyService) ListTenants(propertyID uint) ([]models.TenantLink, error) {
	if _, err := s.GetProperty(propertyID); err != nil {
		return nil, err
	}
	return s.properties.ListTenants(propertyID)
}

func (s *OccupancyService) ListAllTenants() ([]models.TenantLink, error) {
	return s.properties.ListAllTenants()
}

// GetTenant resolves a user's tenant link with its property.
func (s *OccupancyService) GetTenant(userID uint) (*models.TenantLink, error) {
	link, err := s.properties.GetTenantLinkByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Tenant not found")
		}
		return nil, err
	}
	return link, nil
}

func (s *OccupancyService) AddReview(propertyID, userID uint, req models.ReviewCreate) (*models.Review, error) {
	if _, err := s.GetProperty(propertyID); err != nil {
		return nil, err
	}
	review := &models.Review{
		PropertyID: propertyID,
		UserID:     userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.properties.CreateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

// UpdateReview only touches a review authored by the caller; anyone
// else's review reads as missing.
func (s *OccupancyService) UpdateReview(propertyID, reviewID, userID uint, req models.ReviewUpdate) (*models.Review, error) {
	review, err := s.properties.GetReviewForUser(propertyID, reviewID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Review not found")
		}
		return nil, err
	}
	req.Apply(review)
	if err := s.properties.UpdateReview(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *OccupancyService) DeleteReview(propertyID, reviewID, userID uint) error {
	affected, err := s.properties.DeleteReview(propertyID, reviewID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return NotFoundError("Review not found")
	}
	return nil
}

func (s *OccupancyService) getBooking(bookingID uint) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Booking not found")
		}
		return nil, err
	}
	return booking, nil
}
