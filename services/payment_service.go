package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reservation-server/models"
	"reservation-server/repositories"
)

// PaymentService settles payments. Status only moves here or inside the
// booking lifecycle; every settlement notifies the paying user.
type PaymentService struct {
	payments      repositories.PaymentStore
	notifications *NotificationService
}

func NewPaymentService(payments repositories.PaymentStore, notifications *NotificationService) *PaymentService {
	return &PaymentService{payments: payments, notifications: notifications}
}

func (s *PaymentService) Get(paymentID uint) (*models.Payment, error) {
	return s.getPayment(paymentID)
}

func (s *PaymentService) List() ([]models.Payment, error) {
	return s.payments.List()
}

func (s *PaymentService) ListByUser(userID uint) ([]models.Payment, error) {
	return s.payments.ListByUser(userID)
}

// MarkPaid settles a pending payment and notifies its owner.
func (s *PaymentService) MarkPaid(paymentID uint) (*models.Payment, error) {
	return s.settle(paymentID, models.PaymentStatusPaid, "paid")
}

// MarkDeclined rejects a pending payment and notifies its owner.
func (s *PaymentService) MarkDeclined(paymentID uint) (*models.Payment, error) {
	return s.settle(paymentID, models.PaymentStatusDeclined, "declined")
}

func (s *PaymentService) settle(paymentID uint, status models.PaymentStatus, verb string) (*models.Payment, error) {
	payment, err := s.getPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == status {
		return payment, nil
	}

	payment.Status = status
	if err := s.payments.Update(payment); err != nil {
		return nil, err
	}

	propertyName := ""
	if payment.Booking != nil {
		propertyName = payment.Booking.Property.Name
	}
	if err := s.notifications.Notify(payment.UserID,
		fmt.Sprintf("Payment for %s was marked as %s", propertyName, verb),
		models.NotificationCreatorSystem); err != nil {
		logrus.WithError(err).Warn("Failed to record payment notification")
	}

	logrus.WithFields(logrus.Fields{
		"payment_id": payment.ID,
		"user_id":    payment.UserID,
		"status":     status,
	}).Info("Payment settled")

	return payment, nil
}

func (s *PaymentService) Delete(paymentID uint) error {
	payment, err := s.getPayment(paymentID)
	if err != nil {
		return err
	}
	return s.payments.Delete(payment.ID)
}

func (s *PaymentService) getPayment(paymentID uint) (*models.Payment, error) {
	payment, err := s.payments.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Payment not found")
		}
		return nil, err
	}
	return payment, nil
}
