package services

import (
	"errors"
	"testing"

	"reservation-server/models"
)

func newPaymentFixture() (*PaymentService, *mockPaymentStore, *mockNotificationStore) {
	payments := newMockPaymentStore()
	notifications := newMockNotificationStore()
	service := NewPaymentService(payments, NewNotificationService(notifications, newMockUserStore(), nil))
	return service, payments, notifications
}

func seedPayment(t *testing.T, payments *mockPaymentStore, userID uint) *models.Payment {
	t.Helper()
	payment := &models.Payment{
		UserID:    userID,
		BookingID: 1,
		Amount:    950,
		Type:      models.PaymentTypeRent,
		Status:    models.PaymentStatusPending,
		Booking: &models.Booking{
			Property: models.Property{Name: "Oak House"},
		},
	}
	if err := payments.Create(payment); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return payment
}

func TestMarkPaidNotifiesOwner(t *testing.T) {
	service, payments, notifications := newPaymentFixture()
	payment := seedPayment(t, payments, 7)

	settled, err := service.MarkPaid(payment.ID)
	if err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if settled.Status != models.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", settled.Status)
	}

	rows, _ := notifications.ListByUser(7)
	if len(rows) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rows))
	}
	if rows[0].Message != "Payment for Oak House was marked as paid" {
		t.Fatalf("unexpected message: %q", rows[0].Message)
	}
}

func TestMarkDeclinedNotifiesOwner(t *testing.T) {
	service, payments, notifications := newPaymentFixture()
	payment := seedPayment(t, payments, 7)

	settled, err := service.MarkDeclined(payment.ID)
	if err != nil {
		t.Fatalf("MarkDeclined failed: %v", err)
	}
	if settled.Status != models.PaymentStatusDeclined {
		t.Fatalf("expected declined, got %s", settled.Status)
	}

	rows, _ := notifications.ListByUser(7)
	if len(rows) != 1 || rows[0].Message != "Payment for Oak House was marked as declined" {
		t.Fatalf("unexpected notifications: %+v", rows)
	}
}

func TestSettleSameStatusIsNoOp(t *testing.T) {
	service, payments, notifications := newPaymentFixture()
	payment := seedPayment(t, payments, 7)

	if _, err := service.MarkPaid(payment.ID); err != nil {
		t.Fatalf("MarkPaid failed: %v", err)
	}
	if _, err := service.MarkPaid(payment.ID); err != nil {
		t.Fatalf("second MarkPaid should be a no-op, got %v", err)
	}

	rows, _ := notifications.ListByUser(7)
	if len(rows) != 1 {
		t.Fatalf("expected a single notification, got %d", len(rows))
	}
}

func TestSettleUnknownPayment(t *testing.T) {
	service, _, notifications := newPaymentFixture()

	_, err := service.MarkPaid(42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	rows, _ := notifications.ListByUser(7)
	if len(rows) != 0 {
		t.Fatalf("expected no notifications, got %d", len(rows))
	}
}
