package services

import (
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"reservation-server/models"
	"reservation-server/repositories"
)

// Pusher delivers a realtime payload to a connected user. The websocket
// hub satisfies this; delivery is best-effort and never blocks the
// notification of record.
type Pusher interface {
	SendToUser(userID uint, payload []byte)
	SendToAll(payload []byte)
}

// NotificationService owns the per-user notification sink. Rows are
// append-only; the seen flag is the only mutable field.
type NotificationService struct {
	store  repositories.NotificationStore
	users  repositories.UserStore
	pusher Pusher
}

func NewNotificationService(store repositories.NotificationStore, users repositories.UserStore, pusher Pusher) *NotificationService {
	return &NotificationService{store: store, users: users, pusher: pusher}
}

// Notify records a notification for a user and pushes it to any live
// websocket connection.
func (s *NotificationService) Notify(userID uint, message, createdBy string) error {
	notification := &models.Notification{
		UserID:    userID,
		Message:   message,
		CreatedBy: createdBy,
	}
	if err := s.store.Create(notification); err != nil {
		return err
	}
	s.push(notification)
	return nil
}

// Broadcast records the same admin message for every registered user
// and pushes a single frame to all connected clients, instead of one
// per-user push.
func (s *NotificationService) Broadcast(message string) (int, error) {
	ids, err := s.users.ListIDs()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		notification := &models.Notification{
			UserID:    id,
			Message:   message,
			CreatedBy: models.NotificationCreatorAdmin,
		}
		if err := s.store.Create(notification); err != nil {
			logrus.WithError(err).WithField("user_id", id).Warn("Failed to record broadcast notification")
			continue
		}
		sent++
	}

	if s.pusher != nil && sent > 0 {
		payload, err := json.Marshal(map[string]interface{}{
			"type":    "broadcast",
			"message": message,
		})
		if err == nil {
			s.pusher.SendToAll(payload)
		}
	}

	return sent, nil
}

func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	return s.store.ListByUser(userID)
}

func (s *NotificationService) UnseenCount(userID uint) (int64, error) {
	return s.store.CountUnseen(userID)
}

// MarkRead flips the seen flag on a notification owned by the user.
// A notification belonging to someone else reads as missing.
func (s *NotificationService) MarkRead(notificationID, userID uint) (*models.Notification, error) {
	notification, err := s.store.GetForUser(notificationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Notification not found")
		}
		return nil, err
	}
	if notification.Seen {
		return notification, nil
	}
	notification.Seen = true
	if err := s.store.Update(notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.store.MarkAllSeen(userID)
}

func (s *NotificationService) push(notification *models.Notification) {
	if s.pusher == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":         "notification",
		"notification": notification,
	})
	if err != nil {
		return
	}
	s.pusher.SendToUser(notification.UserID, payload)
}
