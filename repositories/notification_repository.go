package repositories

import (
	"gorm.io/gorm"

	"reservation-server/models"
)

// NotificationStore is the persistence contract for per-user
// notifications.
type NotificationStore interface {
	Create(notification *models.Notification) error
	GetForUser(notificationID, userID uint) (*models.Notification, error)
	ListByUser(userID uint) ([]models.Notification, error)
	CountUnseen(userID uint) (int64, error)
	Update(notification *models.Notification) error
	MarkAllSeen(userID uint) error
}

type notificationStore struct {
	db *gorm.DB
}

func NewNotificationStore(db *gorm.DB) NotificationStore {
	return &notificationStore{db: db}
}

func (s *notificationStore) Create(notification *models.Notification) error {
	return s.db.Create(notification).Error
}

// GetForUser scopes the lookup to the recipient, so another user's
// notification reads as missing.
func (s *notificationStore) GetForUser(notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (s *notificationStore) ListByUser(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *notificationStore) CountUnseen(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *notificationStore) Update(notification *models.Notification) error {
	return s.db.Save(notification).Error
}

func (s *notificationStore) MarkAllSeen(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND seen = ?", userID, false).
		Update("seen", true).Error
}
