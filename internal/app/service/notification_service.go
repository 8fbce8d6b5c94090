package service

import (
	"errors"

	"github.com/carhive/carhive-backend/internal/app/model"
	"github.com/carhive/carhive-backend/internal/app/repository"
	"github.com/carhive/carhive-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationPusher delivers a notification to a connected client.
// Implemented by the websocket hub; a nil pusher means store-only delivery.
type NotificationPusher interface {
	Push(userID uint, notification *model.Notification)
}

type NotificationService interface {
	Notify(userID uint, notifType model.NotificationType, title, message string, referenceID uint)
	List(userID uint) ([]model.Notification, error)
	UnreadCount(userID uint) (int64, error)
	MarkRead(userID, notificationID uint) (*model.Notification, error)
	MarkAllRead(userID uint) error
}

type notificationService struct {
	repo   repository.NotificationRepository
	pusher NotificationPusher
}

func NewNotificationService(repo repository.NotificationRepository, pusher NotificationPusher) NotificationService {
	return &notificationService{repo: repo, pusher: pusher}
}

// Notify stores the notification and pushes it to the user if they are
// connected. Failures are logged and swallowed: a notification must never
// fail the workflow that produced it.
func (s *notificationService) Notify(userID uint, notifType model.NotificationType, title, message string, referenceID uint) {
	notification := &model.Notification{
		UserID:      userID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		ReferenceID: referenceID,
	}

	if err := s.repo.Create(notification); err != nil {
		logger.Error("Failed to store notification", err, map[string]interface{}{
			"user_id": userID,
			"type":    notifType,
		})
		return
	}

	if s.pusher != nil {
		s.pusher.Push(userID, notification)
	}
}

func (s *notificationService) List(userID uint) ([]model.Notification, error) {
	return s.repo.FindByUserID(userID)
}

func (s *notificationService) UnreadCount(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

func (s *notificationService) MarkRead(userID, notificationID uint) (*model.Notification, error) {
	notification, err := s.repo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrNotificationNotFound
	}

	if !notification.Read {
		notification.Read = true
		if err := s.repo.Update(notification); err != nil {
			return nil, err
		}
	}
	return notification, nil
}

func (s *notificationService) MarkAllRead(userID uint) error {
	return s.repo.MarkAllRead(userID)
}
