package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tastybites/tastybites-client/internal/models"
)

// NotifyRepository defines the persistence operations for notifications
// and contact messages.
type NotifyRepository interface {
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
	Insert(ctx context.Context, userID string, n models.Notification) error
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
	Broadcast(ctx context.Context, n models.Notification) error
	BroadcastHistory(ctx context.Context) ([]models.Notification, error)
	SaveContactMessage(ctx context.Context, m models.ContactMessage) error
	ContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error
}

// NotifyService implements the notification inbox and the contact form.
type NotifyService struct {
	repo NotifyRepository
}

// NewNotifyService constructs a NotifyService.
func NewNotifyService(repo NotifyRepository) *NotifyService {
	return &NotifyService{repo: repo}
}

// Inbox returns the user's notifications and the unread count.
func (s *NotifyService) Inbox(ctx context.Context, userID string) ([]models.Notification, int, error) {
	ns, err := s.repo.Notifications(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return ns, models.CountUnread(ns), nil
}

// Notify stores a notification for one user. Implements the shop
// service's Notifier.
func (s *NotifyService) Notify(ctx context.Context, userID string, n models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now().UTC()
	}
	n.Normalize()
	return s.repo.Insert(ctx, userID, n)
}

// MarkRead marks one notification read.
func (s *NotifyService) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

// MarkAllRead marks the whole inbox read.
func (s *NotifyService) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

// Delete removes one notification.
func (s *NotifyService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// Clear removes the whole inbox.
func (s *NotifyService) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

// Broadcast fans a notification out to every user.
func (s *NotifyService) Broadcast(ctx context.Context, n models.Notification) error {
	n.ID = uuid.NewString()
	n.SentAt = time.Now().UTC()
	if n.Type == "" {
		n.Type = models.NotificationPromotion
	}
	return s.repo.Broadcast(ctx, n)
}

// BroadcastHistory lists previous broadcasts.
func (s *NotifyService) BroadcastHistory(ctx context.Context) ([]models.Notification, error) {
	return s.repo.BroadcastHistory(ctx)
}

// SaveContactMessage stores a contact-form submission.
func (s *NotifyService) SaveContactMessage(ctx context.Context, name, email, message string) error {
	return s.repo.SaveContactMessage(ctx, models.ContactMessage{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// ContactMessages lists contact-form submissions.
func (s *NotifyService) ContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	return s.repo.ContactMessages(ctx)
}

// DeleteContactMessage removes a contact-form submission.
func (s *NotifyService) DeleteContactMessage(ctx context.Context, id string) error {
	return s.repo.DeleteContactMessage(ctx, id)
}
