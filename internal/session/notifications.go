package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/tastybites/tastybites-client/internal/models"
)

// refreshNotifications refetches the inbox. The unread counter is
// re-derived locally rather than trusted from the server.
func (s *Store) refreshNotifications(ctx context.Context) error {
	ticket := s.take(cacheNotifications)
	page, err := s.api.Notifications(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.latest(cacheNotifications, ticket) {
		return nil
	}
	s.notifications = page.Notifications
	s.unreadCount = models.CountUnread(page.Notifications)
	return nil
}

// FetchNotifications refreshes the notification cache on demand.
func (s *Store) FetchNotifications(ctx context.Context) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.refreshNotifications(ctx); err != nil {
		return failErr(err, "Could not load notifications")
	}
	return ok()
}

// RefreshNotificationsQuietly is the best-effort background variant:
// failures are logged for diagnostics and never surfaced.
func (s *Store) RefreshNotificationsQuietly(ctx context.Context) {
	if s.Token() == "" {
		return
	}
	if err := s.refreshNotifications(ctx); err != nil {
		s.log.Debug("background notification refresh failed", zap.Error(err))
	}
}

// MarkNotificationAsRead marks one notification read and decrements the
// unread counter in lockstep, clamped at zero.
func (s *Store) MarkNotificationAsRead(ctx context.Context, id string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		return failErr(err, "Could not mark notification as read")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id && !s.notifications[i].Read {
			s.notifications[i].Read = true
			if s.unreadCount > 0 {
				s.unreadCount--
			}
			break
		}
	}
	return ok()
}

// MarkAllNotificationsRead marks the whole inbox read.
func (s *Store) MarkAllNotificationsRead(ctx context.Context) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		return failErr(err, "Could not mark notifications as read")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.unreadCount = 0
	return ok()
}

// DeleteNotification removes one notification; deleting an unread one
// decrements the counter, clamped at zero.
func (s *Store) DeleteNotification(ctx context.Context, id string) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.api.DeleteNotification(ctx, id); err != nil {
		return failErr(err, "Could not delete notification")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID != id {
			continue
		}
		if !s.notifications[i].Read && s.unreadCount > 0 {
			s.unreadCount--
		}
		s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
		break
	}
	return ok()
}

// ClearAllNotifications empties the inbox and resets the counter.
func (s *Store) ClearAllNotifications(ctx context.Context) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.api.ClearNotifications(ctx); err != nil {
		return failErr(err, "Could not clear notifications")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = []models.Notification{}
	s.unreadCount = 0
	return ok()
}

// UpdateNotificationPreferences updates the user's notification settings
// and mirrors them onto the cached profile.
func (s *Store) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) Result {
	if _, res := s.requireToken(); !res.Success {
		return res
	}
	if err := s.api.UpdateNotificationPreferences(ctx, prefs); err != nil {
		return failErr(err, "Could not update notification preferences")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		s.user.EmailOrderUpdates = prefs.EmailOrderUpdates
		s.user.EmailPromotions = prefs.EmailPromotions
		s.user.DesktopNotifications = prefs.DesktopNotifications
		s.persist()
	}
	return ok()
}
