package api

import (
	"context"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// NotificationsPage is the inbox listing together with the server's unread
// counter. The client re-derives the counter locally after mutations.
type NotificationsPage struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int                   `json:"unreadCount"`
}

// Notifications fetches the authenticated user's notification inbox.
func (c *Client) Notifications(ctx context.Context) (*NotificationsPage, error) {
	var page NotificationsPage
	if err := c.Get(ctx, "/api/notifications", &page); err != nil {
		return nil, err
	}
	if page.Notifications == nil {
		page.Notifications = []models.Notification{}
	}
	for i := range page.Notifications {
		page.Notifications[i].Normalize()
	}
	if page.UnreadCount < 0 {
		page.UnreadCount = 0
	}
	return &page, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.Post(ctx, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.Post(ctx, "/api/notifications/read-all", nil, nil)
}

// DeleteNotification removes a single notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/notifications/"+url.PathEscape(id), nil)
}

// ClearNotifications removes the whole inbox.
func (c *Client) ClearNotifications(ctx context.Context) error {
	return c.Delete(ctx, "/api/notifications", nil)
}

// UpdateNotificationPreferences updates the user's notification settings.
func (c *Client) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) error {
	return c.Put(ctx, "/api/notifications/preferences", prefs, nil)
}
