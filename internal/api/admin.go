package api

import (
	"context"
	"net/url"

	"github.com/tastybites/tastybites-client/internal/models"
)

// Admin fetchers mirror the public resource surface under /api/admin.
// The backend re-validates the caller's role on every one of these; the
// client-side role check in the session store is a UX guard only.

type adminUsersResponse struct {
	Users []models.User `json:"users"`
}

// AdminUsers lists every registered user.
func (c *Client) AdminUsers(ctx context.Context) ([]models.User, error) {
	var resp adminUsersResponse
	if err := c.Get(ctx, "/api/admin/users", &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []models.User{}, nil
	}
	for i := range resp.Users {
		resp.Users[i].Normalize()
	}
	return resp.Users, nil
}

// AdminUpdateUserRequest carries the admin-editable user fields.
type AdminUpdateUserRequest struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// AdminUpdateUser updates a user record.
func (c *Client) AdminUpdateUser(ctx context.Context, id string, req AdminUpdateUserRequest) error {
	return c.Put(ctx, "/api/admin/users/"+url.PathEscape(id), req, nil)
}

// AdminDeleteUser removes a user account.
func (c *Client) AdminDeleteUser(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/admin/users/"+url.PathEscape(id), nil)
}

// AdminOrders lists every order across all users.
func (c *Client) AdminOrders(ctx context.Context) ([]models.Order, error) {
	var resp ordersResponse
	if err := c.Get(ctx, "/api/admin/orders", &resp); err != nil {
		return nil, err
	}
	return normalizeOrders(resp.Orders), nil
}

// AdminUpdateOrderStatus transitions an order's status.
func (c *Client) AdminUpdateOrderStatus(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.Put(ctx, "/api/admin/orders/"+url.PathEscape(id)+"/status", body, nil)
}

// AdminAddMenuItem creates a menu item and returns the server record.
func (c *Client) AdminAddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	var out models.MenuItem
	if err := c.Post(ctx, "/api/admin/menu", item, &out); err != nil {
		return nil, err
	}
	out.Normalize()
	return &out, nil
}

// AdminUpdateMenuItem updates an existing menu item.
func (c *Client) AdminUpdateMenuItem(ctx context.Context, item models.MenuItem) error {
	return c.Put(ctx, "/api/admin/menu/"+url.PathEscape(item.ID), item, nil)
}

// AdminDeleteMenuItem removes a menu item.
func (c *Client) AdminDeleteMenuItem(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/admin/menu/"+url.PathEscape(id), nil)
}

// AdminAddCategory creates a menu category.
func (c *Client) AdminAddCategory(ctx context.Context, name string) error {
	return c.Post(ctx, "/api/admin/categories", map[string]string{"name": name}, nil)
}

// AdminUpdateCategory renames a menu category.
func (c *Client) AdminUpdateCategory(ctx context.Context, id, name string) error {
	return c.Put(ctx, "/api/admin/categories/"+url.PathEscape(id), map[string]string{"name": name}, nil)
}

// AdminDeleteCategory removes a menu category.
func (c *Client) AdminDeleteCategory(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/admin/categories/"+url.PathEscape(id), nil)
}

type contactMessagesResponse struct {
	Messages []models.ContactMessage `json:"messages"`
}

// AdminContactMessages lists messages submitted through the contact form.
func (c *Client) AdminContactMessages(ctx context.Context) ([]models.ContactMessage, error) {
	var resp contactMessagesResponse
	if err := c.Get(ctx, "/api/admin/contact-messages", &resp); err != nil {
		return nil, err
	}
	if resp.Messages == nil {
		return []models.ContactMessage{}, nil
	}
	return resp.Messages, nil
}

// AdminDeleteContactMessage removes a contact-form message.
func (c *Client) AdminDeleteContactMessage(ctx context.Context, id string) error {
	return c.Delete(ctx, "/api/admin/contact-messages/"+url.PathEscape(id), nil)
}

// BroadcastNotificationRequest is the payload for an admin broadcast.
type BroadcastNotificationRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
	Type     string `json:"type,omitempty"`
}

// AdminBroadcastNotification sends a notification to every user.
func (c *Client) AdminBroadcastNotification(ctx context.Context, req BroadcastNotificationRequest) error {
	return c.Post(ctx, "/api/admin/notifications", req, nil)
}

type notificationHistoryResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

// AdminNotificationHistory lists previously broadcast notifications.
func (c *Client) AdminNotificationHistory(ctx context.Context) ([]models.Notification, error) {
	var resp notificationHistoryResponse
	if err := c.Get(ctx, "/api/admin/notifications", &resp); err != nil {
		return nil, err
	}
	if resp.Notifications == nil {
		return []models.Notification{}, nil
	}
	return resp.Notifications, nil
}
