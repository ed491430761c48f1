package session

import (
	"context"
	"strings"

	"github.com/tastybites/tastybites-client/internal/api"
	"github.com/tastybites/tastybites-client/internal/models"
)

// Admin operations. Each checks the cached role before calling the backend
// and short-circuits with an authorization failure otherwise. The backend
// re-validates the role on every privileged endpoint; the local check only
// saves a doomed round trip.

// FetchAllUsers lists every registered user.
func (s *Store) FetchAllUsers(ctx context.Context) ([]models.User, Result) {
	if res := s.requireAdmin(); !res.Success {
		return nil, res
	}
	users, err := s.api.AdminUsers(ctx)
	if err != nil {
		return nil, failErr(err, "Could not load users")
	}
	return users, ok()
}

// UpdateUser updates a user's name or role.
func (s *Store) UpdateUser(ctx context.Context, id, name, role string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if role != "" && role != models.RoleUser && role != models.RoleAdmin {
		return fail("Role must be USER or ADMIN")
	}
	if err := s.api.AdminUpdateUser(ctx, id, api.AdminUpdateUserRequest{Name: name, Role: role}); err != nil {
		return failErr(err, "Could not update user")
	}
	return ok()
}

// DeleteUser removes a user account.
func (s *Store) DeleteUser(ctx context.Context, id string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if err := s.api.AdminDeleteUser(ctx, id); err != nil {
		return failErr(err, "Could not delete user")
	}
	return ok()
}

// FetchAllOrders lists every order across all users.
func (s *Store) FetchAllOrders(ctx context.Context) ([]models.Order, Result) {
	if res := s.requireAdmin(); !res.Success {
		return nil, res
	}
	orders, err := s.api.AdminOrders(ctx)
	if err != nil {
		return nil, failErr(err, "Could not load orders")
	}
	return orders, ok()
}

// UpdateOrderStatus transitions an order between Pending, Delivered, and
// Cancelled.
func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	switch status {
	case models.OrderPending, models.OrderDelivered, models.OrderCancelled:
	default:
		return fail("Invalid order status")
	}
	if err := s.api.AdminUpdateOrderStatus(ctx, id, status); err != nil {
		return failErr(err, "Could not update order status")
	}
	return ok()
}

// validateMenuItem runs the client-side checks for menu mutations.
func validateMenuItem(item models.MenuItem) Result {
	if strings.TrimSpace(item.Name) == "" {
		return fail("Item name is required")
	}
	if item.Price < 0 {
		return fail("Price cannot be negative")
	}
	return ok()
}

// AddMenuItem creates a menu item.
func (s *Store) AddMenuItem(ctx context.Context, item models.MenuItem) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if res := validateMenuItem(item); !res.Success {
		return res
	}
	if _, err := s.api.AdminAddMenuItem(ctx, item); err != nil {
		return failErr(err, "Could not add menu item")
	}
	return ok()
}

// UpdateMenuItem updates a menu item.
func (s *Store) UpdateMenuItem(ctx context.Context, item models.MenuItem) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if item.ID == "" {
		return fail("Item id is required")
	}
	if res := validateMenuItem(item); !res.Success {
		return res
	}
	if err := s.api.AdminUpdateMenuItem(ctx, item); err != nil {
		return failErr(err, "Could not update menu item")
	}
	return ok()
}

// DeleteMenuItem removes a menu item.
func (s *Store) DeleteMenuItem(ctx context.Context, id string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if err := s.api.AdminDeleteMenuItem(ctx, id); err != nil {
		return failErr(err, "Could not delete menu item")
	}
	return ok()
}

// validateCategoryName checks the category-name constraints locally.
func validateCategoryName(name string) Result {
	name = strings.TrimSpace(name)
	if name == "" {
		return fail("Category name is required")
	}
	if len(name) > models.MaxCategoryNameLen {
		return fail("Category name must be 100 characters or fewer")
	}
	return ok()
}

// AddCategory creates a menu category.
func (s *Store) AddCategory(ctx context.Context, name string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if res := validateCategoryName(name); !res.Success {
		return res
	}
	if err := s.api.AdminAddCategory(ctx, strings.TrimSpace(name)); err != nil {
		return failErr(err, "Could not add category")
	}
	return ok()
}

// UpdateCategory renames a menu category.
func (s *Store) UpdateCategory(ctx context.Context, id, name string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if id == "" {
		return fail("Category id is required")
	}
	if res := validateCategoryName(name); !res.Success {
		return res
	}
	if err := s.api.AdminUpdateCategory(ctx, id, strings.TrimSpace(name)); err != nil {
		return failErr(err, "Could not update category")
	}
	return ok()
}

// DeleteCategory removes a menu category.
func (s *Store) DeleteCategory(ctx context.Context, id string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if err := s.api.AdminDeleteCategory(ctx, id); err != nil {
		return failErr(err, "Could not delete category")
	}
	return ok()
}

// FetchContactMessages lists contact-form submissions.
func (s *Store) FetchContactMessages(ctx context.Context) ([]models.ContactMessage, Result) {
	if res := s.requireAdmin(); !res.Success {
		return nil, res
	}
	msgs, err := s.api.AdminContactMessages(ctx)
	if err != nil {
		return nil, failErr(err, "Could not load contact messages")
	}
	return msgs, ok()
}

// DeleteContactMessage removes a contact-form submission.
func (s *Store) DeleteContactMessage(ctx context.Context, id string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if err := s.api.AdminDeleteContactMessage(ctx, id); err != nil {
		return failErr(err, "Could not delete contact message")
	}
	return ok()
}

// BroadcastNotification sends a notification to every user.
func (s *Store) BroadcastNotification(ctx context.Context, title, content, imageURL, notifType string) Result {
	if res := s.requireAdmin(); !res.Success {
		return res
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return fail("Title and content are required")
	}
	req := api.BroadcastNotificationRequest{
		Title:    title,
		Content:  content,
		ImageURL: imageURL,
		Type:     notifType,
	}
	if err := s.api.AdminBroadcastNotification(ctx, req); err != nil {
		return failErr(err, "Could not send notification")
	}
	return ok()
}

// FetchNotificationHistory lists previously broadcast notifications.
func (s *Store) FetchNotificationHistory(ctx context.Context) ([]models.Notification, Result) {
	if res := s.requireAdmin(); !res.Success {
		return nil, res
	}
	ns, err := s.api.AdminNotificationHistory(ctx)
	if err != nil {
		return nil, failErr(err, "Could not load notification history")
	}
	return ns, ok()
}
