package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tastybites/tastybites-client/internal/models"
	"github.com/tastybites/tastybites-client/internal/server/middleware"
)

// NotifyService defines the operations the notification and contact
// handlers require.
type NotifyService interface {
	Inbox(ctx context.Context, userID string) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
	Clear(ctx context.Context, userID string) error
	Broadcast(ctx context.Context, n models.Notification) error
	BroadcastHistory(ctx context.Context) ([]models.Notification, error)
	SaveContactMessage(ctx context.Context, name, email, message string) error
	ContactMessages(ctx context.Context) ([]models.ContactMessage, error)
	DeleteContactMessage(ctx context.Context, id string) error
}

// NotifyHandler handles the notification inbox and the contact form.
type NotifyHandler struct {
	NotifyService NotifyService
}

// Inbox returns the user's notifications with the unread count.
func (h *NotifyHandler) Inbox(w http.ResponseWriter, r *http.Request) {
	ns, unread, err := h.NotifyService.Inbox(r.Context(), middleware.UserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": ns, "unreadCount": unread})
}

// MarkRead marks one notification read.
func (h *NotifyHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotifyService.MarkRead(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "notification marked read")
}

// MarkAllRead marks the whole inbox read.
func (h *NotifyHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotifyService.MarkAllRead(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "all notifications marked read")
}

// Delete removes one notification.
func (h *NotifyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.NotifyService.Delete(r.Context(), middleware.UserIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "notification deleted")
}

// Clear removes the whole inbox.
func (h *NotifyHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.NotifyService.Clear(r.Context(), middleware.UserIDFromContext(r.Context())); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "notifications cleared")
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Contact stores a contact-form submission. Public endpoint.
func (h *NotifyHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decode(r, &req); err != nil || req.Name == "" || req.Email == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "name, email, and message are required")
		return
	}
	if err := h.NotifyService.SaveContactMessage(r.Context(), req.Name, req.Email, req.Message); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "message received")
}

// Broadcast sends a notification to every user.
func (h *NotifyHandler) Broadcast(w http.ResponseWriter, r *http.Request) {
	var n models.Notification
	if err := decode(r, &n); err != nil || n.Title == "" || n.Content == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}
	if err := h.NotifyService.Broadcast(r.Context(), n); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusCreated, "notification sent")
}

// BroadcastHistory lists previous broadcasts.
func (h *NotifyHandler) BroadcastHistory(w http.ResponseWriter, r *http.Request) {
	ns, err := h.NotifyService.BroadcastHistory(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": ns})
}

// ContactMessages lists contact-form submissions.
func (h *NotifyHandler) ContactMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.NotifyService.ContactMessages(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

// DeleteContactMessage removes a contact-form submission.
func (h *NotifyHandler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	if err := h.NotifyService.DeleteContactMessage(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeMessage(w, http.StatusOK, "message deleted")
}
