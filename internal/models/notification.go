package models

import "time"

// Notification types.
const (
	NotificationOrder     = "order"
	NotificationPromotion = "promotion"
	NotificationSystem    = "system"
)

// Notification is a message delivered to the user's in-app inbox.
type Notification struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	ImageURL string    `json:"imageUrl,omitempty"`
	Type     string    `json:"type"`
	Read     bool      `json:"read"`
	SentAt   time.Time `json:"sentAt"`
}

// Normalize defaults the type for notifications the backend sent untyped.
func (n *Notification) Normalize() {
	if n.Type == "" {
		n.Type = NotificationSystem
	}
}

// CountUnread returns the number of unread notifications in the slice.
// The derived unread counter is always recomputable from this.
func CountUnread(ns []Notification) int {
	count := 0
	for _, n := range ns {
		if !n.Read {
			count++
		}
	}
	return count
}

// ContactMessage is a message submitted through the public contact form,
// readable and deletable by admins.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
