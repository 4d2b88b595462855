package domain

import (
	"time"
	"unicode/utf8"
)

// Notification types.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// NotificationPreviewLen is the maximum rune length of the post preview
// embedded in a notification.
const NotificationPreviewLen = 50

// Notification represents a record addressed to a recipient user.
// PostContent holds a truncated preview when the notification references a post.
type Notification struct {
	ID             string    `json:"id"`
	RecipientID    string    `json:"-"`
	SenderID       string    `json:"-"`
	SenderUsername string    `json:"sender"`
	Type           string    `json:"notification_type"`
	PostID         *string   `json:"post_id,omitempty"`
	PostContent    *string   `json:"post_content,omitempty"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

// TruncateContent shortens s to at most max runes, appending "..." when
// anything was cut.
func TruncateContent(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
