package engine

import "time"

// notificationTTL is how long a notification stays visible.
const notificationTTL = 5 * time.Second

// Notification is one transient status line.
type Notification struct {
	Text      string
	IsError   bool
	CreatedAt time.Time
}

// pruneNotifications drops entries older than the TTL, preserving order.
func pruneNotifications(list []Notification, now time.Time) []Notification {
	kept := list[:0]
	for _, n := range list {
		if now.Sub(n.CreatedAt) < notificationTTL {
			kept = append(kept, n)
		}
	}
	return kept
}
