// Package models defines the API data types the SerenitySpace client works
// with. JSON tags follow the backend's wire names (Mongo-style "_id").
package models

import "time"

// VaultEntry is a user-authored message scheduled for future delivery back to
// the same user.
//
// DeliverAt is always an absolute UTC instant at this boundary; presentation
// code is responsible for local-time rendering. Delivered is authoritative
// only as returned by the server — a client-side time check is advisory until
// confirmed by a push event or refetch.
type VaultEntry struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	DeliverAt time.Time `json:"deliverAt"`
	Delivered bool      `json:"delivered"`
}

// Due reports whether the entry's scheduled time has passed at now.
func (e VaultEntry) Due(now time.Time) bool {
	return !e.DeliverAt.After(now)
}

// FormatDeliveryTime renders an instant in the user's local time zone for
// notifications and cards.
func FormatDeliveryTime(t time.Time) string {
	return t.Local().Format("2 Jan 2006, 3:04 PM")
}
