// Package domain contains core concepts of the messaging system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

// Participant is one side of a conversation.
// LastReadAt is nil until the participant reads or sends anything.
type Participant struct {
	UserID     string
	IsActive   bool
	LastReadAt *time.Time
}

// ReadSince returns the cursor, the zero time standing for "nothing read".
func (p Participant) ReadSince() time.Time {
	if p.LastReadAt == nil {
		return time.Time{}
	}
	return *p.LastReadAt
}

// Advance moves the read cursor forward to at. An earlier time leaves it untouched.
func (p Participant) Advance(at time.Time) (Participant, bool) {
	if p.LastReadAt != nil && !at.After(*p.LastReadAt) {
		return p, false
	}
	at = at.UTC()
	p.LastReadAt = &at
	return p, true
}
