package domain

type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Profile is the slice of a platform user the messaging system reads.
type Profile struct {
	UserID      string
	DisplayName string
	AvatarRef   string
	Bio         *string
	Visibility  Visibility
}

func (p Profile) IsPublic() bool {
	return p.Visibility == VisibilityPublic
}

func (p Profile) Summary() PublicSummary {
	return PublicSummary{
		ID:          p.UserID,
		DisplayName: p.DisplayName,
		AvatarRef:   p.AvatarRef,
		Bio:         p.Bio,
	}
}

// PublicSummary is what other attendees may see of a user.
type PublicSummary struct {
	ID          string
	DisplayName string
	AvatarRef   string
	Bio         *string
}

// Attendance links a user to an event. TicketID is nil when no ticket was issued.
type Attendance struct {
	UserID   string
	EventID  string
	TicketID *string
}

func (a Attendance) HasTicket() bool {
	return a.TicketID != nil && *a.TicketID != ""
}
