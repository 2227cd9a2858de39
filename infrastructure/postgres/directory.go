package postgres

import (
	"context"
	"fmt"
	"ticket-chat/contract"
	"ticket-chat/domain"
	"ticket-chat/errors"

	"github.com/jackc/pgx/v5"
)

// Querier is the part of pgxpool.Pool the directory needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlatformDirectory answers the eligibility questions straight from the
// ticketing platform tables:
//
//	attendances(user_id, event_id, ticket_id NULL)
//	profiles(user_id, display_name, avatar_ref, bio NULL, profile_visibility)
type PlatformDirectory struct {
	db Querier
}

var (
	_ contract.AttendanceOracle = PlatformDirectory{}
	_ contract.ProfileOracle    = PlatformDirectory{}
)

func NewPlatformDirectory(db Querier) PlatformDirectory {
	return PlatformDirectory{db: db}
}

func (d PlatformDirectory) HasTicket(ctx context.Context, userID, eventID string) (bool, error) {
	var ok bool
	err := d.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendances
			WHERE user_id = $1 AND event_id = $2 AND ticket_id IS NOT NULL AND ticket_id <> ''
		)`, userID, eventID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("postgres: has ticket: %w", err)
	}
	return ok, nil
}

func (d PlatformDirectory) TicketHolders(ctx context.Context, eventID string) ([]string, error) {
	rows, err := d.db.Query(ctx, `
		SELECT DISTINCT user_id FROM attendances
		WHERE event_id = $1 AND ticket_id IS NOT NULL AND ticket_id <> ''
		ORDER BY user_id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("postgres: ticket holders: %w", err)
	}
	holders, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: ticket holders: %w", err)
	}
	return holders, nil
}

// IsPublic reports false for users without a profile row.
func (d PlatformDirectory) IsPublic(ctx context.Context, userID string) (bool, error) {
	var visibility string
	err := d.db.QueryRow(ctx, `SELECT profile_visibility FROM profiles WHERE user_id = $1`, userID).Scan(&visibility)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("postgres: profile visibility: %w", err)
	}
	return domain.Visibility(visibility) == domain.VisibilityPublic, nil
}

// GetPublicSummary reads a missing display name or avatar as an empty string.
func (d PlatformDirectory) GetPublicSummary(ctx context.Context, userID string) (domain.PublicSummary, error) {
	var profile domain.Profile
	var visibility string
	err := d.db.QueryRow(ctx, `
		SELECT user_id, COALESCE(display_name, ''), COALESCE(avatar_ref, ''), bio, profile_visibility
		FROM profiles WHERE user_id = $1`, userID).
		Scan(&profile.UserID, &profile.DisplayName, &profile.AvatarRef, &profile.Bio, &visibility)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PublicSummary{}, fmt.Errorf("%w: %s", errors.ErrProfileNotFound, userID)
	}
	if err != nil {
		return domain.PublicSummary{}, fmt.Errorf("postgres: profile: %w", err)
	}
	profile.Visibility = domain.Visibility(visibility)
	if !profile.IsPublic() {
		return domain.PublicSummary{}, fmt.Errorf("%w: %s", errors.ErrProfileNotPublic, userID)
	}
	return profile.Summary(), nil
}
