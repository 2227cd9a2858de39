package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"ticket-chat/contract"
	"ticket-chat/domain"
	"ticket-chat/errors"

	"github.com/dgraph-io/badger/v4"
)

// IDirectoryRepository is the local copy of the platform data the messaging
// system is gated on. The platform pushes attendances and profiles into it;
// the messaging side only reads it through the oracle interfaces.
type IDirectoryRepository interface {
	contract.AttendanceOracle
	contract.ProfileOracle
	RecordAttendance(ctx context.Context, attendance domain.Attendance) error
	SaveProfile(ctx context.Context, profile domain.Profile) error
}

type DirectoryRepository struct {
	db   *badger.DB
	log  *slog.Logger
	opts Options
}

var _ IDirectoryRepository = DirectoryRepository{}

func NewDirectoryRepository(db *badger.DB, log *slog.Logger, opts Options) DirectoryRepository {
	return DirectoryRepository{db: db, log: log, opts: opts}
}

type attendanceRecord struct {
	UserID   string  `cbor:"user_id"`
	EventID  string  `cbor:"event_id"`
	TicketID *string `cbor:"ticket_id,omitempty"`
}

type profileRecord struct {
	UserID      string  `cbor:"user_id"`
	DisplayName string  `cbor:"display_name"`
	AvatarRef   string  `cbor:"avatar_ref"`
	Bio         *string `cbor:"bio,omitempty"`
	Visibility  string  `cbor:"visibility"`
}

// RecordAttendance upserts the attendance of a user to an event.
// A nil TicketID keeps the user registered but without a ticket.
func (d DirectoryRepository) RecordAttendance(ctx context.Context, attendance domain.Attendance) error {
	return exec(ctx, d.opts.Timeout, func(ctx context.Context) error {
		return d.db.Update(func(txn *badger.Txn) error {
			return setRecord(txn, attendanceKey(attendance.EventID, attendance.UserID), attendanceRecord{
				UserID:   attendance.UserID,
				EventID:  attendance.EventID,
				TicketID: attendance.TicketID,
			})
		})
	})
}

func (d DirectoryRepository) SaveProfile(ctx context.Context, profile domain.Profile) error {
	if profile.Visibility != domain.VisibilityPublic && profile.Visibility != domain.VisibilityPrivate {
		return fmt.Errorf("%w: visibility %q", errors.ErrInvalidArgument, profile.Visibility)
	}
	return exec(ctx, d.opts.Timeout, func(ctx context.Context) error {
		return d.db.Update(func(txn *badger.Txn) error {
			return setRecord(txn, profileKey(profile.UserID), profileRecord{
				UserID:      profile.UserID,
				DisplayName: profile.DisplayName,
				AvatarRef:   profile.AvatarRef,
				Bio:         profile.Bio,
				Visibility:  string(profile.Visibility),
			})
		})
	})
}

func (d DirectoryRepository) HasTicket(ctx context.Context, userID, eventID string) (bool, error) {
	return run(ctx, d.opts.Timeout, func(ctx context.Context) (bool, error) {
		var record attendanceRecord
		err := d.db.View(func(txn *badger.Txn) error {
			return getRecord(txn, attendanceKey(eventID, userID), &record)
		})
		if errors.Is(err, badger.ErrKeyNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return toAttendance(record).HasTicket(), nil
	})
}

func (d DirectoryRepository) TicketHolders(ctx context.Context, eventID string) ([]string, error) {
	return run(ctx, d.opts.Timeout, func(ctx context.Context) ([]string, error) {
		var holders []string
		err := d.db.View(func(txn *badger.Txn) error {
			prefix := eventAttendanceKeyPrefix(eventID)
			it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
			defer it.Close()
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				var record attendanceRecord
				if err := it.Item().Value(func(val []byte) error {
					return unmarshal(val, &record)
				}); err != nil {
					return err
				}
				if toAttendance(record).HasTicket() {
					holders = append(holders, record.UserID)
				}
			}
			return nil
		})
		return holders, err
	})
}

// IsPublic reports false for users the directory does not know.
func (d DirectoryRepository) IsPublic(ctx context.Context, userID string) (bool, error) {
	profile, err := d.getProfile(ctx, userID)
	if errors.Is(err, errors.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return profile.IsPublic(), nil
}

func (d DirectoryRepository) GetPublicSummary(ctx context.Context, userID string) (domain.PublicSummary, error) {
	profile, err := d.getProfile(ctx, userID)
	if err != nil {
		return domain.PublicSummary{}, err
	}
	if !profile.IsPublic() {
		return domain.PublicSummary{}, fmt.Errorf("%w: %s", errors.ErrProfileNotPublic, userID)
	}
	return profile.Summary(), nil
}

func (d DirectoryRepository) getProfile(ctx context.Context, userID string) (domain.Profile, error) {
	return run(ctx, d.opts.Timeout, func(ctx context.Context) (domain.Profile, error) {
		var record profileRecord
		err := d.db.View(func(txn *badger.Txn) error {
			return getRecord(txn, profileKey(userID), &record)
		})
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Profile{}, fmt.Errorf("%w: %s", errors.ErrProfileNotFound, userID)
		}
		if err != nil {
			return domain.Profile{}, err
		}
		return domain.Profile{
			UserID:      record.UserID,
			DisplayName: record.DisplayName,
			AvatarRef:   record.AvatarRef,
			Bio:         record.Bio,
			Visibility:  domain.Visibility(record.Visibility),
		}, nil
	})
}

func toAttendance(record attendanceRecord) domain.Attendance {
	return domain.Attendance{UserID: record.UserID, EventID: record.EventID, TicketID: record.TicketID}
}
