//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"ticket-chat/contract"
	"ticket-chat/domain"
	"ticket-chat/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IConversationRepository interface {
	FindConversation(ctx context.Context, eventID, userA, userB string) (*domain.Conversation, error)
	CreateConversation(ctx context.Context, eventID, userA, userB string) (domain.Conversation, error)
	GetConversation(ctx context.Context, conversationID uuid.UUID) (domain.Conversation, error)
	DeactivateParticipant(ctx context.Context, conversationID uuid.UUID, userID string) error
	ReactivateParticipant(ctx context.Context, conversationID uuid.UUID, userID string) error
	AdvanceReadCursor(ctx context.Context, conversationID uuid.UUID, userID string, at time.Time) error
	ListConversationsForUser(ctx context.Context, eventID, userID string) ([]domain.ConversationSummary, error)
	ListCandidateUsers(ctx context.Context, eventID, excludingUserID string) ([]domain.Candidate, error)
	ListEventConversations(ctx context.Context, eventID string) ([]domain.Conversation, error)
}

type ConversationRepository struct {
	db         *badger.DB
	log        *slog.Logger
	attendance contract.AttendanceOracle
	profiles   contract.ProfileOracle
	opts       Options
}

func NewConversationRepository(db *badger.DB, log *slog.Logger,
	attendance contract.AttendanceOracle, profiles contract.ProfileOracle, opts Options) ConversationRepository {
	return ConversationRepository{db: db, log: log, attendance: attendance, profiles: profiles, opts: opts}
}

// FindConversation returns the conversation of the pair for the event, or nil.
// The pair is unordered: (a, b) and (b, a) resolve to the same conversation.
func (r ConversationRepository) FindConversation(ctx context.Context, eventID, userA, userB string) (*domain.Conversation, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) (*domain.Conversation, error) {
		var found *domain.Conversation
		err := r.db.View(func(txn *badger.Txn) error {
			conversation, ok, err := r.findInTxn(txn, eventID, userA, userB)
			if err != nil || !ok {
				return err
			}
			found = &conversation
			return nil
		})
		return found, err
	})
}

func (r ConversationRepository) findInTxn(txn *badger.Txn, eventID, userA, userB string) (domain.Conversation, bool, error) {
	item, err := txn.Get(pairKey(eventID, userA, userB))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Conversation{}, false, nil
	}
	if err != nil {
		return domain.Conversation{}, false, err
	}
	var rawID []byte
	if rawID, err = item.ValueCopy(nil); err != nil {
		return domain.Conversation{}, false, err
	}
	id, err := uuid.ParseBytes(rawID)
	if err != nil {
		return domain.Conversation{}, false, fmt.Errorf("corrupted pair index for %s: %w", domain.PairKey(eventID, userA, userB), err)
	}
	conversation, err := loadConversation(txn, id)
	if err != nil {
		return domain.Conversation{}, false, err
	}
	if !conversation.HasPair(userA, userB) {
		r.log.Warn("pair index points to a conversation without both users",
			"conversation_id", id, "event_id", eventID)
		return domain.Conversation{}, false, nil
	}
	return conversation, true, nil
}

// CreateConversation stores a new pairwise conversation with both participants active.
// The pair index is written in the same transaction and acts as the uniqueness constraint:
// an existing index entry, or a concurrent transaction committing the same entry first,
// fails with ErrConversationConflict.
func (r ConversationRepository) CreateConversation(ctx context.Context, eventID, userA, userB string) (domain.Conversation, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) (domain.Conversation, error) {
		conversation := domain.NewConversation(eventID, userA, userB, r.opts.now())
		err := r.db.Update(func(txn *badger.Txn) error {
			taken, err := exists(txn, pairKey(eventID, userA, userB))
			if err != nil {
				return err
			}
			if taken {
				return errors.ErrConversationConflict
			}
			header := conversationRecord{
				ID:        conversation.ID.String(),
				EventID:   eventID,
				CreatedAt: conversation.CreatedAt.UnixNano(),
			}
			if err = setRecord(txn, conversationKey(conversation.ID), header); err != nil {
				return err
			}
			for _, p := range conversation.Participants {
				if err = setRecord(txn, participantKey(conversation.ID, p.UserID), fromParticipant(p)); err != nil {
					return err
				}
				if err = txn.Set(membershipKey(eventID, p.UserID, conversation.ID), nil); err != nil {
					return err
				}
			}
			return txn.Set(pairKey(eventID, userA, userB), []byte(conversation.ID.String()))
		})
		if errors.Is(err, badger.ErrConflict) {
			return domain.Conversation{}, fmt.Errorf("%w: %v", errors.ErrConversationConflict, err)
		}
		if err != nil {
			return domain.Conversation{}, err
		}
		r.log.Debug("Conversation created", "conversation_id", conversation.ID, "event_id", eventID)
		return conversation, nil
	})
}

func (r ConversationRepository) GetConversation(ctx context.Context, conversationID uuid.UUID) (domain.Conversation, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) (domain.Conversation, error) {
		var conversation domain.Conversation
		err := r.db.View(func(txn *badger.Txn) (err error) {
			conversation, err = loadConversation(txn, conversationID)
			return err
		})
		return conversation, err
	})
}

// DeactivateParticipant marks userID as having left. Messages are kept.
func (r ConversationRepository) DeactivateParticipant(ctx context.Context, conversationID uuid.UUID, userID string) error {
	return r.setActive(ctx, conversationID, userID, false)
}

// ReactivateParticipant brings a participant who left back into the conversation.
func (r ConversationRepository) ReactivateParticipant(ctx context.Context, conversationID uuid.UUID, userID string) error {
	return r.setActive(ctx, conversationID, userID, true)
}

func (r ConversationRepository) setActive(ctx context.Context, conversationID uuid.UUID, userID string, active bool) error {
	return exec(ctx, r.opts.Timeout, func(ctx context.Context) error {
		return update(ctx, r.db, func(txn *badger.Txn) error {
			participant, err := loadParticipant(txn, conversationID, userID)
			if err != nil {
				return err
			}
			if participant.IsActive == active {
				return nil
			}
			participant.IsActive = active
			return setRecord(txn, participantKey(conversationID, userID), fromParticipant(participant))
		})
	})
}

// AdvanceReadCursor sets the read cursor of userID to max(current, at).
func (r ConversationRepository) AdvanceReadCursor(ctx context.Context, conversationID uuid.UUID, userID string, at time.Time) error {
	return exec(ctx, r.opts.Timeout, func(ctx context.Context) error {
		return advanceCursor(ctx, r.db, conversationID, userID, at)
	})
}

// ListConversationsForUser lists the conversations of the event where userID is still active,
// most recent activity first, with a preview of the last visible message and the unread count.
func (r ConversationRepository) ListConversationsForUser(ctx context.Context, eventID, userID string) ([]domain.ConversationSummary, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) ([]domain.ConversationSummary, error) {
		var summaries []domain.ConversationSummary
		visibility := newVisibilityCache(r.profiles.IsPublic)
		err := r.db.View(func(txn *badger.Txn) error {
			prefix := membershipsKeyPrefix(eventID, userID)
			it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix})
			var ids []uuid.UUID
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				id, err := uuid.Parse(keySuffix(it.Item().Key()))
				if err != nil {
					it.Close()
					return fmt.Errorf("corrupted membership key %q: %w", it.Item().Key(), err)
				}
				ids = append(ids, id)
			}
			it.Close()

			for _, id := range ids {
				if err := ctx.Err(); err != nil {
					return err
				}
				conversation, err := loadConversation(txn, id)
				if err != nil {
					return err
				}
				participant, ok := conversation.Participant(userID)
				if !ok || !participant.IsActive {
					continue
				}
				last, err := lastVisibleMessage(ctx, txn, id, visibility)
				if err != nil {
					return err
				}
				unread, err := countUnread(txn, id, userID, participant.ReadSince())
				if err != nil {
					return err
				}
				summaries = append(summaries, domain.ConversationSummary{
					Conversation: conversation,
					LastMessage:  last,
					UnreadCount:  unread,
				})
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.SliceStable(summaries, func(i, j int) bool {
			a, b := summaries[i].LastMessage, summaries[j].LastMessage
			if a != nil && b != nil {
				return b.Before(*a)
			}
			return lastActivity(summaries[i]).After(lastActivity(summaries[j]))
		})
		return summaries, nil
	})
}

func lastActivity(summary domain.ConversationSummary) time.Time {
	if summary.LastMessage != nil {
		return summary.LastMessage.CreatedAt
	}
	return summary.Conversation.CreatedAt
}

// lastVisibleMessage walks the conversation backwards until it meets a message
// that is neither deleted nor written by a sender whose profile is now private.
func lastVisibleMessage(ctx context.Context, txn *badger.Txn, conversationID uuid.UUID, visibility *visibilityCache) (*domain.Message, error) {
	prefix := messagesKeyPrefix(conversationID)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, Reverse: true, PrefetchValues: true, PrefetchSize: 10})
	defer it.Close()
	for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
		var record messageRecord
		if err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &record)
		}); err != nil {
			return nil, err
		}
		if record.IsDeleted {
			continue
		}
		public, err := visibility.visible(ctx, record.SenderID)
		if err != nil {
			return nil, err
		}
		if !public {
			continue
		}
		message, err := toMessage(record)
		if err != nil {
			return nil, err
		}
		return &message, nil
	}
	return nil, nil
}

// ListCandidateUsers lists the public ticket holders of the event other than the requester,
// flagging those the requester already has a conversation with.
func (r ConversationRepository) ListCandidateUsers(ctx context.Context, eventID, excludingUserID string) ([]domain.Candidate, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) ([]domain.Candidate, error) {
		holders, err := r.attendance.TicketHolders(ctx, eventID)
		if err != nil {
			return nil, err
		}
		holders = lo.Filter(lo.Uniq(holders), func(userID string, _ int) bool {
			return userID != excludingUserID
		})
		sort.Strings(holders)

		var public []string
		for _, userID := range holders {
			ok, err := r.profiles.IsPublic(ctx, userID)
			if err != nil {
				return nil, err
			}
			if ok {
				public = append(public, userID)
			}
		}

		candidates := make([]domain.Candidate, 0, len(public))
		err = r.db.View(func(txn *badger.Txn) error {
			for _, userID := range public {
				_, found, err := r.findInTxn(txn, eventID, excludingUserID, userID)
				if err != nil {
					return err
				}
				candidates = append(candidates, domain.Candidate{UserID: userID, HasConversation: found})
			}
			return nil
		})
		return candidates, err
	})
}

// ListEventConversations returns every conversation of the event, active or not.
func (r ConversationRepository) ListEventConversations(ctx context.Context, eventID string) ([]domain.Conversation, error) {
	return run(ctx, r.opts.Timeout, func(ctx context.Context) ([]domain.Conversation, error) {
		var conversations []domain.Conversation
		err := r.db.View(func(txn *badger.Txn) error {
			prefix := eventPairsKeyPrefix(eventID)
			it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true})
			var ids []uuid.UUID
			for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
				rawID, err := it.Item().ValueCopy(nil)
				if err != nil {
					it.Close()
					return err
				}
				id, err := uuid.ParseBytes(rawID)
				if err != nil {
					it.Close()
					return err
				}
				ids = append(ids, id)
			}
			it.Close()
			for _, id := range ids {
				conversation, err := loadConversation(txn, id)
				if err != nil {
					return err
				}
				conversations = append(conversations, conversation)
			}
			return nil
		})
		return conversations, err
	})
}
