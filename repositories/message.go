//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"ticket-chat/contract"
	"ticket-chat/domain"
	"ticket-chat/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	AppendMessage(ctx context.Context, conversationID uuid.UUID, senderID, content string) (domain.Message, error)
	ListMessages(ctx context.Context, conversationID uuid.UUID, page, pageSize int) (domain.MessagePage, error)
	SoftDeleteMessage(ctx context.Context, messageID uuid.UUID, requesterID string) error
	CountUnread(ctx context.Context, conversationID uuid.UUID, forUserID string) (int, error)
	MarkRead(ctx context.Context, conversationID uuid.UUID, forUserID string) error
}

type MessageRepository struct {
	db       *badger.DB
	log      *slog.Logger
	seq      *badger.Sequence
	profiles contract.ProfileOracle
	opts     Options
}

// NewMessageRepository leases a block of the message sequence.
// Close must be called to hand the unused part of the lease back.
func NewMessageRepository(db *badger.DB, log *slog.Logger, profiles contract.ProfileOracle, opts Options) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte(messageSequenceKey), 100)
	if err != nil {
		return nil, fmt.Errorf("message sequence: %w", err)
	}
	return &MessageRepository{db: db, log: log, seq: seq, profiles: profiles, opts: opts}, nil
}

func (m *MessageRepository) Close() error {
	return m.seq.Release()
}

// AppendMessage stores a message from an active participant whose profile is public.
// The row is keyed "message:{conv}:{unixnano}:{seq}" so that prefix scans are chronological
// and two messages sharing a nanosecond keep their insertion order.
// The sender's read cursor then moves to the message time. That second write is
// best-effort: a failure is logged and the stored message is still returned.
func (m *MessageRepository) AppendMessage(ctx context.Context, conversationID uuid.UUID, senderID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, errors.ErrEmptyContent
	}
	return run(ctx, m.opts.Timeout, func(ctx context.Context) (domain.Message, error) {
		public, err := m.profiles.IsPublic(ctx, senderID)
		if err != nil {
			return domain.Message{}, err
		}
		if !public {
			return domain.Message{}, fmt.Errorf("%w: sender %s", errors.ErrProfileNotPublic, senderID)
		}

		seq, err := m.seq.Next()
		if err != nil {
			return domain.Message{}, fmt.Errorf("message sequence: %w", err)
		}
		message := domain.Message{
			ID:             uuid.New(),
			Seq:            seq,
			ConversationID: conversationID,
			SenderID:       senderID,
			Content:        content,
			CreatedAt:      m.opts.now(),
		}
		key := messageKey(conversationID, message.CreatedAt, seq)
		err = update(ctx, m.db, func(txn *badger.Txn) error {
			participant, err := loadParticipant(txn, conversationID, senderID)
			if errors.Is(err, errors.ErrParticipantNotFound) {
				return fmt.Errorf("%w: %s", errors.ErrNotParticipant, senderID)
			}
			if err != nil {
				return err
			}
			if !participant.IsActive {
				return fmt.Errorf("%w: %s left the conversation", errors.ErrNotParticipant, senderID)
			}
			if err = setRecord(txn, key, fromMessage(message)); err != nil {
				return err
			}
			return txn.Set(messageIDKey(message.ID), key)
		})
		if err != nil {
			return domain.Message{}, err
		}

		if err = advanceCursor(ctx, m.db, conversationID, senderID, message.CreatedAt); err != nil {
			m.log.Warn("Sender read cursor not advanced",
				"conversation_id", conversationID,
				"sender_id", senderID,
				"error", err)
		}
		return message, nil
	})
}

// ListMessages returns one page of the visible messages, oldest first.
// Pages are counted from the newest message: page 1 holds the latest pageSize messages.
//
// Visibility is evaluated now, not at send time: once a sender turns their
// profile private, their whole history disappears from the conversation,
// and comes back if they turn it public again. TotalCount follows the same rule.
func (m *MessageRepository) ListMessages(ctx context.Context, conversationID uuid.UUID, page, pageSize int) (domain.MessagePage, error) {
	if page < 1 || pageSize < 1 {
		return domain.MessagePage{}, fmt.Errorf("%w: page %d, page size %d", errors.ErrInvalidArgument, page, pageSize)
	}
	return run(ctx, m.opts.Timeout, func(ctx context.Context) (domain.MessagePage, error) {
		var newestFirst []domain.Message
		err := m.db.View(func(txn *badger.Txn) error {
			ok, err := exists(txn, conversationKey(conversationID))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %s", errors.ErrConversationNotFound, conversationID)
			}
			prefix := messagesKeyPrefix(conversationID)
			it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, Reverse: true, PrefetchValues: true, PrefetchSize: 100})
			defer it.Close()
			for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
				var record messageRecord
				if err := it.Item().Value(func(val []byte) error {
					return unmarshal(val, &record)
				}); err != nil {
					return err
				}
				if record.IsDeleted {
					continue
				}
				message, err := toMessage(record)
				if err != nil {
					return err
				}
				newestFirst = append(newestFirst, message)
			}
			return nil
		})
		if err != nil {
			return domain.MessagePage{}, err
		}

		visibility := newVisibilityCache(m.profiles.IsPublic)
		var visible []domain.Message
		for _, message := range newestFirst {
			public, err := visibility.visible(ctx, message.SenderID)
			if err != nil {
				return domain.MessagePage{}, err
			}
			if public {
				visible = append(visible, message)
			}
		}

		result := domain.MessagePage{TotalCount: len(visible)}
		pages := len(visible) / pageSize
		if len(visible)%pageSize != 0 {
			pages++
		}
		// compared in pages so that (page-1)*pageSize cannot overflow
		if page-1 >= pages {
			result.Messages = []domain.Message{}
			return result, nil
		}
		start := (page - 1) * pageSize
		end := min(start+pageSize, len(visible))
		result.Messages = lo.Reverse(append([]domain.Message(nil), visible[start:end]...))
		return result, nil
	})
}

// SoftDeleteMessage hides a message. Only its sender may do so; deleting twice is a no-op.
func (m *MessageRepository) SoftDeleteMessage(ctx context.Context, messageID uuid.UUID, requesterID string) error {
	return exec(ctx, m.opts.Timeout, func(ctx context.Context) error {
		return update(ctx, m.db, func(txn *badger.Txn) error {
			item, err := txn.Get(messageIDKey(messageID))
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", errors.ErrMessageNotFound, messageID)
			}
			if err != nil {
				return err
			}
			key, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var record messageRecord
			if err = getRecord(txn, key, &record); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("%w: %s", errors.ErrMessageNotFound, messageID)
				}
				return err
			}
			if record.SenderID != requesterID {
				return fmt.Errorf("%w: message %s", errors.ErrNotMessageSender, messageID)
			}
			if record.IsDeleted {
				return nil
			}
			record.IsDeleted = true
			return setRecord(txn, key, record)
		})
	})
}

// CountUnread counts the non-deleted messages of the other participant sent after
// forUserID's read cursor. A participant who never read sees every such message as unread.
func (m *MessageRepository) CountUnread(ctx context.Context, conversationID uuid.UUID, forUserID string) (int, error) {
	return run(ctx, m.opts.Timeout, func(ctx context.Context) (int, error) {
		var count int
		err := m.db.View(func(txn *badger.Txn) error {
			participant, err := loadParticipant(txn, conversationID, forUserID)
			if err != nil {
				return err
			}
			count, err = countUnread(txn, conversationID, forUserID, participant.ReadSince())
			return err
		})
		return count, err
	})
}

// MarkRead moves the read cursor of forUserID to now. A cursor already ahead,
// for instance pushed by a concurrent send, is left where it is.
func (m *MessageRepository) MarkRead(ctx context.Context, conversationID uuid.UUID, forUserID string) error {
	return exec(ctx, m.opts.Timeout, func(ctx context.Context) error {
		return advanceCursor(ctx, m.db, conversationID, forUserID, m.opts.now())
	})
}
