package repositories

import (
	"context"
	"fmt"
	"strings"
	"ticket-chat/domain"
	"ticket-chat/errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Key layout
//
//	conversation:{conv}                    conversation header
//	participant:{conv}:{user}              participant row (active flag, read cursor)
//	pair:{event}:{lo}:{hi}                 conversation id, one per unordered pair and event
//	membership:{event}:{user}:{conv}       (event, user) index over participant rows
//	message:{conv}:{unixnano}:{seq}        message, both numbers zero padded to 19 digits
//	message_id:{message}                   key of the message row
//	attendance:{event}:{user}              attendance row
//	profile:{user}                         profile row
const (
	conversationPrefix = "conversation:"
	participantPrefix  = "participant:"
	pairPrefix         = "pair:"
	membershipPrefix   = "membership:"
	messagePrefix      = "message:"
	messageIDPrefix    = "message_id:"
	attendancePrefix   = "attendance:"
	profilePrefix      = "profile:"
	messageSequenceKey = "sequence:message"
)

// maxTxnAttempts bounds the retries of a read-modify-write transaction losing an optimistic conflict.
const maxTxnAttempts = 5

// Options carries the settings shared by every badger repository.
type Options struct {
	// Timeout bounds each repository call. Zero disables the bound.
	Timeout time.Duration
	// Now is the clock used to stamp records.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now().UTC()
}

func conversationKey(id uuid.UUID) []byte {
	return []byte(conversationPrefix + id.String())
}

func participantsKeyPrefix(conversationID uuid.UUID) []byte {
	return []byte(participantPrefix + conversationID.String() + ":")
}

func participantKey(conversationID uuid.UUID, userID string) []byte {
	return append(participantsKeyPrefix(conversationID), userID...)
}

func pairKey(eventID, userA, userB string) []byte {
	return []byte(pairPrefix + domain.PairKey(eventID, userA, userB))
}

func eventPairsKeyPrefix(eventID string) []byte {
	return []byte(pairPrefix + eventID + ":")
}

func membershipsKeyPrefix(eventID, userID string) []byte {
	return []byte(membershipPrefix + eventID + ":" + userID + ":")
}

func membershipKey(eventID, userID string, conversationID uuid.UUID) []byte {
	return append(membershipsKeyPrefix(eventID, userID), conversationID.String()...)
}

func messagesKeyPrefix(conversationID uuid.UUID) []byte {
	return []byte(messagePrefix + conversationID.String() + ":")
}

// messageKey sorts chronologically thanks to the zero padding.
// The sequence breaks ties between messages sharing a nanosecond.
func messageKey(conversationID uuid.UUID, at time.Time, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d:%019d", messagePrefix, conversationID, at.UnixNano(), seq))
}

// messagesAfterKey is the first possible key strictly after the given instant.
func messagesAfterKey(conversationID uuid.UUID, at time.Time) []byte {
	return []byte(fmt.Sprintf("%s%s:%019d", messagePrefix, conversationID, at.UnixNano()+1))
}

func messageIDKey(id uuid.UUID) []byte {
	return []byte(messageIDPrefix + id.String())
}

func attendanceKey(eventID, userID string) []byte {
	return []byte(attendancePrefix + eventID + ":" + userID)
}

func eventAttendanceKeyPrefix(eventID string) []byte {
	return []byte(attendancePrefix + eventID + ":")
}

func profileKey(userID string) []byte {
	return []byte(profilePrefix + userID)
}

type conversationRecord struct {
	ID        string `cbor:"id"`
	EventID   string `cbor:"event_id"`
	CreatedAt int64  `cbor:"created_at"`
}

type participantRecord struct {
	UserID     string `cbor:"user_id"`
	IsActive   bool   `cbor:"is_active"`
	LastReadAt *int64 `cbor:"last_read_at,omitempty"`
}

type messageRecord struct {
	ID             string `cbor:"id"`
	Seq            uint64 `cbor:"seq"`
	ConversationID string `cbor:"conversation_id"`
	SenderID       string `cbor:"sender_id"`
	Content        string `cbor:"content"`
	CreatedAt      int64  `cbor:"created_at"`
	IsDeleted      bool   `cbor:"is_deleted"`
}

func fromParticipant(p domain.Participant) participantRecord {
	record := participantRecord{UserID: p.UserID, IsActive: p.IsActive}
	if p.LastReadAt != nil {
		record.LastReadAt = lo.ToPtr(p.LastReadAt.UnixNano())
	}
	return record
}

func toParticipant(record participantRecord) domain.Participant {
	p := domain.Participant{UserID: record.UserID, IsActive: record.IsActive}
	if record.LastReadAt != nil {
		p.LastReadAt = lo.ToPtr(time.Unix(0, *record.LastReadAt).UTC())
	}
	return p
}

func fromMessage(m domain.Message) messageRecord {
	return messageRecord{
		ID:             m.ID.String(),
		Seq:            m.Seq,
		ConversationID: m.ConversationID.String(),
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt.UnixNano(),
		IsDeleted:      m.IsDeleted,
	}
}

func toMessage(record messageRecord) (domain.Message, error) {
	id, err := uuid.Parse(record.ID)
	if err != nil {
		return domain.Message{}, err
	}
	conversationID, err := uuid.Parse(record.ConversationID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:             id,
		Seq:            record.Seq,
		ConversationID: conversationID,
		SenderID:       record.SenderID,
		Content:        record.Content,
		CreatedAt:      time.Unix(0, record.CreatedAt).UTC(),
		IsDeleted:      record.IsDeleted,
	}, nil
}

// run executes fn under the repository timeout.
// An expired deadline surfaces as ErrStoreTimeout, distinct from domain errors.
func run[T any](ctx context.Context, timeout time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	type result struct {
		value T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("store call panicked: %v", r)}
			}
		}()
		value, err := fn(ctx)
		done <- result{value: value, err: err}
	}()
	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		select {
		case r := <-done:
			return r.value, r.err
		default:
		}
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %v", errors.ErrStoreTimeout, ctx.Err())
		}
		return zero, ctx.Err()
	}
}

// exec is run for operations without a result.
func exec(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := run(ctx, timeout, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// update runs a read-modify-write transaction, retrying when badger reports
// that a concurrent transaction committed first.
func update(ctx context.Context, db *badger.DB, fn func(txn *badger.Txn) error) error {
	var err error
	for attempt := 0; attempt < maxTxnAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func getRecord(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshal(val, v)
	})
}

func setRecord(txn *badger.Txn, key []byte, v any) error {
	bytes, err := marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, bytes)
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// keySuffix returns the last ':' separated segment of a key.
func keySuffix(key []byte) string {
	k := string(key)
	return k[strings.LastIndexByte(k, ':')+1:]
}

func loadConversation(txn *badger.Txn, id uuid.UUID) (domain.Conversation, error) {
	var header conversationRecord
	if err := getRecord(txn, conversationKey(id), &header); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Conversation{}, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, id)
		}
		return domain.Conversation{}, err
	}
	conversation := domain.Conversation{
		ID:        id,
		EventID:   header.EventID,
		CreatedAt: time.Unix(0, header.CreatedAt).UTC(),
	}

	prefix := participantsKeyPrefix(id)
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 2})
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var record participantRecord
		if err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &record)
		}); err != nil {
			return domain.Conversation{}, err
		}
		conversation.Participants = append(conversation.Participants, toParticipant(record))
	}
	if len(conversation.Participants) != domain.ParticipantsPerConversation {
		return domain.Conversation{}, fmt.Errorf("corrupted conversation %s: %d participants stored",
			id, len(conversation.Participants))
	}
	return conversation, nil
}

// loadParticipant returns the participant row of userID in an existing conversation.
func loadParticipant(txn *badger.Txn, conversationID uuid.UUID, userID string) (domain.Participant, error) {
	ok, err := exists(txn, conversationKey(conversationID))
	if err != nil {
		return domain.Participant{}, err
	}
	if !ok {
		return domain.Participant{}, fmt.Errorf("%w: %s", errors.ErrConversationNotFound, conversationID)
	}
	var record participantRecord
	if err = getRecord(txn, participantKey(conversationID, userID), &record); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return domain.Participant{}, fmt.Errorf("%w: %s in %s", errors.ErrParticipantNotFound, userID, conversationID)
		}
		return domain.Participant{}, err
	}
	return toParticipant(record), nil
}

// advanceCursor moves a read cursor forward, never backward.
// A concurrent update either commits first, then this one re-reads it,
// or conflicts and is retried by update.
func advanceCursor(ctx context.Context, db *badger.DB, conversationID uuid.UUID, userID string, at time.Time) error {
	return update(ctx, db, func(txn *badger.Txn) error {
		participant, err := loadParticipant(txn, conversationID, userID)
		if err != nil {
			return err
		}
		advanced, changed := participant.Advance(at)
		if !changed {
			return nil
		}
		return setRecord(txn, participantKey(conversationID, userID), fromParticipant(advanced))
	})
}

// countUnread counts the non-deleted messages of other participants stamped after since.
// A zero since counts the whole conversation.
func countUnread(txn *badger.Txn, conversationID uuid.UUID, userID string, since time.Time) (int, error) {
	prefix := messagesKeyPrefix(conversationID)
	seek := prefix
	if !since.IsZero() {
		seek = messagesAfterKey(conversationID, since)
	}
	it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 100})
	defer it.Close()

	count := 0
	for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
		var record messageRecord
		if err := it.Item().Value(func(val []byte) error {
			return unmarshal(val, &record)
		}); err != nil {
			return 0, err
		}
		if record.IsDeleted || record.SenderID == userID {
			continue
		}
		count++
	}
	return count, nil
}

// visibilityCache memoizes profile visibility for the duration of one call,
// so a conversation page asks the oracle at most once per sender.
type visibilityCache struct {
	isPublic func(ctx context.Context, userID string) (bool, error)
	known    map[string]bool
}

func newVisibilityCache(isPublic func(ctx context.Context, userID string) (bool, error)) *visibilityCache {
	return &visibilityCache{isPublic: isPublic, known: make(map[string]bool)}
}

func (c *visibilityCache) visible(ctx context.Context, userID string) (bool, error) {
	if public, ok := c.known[userID]; ok {
		return public, nil
	}
	public, err := c.isPublic(ctx, userID)
	if err != nil {
		return false, err
	}
	c.known[userID] = public
	return public, nil
}
