package repositories

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Record is a human readable view of one raw store entry, for inspection tools.
type Record struct {
	Key    string
	Kind   string
	At     time.Time
	Detail string
}

// DescribeRecord decodes a raw badger entry according to its key prefix.
// Undecodable values are reported, never returned as errors.
func DescribeRecord(key, val []byte) Record {
	record := Record{Key: string(key), Kind: "raw", Detail: fmt.Sprintf("%d bytes", len(val))}
	switch {
	case bytes.HasPrefix(key, []byte(conversationPrefix)):
		var r conversationRecord
		if describe(&record, "conversation", val, &r) {
			record.At = time.Unix(0, r.CreatedAt).UTC()
			record.Detail = "event " + r.EventID
		}
	case bytes.HasPrefix(key, []byte(participantPrefix)):
		var r participantRecord
		if describe(&record, "participant", val, &r) {
			p := toParticipant(r)
			record.Detail = fmt.Sprintf("%s active=%t", p.UserID, p.IsActive)
			if p.LastReadAt != nil {
				record.At = *p.LastReadAt
			}
		}
	case bytes.HasPrefix(key, []byte(messageIDPrefix)):
		record.Kind = "message index"
		record.Detail = string(val)
	case bytes.HasPrefix(key, []byte(messagePrefix)):
		var r messageRecord
		if describe(&record, "message", val, &r) {
			record.At = time.Unix(0, r.CreatedAt).UTC()
			record.Detail = r.SenderID + ": " + r.Content
			if r.IsDeleted {
				record.Detail += " (deleted)"
			}
		}
	case bytes.HasPrefix(key, []byte(pairPrefix)):
		record.Kind = "pair"
		record.Detail = string(val)
	case bytes.HasPrefix(key, []byte(membershipPrefix)):
		record.Kind = "membership"
		record.Detail = keySuffix(key)
	case bytes.HasPrefix(key, []byte(attendancePrefix)):
		var r attendanceRecord
		if describe(&record, "attendance", val, &r) {
			record.Detail = r.UserID + " no ticket"
			if toAttendance(r).HasTicket() {
				record.Detail = r.UserID + " ticket " + *r.TicketID
			}
		}
	case bytes.HasPrefix(key, []byte(profilePrefix)):
		var r profileRecord
		if describe(&record, "profile", val, &r) {
			record.Detail = strings.TrimSpace(r.DisplayName + " " + r.Visibility)
		}
	}
	return record
}

func describe(record *Record, kind string, val []byte, v any) bool {
	record.Kind = kind
	if err := unmarshal(val, v); err != nil {
		record.Detail = "Error: " + err.Error()
		return false
	}
	return true
}
