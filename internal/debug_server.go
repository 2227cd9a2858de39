package internal

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"ticket-chat/domain"
	"ticket-chat/repositories"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const defaultPrefix = "conversation:"

var inspectPage = template.Must(template.New("inspect").Parse(`<!doctype html>
<html><head><meta charset="utf-8"><title>ticket-chat store</title></head>
<body>
<form><input name="prefix" value="{{.Prefix}}"> <button>Scan</button></form>
<form><input name="event" value="{{.Event}}" placeholder="event id"> <button>Conversations</button></form>
<p>{{range $k, $v := .Stats}}{{$k}}: {{$v}} &nbsp; {{end}}</p>
<table>
<tr><th>Key</th><th>Kind</th><th>At</th><th>Detail</th></tr>
{{range .Items}}<tr><td>{{.Key}}</td><td>{{.Kind}}</td><td>{{.At}}</td><td>{{.Detail}}</td></tr>
{{end}}</table>
</body></html>`))

type InspectRow struct {
	Key    string
	Kind   string
	At     string
	Detail string
}

type StatsProvider func() map[string]any

// EventConversations lists every conversation of an event, left ones included.
type EventConversations interface {
	ListEventConversations(ctx context.Context, eventID string) ([]domain.Conversation, error)
}

type PageData struct {
	Prefix string
	Event  string
	Items  []InspectRow
	Stats  map[string]any
}

// StartDebugServer serves a read-only HTML view of the store on port.
// It scans the keys matching the "prefix" query parameter, capped at limit rows.
// With an "event" query parameter it lists the conversations of that event instead.
func StartDebugServer(db *badger.DB, conversations EventConversations, log *slog.Logger, port int, endpoint string, limit int, stats StatsProvider) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(endpoint, inspectHandler(db, conversations, limit, stats))

	server := &http.Server{
		Addr:              fmt.Sprintf("localhost:%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("Debug server stopped", "error", err)
		}
	}()
	return server
}

func inspectHandler(db *badger.DB, conversations EventConversations, limit int, stats StatsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prefix := r.URL.Query().Get("prefix")
		if prefix == "" {
			prefix = defaultPrefix
		}
		data := PageData{Prefix: prefix, Event: r.URL.Query().Get("event"), Stats: make(map[string]any)}
		if stats != nil {
			data.Stats = stats()
		}
		if data.Event != "" && conversations != nil {
			listed, err := conversations.ListEventConversations(r.Context(), data.Event)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			for _, conversation := range listed {
				if len(data.Items) == limit {
					break
				}
				data.Items = append(data.Items, conversationRow(conversation))
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_ = inspectPage.Execute(w, data)
			return
		}
		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()
			for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)) && len(data.Items) < limit; it.Next() {
				item := it.Item()
				if err := item.Value(func(val []byte) error {
					data.Items = append(data.Items, toRow(repositories.DescribeRecord(item.Key(), val)))
					return nil
				}); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = inspectPage.Execute(w, data)
	}
}

func toRow(record repositories.Record) InspectRow {
	row := InspectRow{Key: record.Key, Kind: record.Kind, At: "--", Detail: record.Detail}
	if !record.At.IsZero() {
		row.At = record.At.Format(time.DateTime)
	}
	return row
}

// conversationRow summarises a conversation as "alice active read 18:04:05, bob left (1/2 active)".
func conversationRow(conversation domain.Conversation) InspectRow {
	active := 0
	parts := make([]string, 0, len(conversation.Participants))
	for _, p := range conversation.Participants {
		state := "left"
		if conversation.IsActiveParticipant(p.UserID) {
			state = "active"
			active++
		}
		if since := p.ReadSince(); !since.IsZero() {
			state += " read " + since.Format(time.TimeOnly)
		}
		parts = append(parts, p.UserID+" "+state)
	}
	return InspectRow{
		Key:  conversation.ID.String(),
		Kind: "conversation",
		At:   conversation.CreatedAt.Format(time.DateTime),
		Detail: fmt.Sprintf("%s (%d/%d active)", strings.Join(parts, ", "),
			active, domain.ParticipantsPerConversation),
	}
}
