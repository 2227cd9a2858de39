package repositories

import (
	"testing"
	"ticket-chat/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func Test_Describe_Every_Record_Kind(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	f.attendee(t, "alice", domain.VisibilityPublic)
	f.attendee(t, "bob", domain.VisibilityPublic)
	conversation := f.conversation(t, "alice", "bob")
	f.send(t, conversation, "alice", "hello there")

	kinds := map[string]Record{}
	err := f.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			record := DescribeRecord(item.KeyCopy(nil), val)
			kinds[record.Kind] = record
		}
		return nil
	})
	req.NoError(err)

	for _, kind := range []string{"conversation", "participant", "pair", "membership", "message", "message index", "attendance", "profile"} {
		req.Contains(kinds, kind)
	}
	req.Equal("alice: hello there", kinds["message"].Detail)
	req.Equal("event "+event, kinds["conversation"].Detail)

	broken := DescribeRecord([]byte(profilePrefix+"x"), []byte{0xff, 0x00})
	req.Equal("profile", broken.Kind)
	req.Contains(broken.Detail, "Error")
}
