package chat_test

import (
	"testing"
	"time"

	"artfeed-backend/internal/domain/chat"
	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mutualPair(t *testing.T, graph *social.Graph, a, b string) {
	t.Helper()
	_, err := graph.Follow(a, b)
	require.NoError(t, err)
	_, err = graph.Follow(b, a)
	require.NoError(t, err)
}

func newChannel(t *testing.T) (*chat.Channel, *social.Graph, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	graph := social.NewGraph(db)
	return chat.NewChannel(db, graph), graph, db
}

func TestSendRequiresMutualFollow(t *testing.T) {
	channel, graph, _ := newChannel(t)

	_, err := channel.Send("alice", "bob", "hi")
	assert.ErrorIs(t, err, chat.ErrNotMutual)

	// One direction is not enough.
	_, err = graph.Follow("alice", "bob")
	require.NoError(t, err)
	_, err = channel.Send("alice", "bob", "hi")
	assert.ErrorIs(t, err, chat.ErrNotMutual)

	_, err = graph.Follow("bob", "alice")
	require.NoError(t, err)
	msg, err := channel.Send("alice", "bob", "hi")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)
	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "bob", msg.Receiver)
}

func TestSendRejectsBlankContent(t *testing.T) {
	channel, graph, _ := newChannel(t)
	mutualPair(t, graph, "alice", "bob")

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := channel.Send("alice", "bob", content)
		assert.ErrorIs(t, err, chat.ErrEmptyContent)
	}

	msg, err := channel.Send("alice", "bob", "  hello  ")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content, "content is trimmed")
}

func TestHistoryIsSymmetric(t *testing.T) {
	channel, graph, _ := newChannel(t)
	mutualPair(t, graph, "alice", "bob")

	_, err := channel.Send("alice", "bob", "hi")
	require.NoError(t, err)
	_, err = channel.Send("bob", "alice", "hey")
	require.NoError(t, err)

	for _, viewer := range []string{"alice", "bob"} {
		msgs, err := channel.History(viewer, other(viewer), 10)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, "hi", msgs[0].Content)
		assert.Equal(t, "hey", msgs[1].Content)
	}
}

func other(viewer string) string {
	if viewer == "alice" {
		return "bob"
	}
	return "alice"
}

func TestHistoryOrdersByTimestampThenID(t *testing.T) {
	channel, graph, db := newChannel(t)
	mutualPair(t, graph, "alice", "bob")

	// Three messages sharing one timestamp, inserted out of content order:
	// id must break the tie deterministically.
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for _, content := range []string{"first", "second", "third"} {
		require.NoError(t, db.Create(&chat.Message{
			Sender: "alice", Receiver: "bob", Content: content, CreatedAt: at,
		}).Error)
	}

	msgs, err := channel.History("alice", "bob", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Content)
	assert.Equal(t, "second", msgs[1].Content)
	assert.Equal(t, "third", msgs[2].Content)
	assert.Less(t, msgs[0].ID, msgs[1].ID)
	assert.Less(t, msgs[1].ID, msgs[2].ID)
}

func TestHistoryKeepsMostRecentAscending(t *testing.T) {
	channel, graph, db := newChannel(t)
	mutualPair(t, graph, "alice", "bob")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, db.Create(&chat.Message{
			Sender: "alice", Receiver: "bob", Content: content,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}).Error)
	}

	msgs, err := channel.History("alice", "bob", 2)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "four", msgs[0].Content)
	assert.Equal(t, "five", msgs[1].Content)
}

func TestBrokenMutualityRevokesHistory(t *testing.T) {
	channel, graph, _ := newChannel(t)
	mutualPair(t, graph, "alice", "bob")

	msg, err := channel.Send("alice", "bob", "hi")
	require.NoError(t, err)
	assert.NotZero(t, msg.ID)

	msgs, err := channel.History("alice", "bob", 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Content)

	// bob walks away: no new sends, and history closes for both sides.
	require.NoError(t, graph.Unfollow("bob", "alice"))

	_, err = channel.Send("alice", "bob", "hi again")
	assert.ErrorIs(t, err, chat.ErrNotMutual)
	_, err = channel.History("alice", "bob", 10)
	assert.ErrorIs(t, err, chat.ErrNotMutual)
	_, err = channel.History("bob", "alice", 10)
	assert.ErrorIs(t, err, chat.ErrNotMutual)
}

func TestContactsListsMutualsOnly(t *testing.T) {
	channel, graph, _ := newChannel(t)
	mutualPair(t, graph, "alice", "zoe")
	mutualPair(t, graph, "alice", "bob")
	_, err := graph.Follow("alice", "carol")
	require.NoError(t, err)

	contacts, err := channel.Contacts("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "zoe"}, contacts)
}
