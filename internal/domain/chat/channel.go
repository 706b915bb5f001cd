package chat

import (
	"fmt"
	"strings"

	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"

	"gorm.io/gorm"
)

const DefaultHistoryLimit = 50

// Channel is pairwise messaging gated by mutual follow status. The gate is
// re-evaluated on every send and every history read: breaking the mutual
// follow immediately cuts off both directions, past messages included.
type Channel struct {
	db    *gorm.DB
	graph *social.Graph
}

func NewChannel(db *gorm.DB, graph *social.Graph) *Channel {
	return &Channel{db: db, graph: graph}
}

// Send persists a message from sender to receiver. Content is trimmed and
// must be non-empty; the pair must be mutual followers.
func (ch *Channel) Send(sender, receiver, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	mutual, err := ch.graph.IsMutual(sender, receiver)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, ErrNotMutual
	}

	msg := Message{
		Sender:   users.Canonical(sender),
		Receiver: users.Canonical(receiver),
		Content:  content,
	}
	if err := ch.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	return &msg, nil
}

// History returns the conversation between user and other, both directions,
// ascending by (created_at, id). When more than limit messages exist, the
// most recent limit are kept, still in ascending order.
func (ch *Channel) History(user, other string, limit int) ([]Message, error) {
	mutual, err := ch.graph.IsMutual(user, other)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return nil, ErrNotMutual
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	a, b := users.Canonical(user), users.Canonical(other)
	var msgs []Message
	err = ch.db.Where(
		"(LOWER(sender) = ? AND LOWER(receiver) = ?) OR (LOWER(sender) = ? AND LOWER(receiver) = ?)",
		a, b, b, a).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	// Queried newest-first to grab the tail of the conversation; flip back
	// to ascending for the caller.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// Contacts lists the identities this user may chat with: exactly the mutual
// follows, ordered case-insensitively.
func (ch *Channel) Contacts(user string) ([]string, error) {
	return ch.graph.Contacts(user)
}
