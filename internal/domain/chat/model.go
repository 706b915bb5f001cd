package chat

import "time"

// Message is a write-once direct message between two identities. Ids are
// surrogate and monotonically increasing; together with created_at they give
// a deterministic order even when timestamps collide.
type Message struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Sender   string `gorm:"not null;index" json:"sender"`
	Receiver string `gorm:"not null;index" json:"receiver"`
	Content  string `gorm:"not null" json:"content"`

	CreatedAt time.Time `json:"created_at"`
}
