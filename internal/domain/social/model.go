package social

import "time"

// Follow is a directed edge: follower watches artist. Both sides are stored
// as canonical lowercase usernames; the composite unique index makes repeat
// follows a no-op at the storage layer.
type Follow struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Follower string `gorm:"not null;uniqueIndex:idx_follows_pair,priority:1" json:"follower"`
	Artist   string `gorm:"not null;index;uniqueIndex:idx_follows_pair,priority:2" json:"artist"`

	CreatedAt time.Time `json:"created_at"`
}
