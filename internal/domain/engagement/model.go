package engagement

import "time"

// Like is one user's like on one post. The composite unique index caps the
// pair at a single row, which is what makes like/unlike races safe.
type Like struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null;uniqueIndex:idx_likes_pair,priority:1" json:"username"`
	PostID   uint   `gorm:"not null;index;uniqueIndex:idx_likes_pair,priority:2" json:"post_id"`

	CreatedAt time.Time `json:"created_at"`
}
