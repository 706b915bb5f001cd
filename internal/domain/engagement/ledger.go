package engagement

import (
	"fmt"

	"artfeed-backend/internal/domain/posts"
	"artfeed-backend/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Ledger tracks likes. Counts are always derived from the rows, never kept
// in a counter column, so there is no second invariant to maintain under
// concurrent like/unlike.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Like records the (user, post) pair; a repeat like is a no-op.
func (l *Ledger) Like(user string, postID uint) error {
	err := l.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Like{Username: users.Canonical(user), PostID: postID}).Error
	if err != nil {
		return fmt.Errorf("like: %w", err)
	}
	return nil
}

// Unlike removes the pair if present.
func (l *Ledger) Unlike(user string, postID uint) error {
	err := l.db.Where("username = ? AND post_id = ?", users.Canonical(user), postID).
		Delete(&Like{}).Error
	if err != nil {
		return fmt.Errorf("unlike: %w", err)
	}
	return nil
}

// Count returns the number of distinct likers of a post.
func (l *Ledger) Count(postID uint) (int64, error) {
	var count int64
	if err := l.db.Model(&Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

// LikedPostIDs lists the ids of every post the user has liked.
func (l *Ledger) LikedPostIDs(user string) ([]uint, error) {
	var ids []uint
	err := l.db.Model(&Like{}).Where("username = ?", users.Canonical(user)).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("liked post ids: %w", err)
	}
	return ids, nil
}

// LikedPosts lists the posts the user has liked, most recently liked first.
func (l *Ledger) LikedPosts(user string) ([]posts.Summary, error) {
	var out []posts.Summary
	err := l.db.Raw(`
		SELECT p.id, p.image_path, p.title, p.author, p.price, p.category, p.created_at,
		       (SELECT COUNT(*) FROM likes l2 WHERE l2.post_id = p.id) AS like_count
		FROM posts p
		JOIN likes l ON l.post_id = p.id
		WHERE l.username = ?
		ORDER BY l.created_at DESC`,
		users.Canonical(user)).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("liked posts: %w", err)
	}
	return out, nil
}
