package posts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// FeedFilter narrows the feed. FollowedBy restricts to authors the given
// (canonical) user follows; Category matches exactly. Zero values mean no
// filtering.
type FeedFilter struct {
	FollowedBy string
	Category   string
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create persists a new post with empty narrative fields and a pending
// status; the enricher fills the text in later.
func (s *Store) Create(p *Post) error {
	if p.ImagePath == "" && len(p.Images) > 0 {
		p.ImagePath = p.Images[0]
	}
	p.NarrativeStatus = NarrativePending
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

const summaryColumns = `p.id, p.image_path, p.title, p.author, p.price, p.category, p.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count`

// Feed lists posts newest first. The follow filter compares the denormalized
// author text case-insensitively against the canonical follow edges, so a
// mixed-case legacy author still matches.
func (s *Store) Feed(filter FeedFilter) ([]Summary, error) {
	query := s.db.Table("posts p").Select(summaryColumns)
	if filter.FollowedBy != "" {
		query = query.Where(
			"LOWER(TRIM(p.author)) IN (SELECT artist FROM follows WHERE follower = ?)",
			filter.FollowedBy)
	}
	if filter.Category != "" {
		query = query.Where("p.category = ?", filter.Category)
	}

	var out []Summary
	if err := query.Order("p.created_at DESC, p.id DESC").Scan(&out).Error; err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return out, nil
}

// ByAuthor lists an artist's posts newest first, matching case-insensitively.
func (s *Store) ByAuthor(author string) ([]Summary, error) {
	var out []Summary
	err := s.db.Table("posts p").Select(summaryColumns).
		Where("LOWER(p.author) = LOWER(?)", author).
		Order("p.created_at DESC, p.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load author posts: %w", err)
	}
	return out, nil
}

// Detail loads the full post with the author's email and the derived like
// count. Images fall back to the primary image path for posts created before
// multi-image support.
func (s *Store) Detail(id uint) (*Detail, error) {
	var p Post
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	if len(p.Images) == 0 && p.ImagePath != "" {
		p.Images = ImageList{p.ImagePath}
	}

	d := Detail{Post: p}
	if err := s.db.Raw("SELECT email FROM users WHERE LOWER(username) = LOWER(?)", p.Author).
		Scan(&d.AuthorEmail).Error; err != nil {
		return nil, fmt.Errorf("resolve author email: %w", err)
	}
	if err := s.db.Raw("SELECT COUNT(*) FROM likes WHERE post_id = ?", id).
		Scan(&d.LikeCount).Error; err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &d, nil
}

// Latest returns the newest post, narrative included.
func (s *Store) Latest() (*Post, error) {
	var p Post
	err := s.db.Order("created_at DESC, id DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest post: %w", err)
	}
	return &p, nil
}

// NextPending returns the oldest post still waiting for narrative text, or
// nil when the outbox is drained.
func (s *Store) NextPending() (*Post, error) {
	var p Post
	err := s.db.Where("narrative_status = ?", NarrativePending).
		Order("created_at ASC, id ASC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pending post: %w", err)
	}
	return &p, nil
}

// BumpAttempts records a failed generation attempt.
func (s *Store) BumpAttempts(id uint) error {
	err := s.db.Model(&Post{}).Where("id = ?", id).
		UpdateColumn("narrative_attempts", gorm.Expr("narrative_attempts + 1")).Error
	if err != nil {
		return fmt.Errorf("bump attempts: %w", err)
	}
	return nil
}

// SetNarrative writes the generated text and marks the post ready. Posts are
// immutable afterwards; this is the single mutation in their lifecycle.
func (s *Store) SetNarrative(id uint, story, purpose, artistBio string) error {
	err := s.db.Model(&Post{}).Where("id = ?", id).Updates(map[string]interface{}{
		"story":            story,
		"purpose":          purpose,
		"artist_bio":       artistBio,
		"narrative_status": NarrativeReady,
	}).Error
	if err != nil {
		return fmt.Errorf("set narrative: %w", err)
	}
	return nil
}
