package posts

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Narrative lifecycle. A post is created pending and becomes ready exactly
// once, either from the generation provider or from the local fallback.
const (
	NarrativePending = "pending"
	NarrativeReady   = "ready"
)

// ImageList is an ordered set of image references persisted as a JSON array,
// matching the original single TEXT column rather than a join table.
type ImageList []string

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported image list type %T", value)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(raw, l)
}

// Post is an artwork post. Author is the canonical username but is stored as
// free text, not a foreign key: queries joining back to users always compare
// case-insensitively. The narrative fields stay empty until the enricher
// fills them in.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Author    string    `gorm:"not null;index" json:"artist"`
	ImagePath string    `json:"image,omitempty"`
	Images    ImageList `gorm:"type:text" json:"images,omitempty"`

	Title     string `json:"title"`
	IdeaText  string `json:"idea_text,omitempty"`
	Story     string `json:"story"`
	Purpose   string `json:"purpose"`
	ArtistBio string `json:"artist_bio"`

	Price    string `json:"price,omitempty"`
	Contact  string `json:"contact,omitempty"`
	Category string `gorm:"index" json:"category,omitempty"`

	NarrativeStatus   string `gorm:"type:varchar(10);not null;default:'pending';index" json:"narrative_status"`
	NarrativeAttempts int    `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// Summary is the feed row shape: no narrative body, derived like count.
type Summary struct {
	ID        uint      `json:"id"`
	ImagePath string    `json:"image,omitempty"`
	Title     string    `json:"title"`
	Author    string    `json:"artist"`
	Price     string    `json:"price,omitempty"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int64     `json:"like_count"`
}

// Detail is the post page shape: the full post plus the author's email
// resolved through the case-insensitive users join.
type Detail struct {
	Post
	AuthorEmail string `json:"email,omitempty"`
	LikeCount   int64  `json:"like_count"`
}
