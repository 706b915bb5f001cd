package social

import (
	"fmt"

	"artfeed-backend/internal/domain/users"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Graph maintains the directed follow relation and answers the relationship
// queries the feed and the chat gate depend on.
type Graph struct {
	db *gorm.DB
}

func NewGraph(db *gorm.DB) *Graph {
	return &Graph{db: db}
}

// Follow inserts the (follower, artist) edge. Empty names and self-follows
// are rejected with a false return rather than an error; a repeat follow is
// absorbed by the unique index and still reports success.
func (g *Graph) Follow(follower, artist string) (bool, error) {
	follower = users.Canonical(follower)
	artist = users.Canonical(artist)
	if follower == "" || artist == "" || follower == artist {
		return false, nil
	}

	err := g.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&Follow{Follower: follower, Artist: artist}).Error
	if err != nil {
		return false, fmt.Errorf("follow: %w", err)
	}
	return true, nil
}

// Unfollow removes the edge if present. Absence is not an error.
func (g *Graph) Unfollow(follower, artist string) error {
	err := g.db.Where("follower = ? AND artist = ?",
		users.Canonical(follower), users.Canonical(artist)).Delete(&Follow{}).Error
	if err != nil {
		return fmt.Errorf("unfollow: %w", err)
	}
	return nil
}

func (g *Graph) IsFollowing(follower, artist string) (bool, error) {
	var count int64
	err := g.db.Model(&Follow{}).
		Where("follower = ? AND artist = ?", users.Canonical(follower), users.Canonical(artist)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("is following: %w", err)
	}
	return count > 0, nil
}

// IsMutual reports whether both directed edges exist. This is the sole
// authorization gate for messaging and is re-evaluated on every call.
func (g *Graph) IsMutual(a, b string) (bool, error) {
	if users.Canonical(a) == "" || users.Canonical(b) == "" {
		return false, nil
	}
	ab, err := g.IsFollowing(a, b)
	if err != nil || !ab {
		return false, err
	}
	return g.IsFollowing(b, a)
}

// FollowedArtists lists the artists the user follows, ordered by name.
func (g *Graph) FollowedArtists(user string) ([]string, error) {
	var artists []string
	err := g.db.Model(&Follow{}).
		Where("follower = ?", users.Canonical(user)).
		Order("artist ASC").
		Pluck("artist", &artists).Error
	if err != nil {
		return nil, fmt.Errorf("followed artists: %w", err)
	}
	return artists, nil
}

// Contacts returns every identity with a mutual-follow relationship to the
// user, ordered case-insensitively. Stored keys are already lowercase, but
// the join stays case-insensitive because follows written before
// canonicalization may carry mixed case.
func (g *Graph) Contacts(user string) ([]string, error) {
	var contacts []string
	err := g.db.Raw(`
		SELECT f1.artist
		FROM follows f1
		JOIN follows f2
		  ON LOWER(f2.follower) = LOWER(f1.artist) AND LOWER(f2.artist) = LOWER(f1.follower)
		WHERE LOWER(f1.follower) = ?
		ORDER BY LOWER(f1.artist)`,
		users.Canonical(user)).Scan(&contacts).Error
	if err != nil {
		return nil, fmt.Errorf("contacts: %w", err)
	}
	return contacts, nil
}
