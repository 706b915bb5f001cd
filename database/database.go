package database

import (
	"fmt"
	"log"

	"artfeed-backend/internal/domain/chat"
	"artfeed-backend/internal/domain/engagement"
	"artfeed-backend/internal/domain/posts"
	"artfeed-backend/internal/domain/social"
	"artfeed-backend/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Init opens the Postgres handle and migrates all domain models. The handle
// is passed into the domain stores at construction; nothing reads it through
// a package-level variable.
func Init(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the stores map to their Conflict errors.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("✅ Connected and migrated successfully")
	return db, nil
}

// Migrate creates the five relations. The composite unique indexes on
// follows(follower, artist) and likes(username, post_id) are load-bearing:
// idempotent follow/like inserts rely on them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&social.Follow{},
		&posts.Post{},
		&engagement.Like{},
		&chat.Message{},
	); err != nil {
		return fmt.Errorf("AutoMigrate error: %w", err)
	}
	return nil
}
