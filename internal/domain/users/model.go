package users

import "time"

// User is an artisan identity. Username is the canonical key the rest of the
// system joins on: it is trimmed and lowercased once, here, at signup.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"not null;uniqueIndex:idx_users_username" json:"username"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Phone        string `json:"phone,omitempty"`
	Bio          string `json:"bio,omitempty"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
