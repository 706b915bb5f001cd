package users

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Canonical normalizes an identity key. Every component compares usernames
// through this form; the store applies it once at signup so stored keys are
// already canonical.
func Canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Create registers a new identity. The unique indexes on username and email
// enforce uniqueness; a constraint hit comes back as ErrAlreadyExists.
func (s *Store) Create(username, email, password, phone, bio string) (*User, error) {
	username = Canonical(username)
	if username == "" {
		return nil, ErrInvalidUsername
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		PasswordHash: string(hashed),
		Phone:        phone,
		Bio:          bio,
		Role:         "user",
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Verify checks a credential pair. The caller never learns whether the
// username or the password was wrong.
func (s *Store) Verify(username, password string) (*User, error) {
	user, err := s.ByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *Store) ByUsername(username string) (*User, error) {
	var user User
	err := s.db.Where("username = ?", Canonical(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UpdateProfile mutates the profile fields. Password is only rehashed when a
// new one is supplied.
func (s *Store) UpdateProfile(username, email, phone, bio, newPassword string) error {
	updates := map[string]interface{}{
		"email": strings.TrimSpace(email),
		"phone": phone,
		"bio":   bio,
	}
	if newPassword != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = string(hashed)
	}

	res := s.db.Model(&User{}).Where("username = ?", Canonical(username)).Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// BiosFor returns bios keyed by canonical username for the given names.
// Missing users are simply absent from the map.
func (s *Store) BiosFor(names []string) (map[string]string, error) {
	bios := make(map[string]string, len(names))
	if len(names) == 0 {
		return bios, nil
	}

	canonical := make([]string, 0, len(names))
	for _, n := range names {
		canonical = append(canonical, Canonical(n))
	}

	var rows []User
	if err := s.db.Select("username", "bio").Where("username IN ?", canonical).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load bios: %w", err)
	}
	for _, u := range rows {
		bios[u.Username] = u.Bio
	}
	return bios, nil
}
