package users

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyExists      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("invalid username")
)
