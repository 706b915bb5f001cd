package chat

import "errors"

var (
	ErrNotMutual    = errors.New("users must follow each other to chat")
	ErrEmptyContent = errors.New("message content is empty")
)
