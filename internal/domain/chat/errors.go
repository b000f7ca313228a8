package chat

import "errors"

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrNotMessageOwner = errors.New("not authorized to delete this message")
)
