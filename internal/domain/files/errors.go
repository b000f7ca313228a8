package files

import "errors"

var (
	ErrFileNotFound         = errors.New("file not found")
	ErrNotFileOwner         = errors.New("not authorized to delete this file")
	ErrTitleCategoryMissing = errors.New("title and category are required")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile            = errors.New("file is empty")
)
