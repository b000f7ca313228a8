package profile

import "errors"

var (
	ErrNoImage       = errors.New("no image uploaded")
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
)
