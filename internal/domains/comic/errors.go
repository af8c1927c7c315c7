package comic

import "errors"

var (
	// ErrComicNotFound means no record matches the requested id.
	ErrComicNotFound = errors.New("comic not found")

	// ErrNotOwner means the record exists but belongs to another user.
	ErrNotOwner = errors.New("you do not own this item")
)
