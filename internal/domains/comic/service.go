package comic

import "context"

// Service orchestrates the collection operations. Outcomes are a closed set:
// a payload on success, ErrNotOwner for authorization failures,
// ErrComicNotFound for missing records, and anything else is a store
// failure. Handlers must map each case explicitly.
type Service interface {
	// List returns one fixed-size page. Any authenticated user may list
	// every record.
	List(ctx context.Context, req PageRequest) ([]Comic, error)

	// Create inserts a record owned by the requester.
	Create(ctx context.Context, owner string, req NewComicRequest) (*Comic, error)

	// Get returns a record by id. Any authenticated user may read any record.
	Get(ctx context.Context, id int64) (*Comic, error)

	// Replace overwrites all mutable fields of a record the requester owns.
	Replace(ctx context.Context, id int64, owner string, req ReplaceComicRequest) (*Comic, error)

	// Update overwrites the supplied subset of fields of a record the
	// requester owns.
	Update(ctx context.Context, id int64, owner string, req UpdateComicRequest) (*Comic, error)

	// Delete removes a record the requester owns.
	Delete(ctx context.Context, id int64, owner string) error
}
