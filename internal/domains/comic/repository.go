package comic

import "context"

// Repository is the record-store contract. The store guarantees durability
// and primary-key uniqueness; it stamps created_at/updated_at itself.
//
// The *Owned operations are conditional: the mutation applies only to the
// row matching both id and owner, in a single statement, so ownership checks
// cannot race with concurrent mutations. They return ErrComicNotFound when
// no row matched; callers that need to distinguish "gone" from "not yours"
// re-read the row.
type Repository interface {
	List(ctx context.Context, q ListQuery) ([]Comic, error)
	FindByID(ctx context.Context, id int64) (*Comic, error)
	Insert(ctx context.Context, owner string, fields ReplaceComicRequest) (*Comic, error)
	ReplaceOwned(ctx context.Context, id int64, owner string, fields ReplaceComicRequest) (*Comic, error)
	UpdateOwned(ctx context.Context, id int64, owner string, patch UpdateComicRequest) (*Comic, error)
	DeleteOwned(ctx context.Context, id int64, owner string) error
}
