package trips

import "context"

// Store persists seeds. Implementations must be safe for concurrent use.
type Store interface {
	Create(ctx context.Context, seed *Seed) error
	Get(ctx context.Context, id string) (*Seed, error)
	// List returns every seed, newest first.
	List(ctx context.Context) ([]*Seed, error)
	Update(ctx context.Context, seed *Seed) error
	Delete(ctx context.Context, id string) error
}
