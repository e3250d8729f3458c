package profile

import (
	"context"
	"errors"
)

// ErrProfileNotFound conditional update matched no row
var ErrProfileNotFound = errors.New("profile not found")

// Store row-level access to the profiles table. GetByID returns (nil, nil)
// when the id is absent so callers can distinguish absence from store
// failure, the reconciliation layer above deliberately collapses the two
type Store interface {
	GetAll(ctx context.Context) ([]*Profile, error)
	GetByID(ctx context.Context, id string) (*Profile, error)
	Insert(ctx context.Context, p *Profile) error
	UpdateProgress(ctx context.Context, id string, progress Progress) error
}
