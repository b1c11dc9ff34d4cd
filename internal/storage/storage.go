package storage

import (
	"context"

	"github.com/SteveYuOWO/token-tide/internal/model"
)

// PairStore persists resolved pair identities.
type PairStore interface {
	Exists(ctx context.Context, pair model.PairIdentity) (bool, error)
	FindByIdentifier(ctx context.Context, key string) (model.PairIdentity, bool, error)
	Append(ctx context.Context, pair model.PairIdentity) (bool, error)
	Remove(ctx context.Context, pair model.PairIdentity) (bool, error)
	Clear(ctx context.Context) error
	Pairs(ctx context.Context) ([]model.PairIdentity, error)
}
