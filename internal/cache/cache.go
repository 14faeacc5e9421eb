package cache

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/models"
)

// ClientCache holds single-client lookups keyed by id. A miss is
// (nil, false, nil).
//
// Every Invalidate bumps the id's generation. A reader takes the
// generation before loading the row and passes it to Set, which stores
// nothing if a mutation invalidated the id in between.
type ClientCache interface {
	Get(ctx context.Context, id uint) (*models.Client, bool, error)
	Generation(ctx context.Context, id uint) (int64, error)
	Set(ctx context.Context, client *models.Client, generation int64) error
	Invalidate(ctx context.Context, id uint) error
}

type NoopCache struct{}

func (NoopCache) Get(context.Context, uint) (*models.Client, bool, error) { return nil, false, nil }
func (NoopCache) Generation(context.Context, uint) (int64, error)        { return 0, nil }
func (NoopCache) Set(context.Context, *models.Client, int64) error       { return nil }
func (NoopCache) Invalidate(context.Context, uint) error                 { return nil }

var _ ClientCache = NoopCache{}
