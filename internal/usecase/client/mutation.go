package client

import (
	"context"
	"log"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
)

// afterMutation drops the cached copy of the client and records the
// change. Neither step can fail the caller.
func afterMutation(
	ctx context.Context,
	c cache.ClientCache,
	d *audit.Dispatcher,
	id uint,
	action string,
	metadata any,
) {
	if err := c.Invalidate(ctx, id); err != nil {
		log.Printf("cache invalidate client %d: %v", id, err)
	}

	d.Dispatch(audit.Event{
		Action:   action,
		Entity:   audit.EntityClient,
		EntityID: &id,
		Metadata: metadata,
	})
}

func requireAffected(n int64) error {
	if n == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
