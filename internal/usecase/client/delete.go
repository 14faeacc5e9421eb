package client

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
)

type DeleteClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.ClientCache
}

func NewDeleteClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.ClientCache,
) *DeleteClient {
	return &DeleteClient{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *DeleteClient) Execute(ctx context.Context, id uint) error {
	n, err := uc.repo.DeleteClient(ctx, id)
	if err != nil {
		return err
	}
	if err := requireAffected(n); err != nil {
		return err
	}

	afterMutation(ctx, uc.cache, uc.audit, id, audit.ActionClientDeleted, nil)
	return nil
}
