package client

import (
	"context"
	"log"

	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

// ======================================================
// GET (read-through cache)
// ======================================================

type GetClient struct {
	repo  domain.Repository
	cache cache.ClientCache
}

func NewGetClient(repo domain.Repository, cache cache.ClientCache) *GetClient {
	return &GetClient{repo: repo, cache: cache}
}

func (uc *GetClient) Execute(ctx context.Context, id uint) (*models.Client, error) {
	cached, ok, err := uc.cache.Get(ctx, id)
	if err != nil {
		log.Printf("cache get client %d: %v", id, err)
	}
	if ok {
		return cached, nil
	}

	// Taken before the load: a mutation that commits after it moves the
	// generation and the Set below is skipped.
	gen, genErr := uc.cache.Generation(ctx, id)
	if genErr != nil {
		log.Printf("cache generation client %d: %v", id, genErr)
	}

	client, err := uc.repo.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if genErr == nil {
		if err := uc.cache.Set(ctx, client, gen); err != nil {
			log.Printf("cache set client %d: %v", id, err)
		}
	}

	return client, nil
}

// ======================================================
// FIND
// ======================================================

type FindClients struct {
	repo domain.Repository
}

func NewFindClients(repo domain.Repository) *FindClients {
	return &FindClients{repo: repo}
}

func (uc *FindClients) Execute(ctx context.Context, filter domain.Filter) ([]models.Client, error) {
	return uc.repo.FindClients(ctx, filter)
}
