package client

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/models"
	"github.com/BruksfildServices01/client-registry/internal/validators"
)

// ======================================================
// USE CASE
// ======================================================

type CreateClient struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	cache  cache.ClientCache
	emails validators.EmailPolicy
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.ClientCache,
	emails validators.EmailPolicy,
) *CreateClient {
	return &CreateClient{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		emails: emails,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateClient) Execute(
	ctx context.Context,
	in domain.NewClient,
) (*models.Client, error) {

	if in.Email != nil {
		if err := uc.emails.Validate(ctx, *in.Email); err != nil {
			return nil, err
		}
	}

	client, err := uc.repo.AddClient(ctx, in)
	if err != nil {
		return nil, err
	}

	afterMutation(ctx, uc.cache, uc.audit, client.ID, audit.ActionClientCreated, nil)

	return client, nil
}
