package client

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/validators"
)

type UpdateClient struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	cache  cache.ClientCache
	emails validators.EmailPolicy
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.ClientCache,
	emails validators.EmailPolicy,
) *UpdateClient {
	return &UpdateClient{
		repo:   repo,
		audit:  audit,
		cache:  cache,
		emails: emails,
	}
}

func (uc *UpdateClient) Execute(
	ctx context.Context,
	id uint,
	patch domain.Patch,
) error {

	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return domain.ErrNoFieldsToUpdate
	}

	if email, ok := patch.Email.Get(); ok {
		if err := uc.emails.Validate(ctx, email); err != nil {
			return err
		}
	}

	n, err := uc.repo.UpdateClient(ctx, id, patch)
	if err != nil {
		return err
	}
	if err := requireAffected(n); err != nil {
		return err
	}

	fields := make([]string, 0, len(assignments))
	for _, a := range assignments {
		fields = append(fields, a.Column)
	}

	afterMutation(ctx, uc.cache, uc.audit, id, audit.ActionClientUpdated, map[string]any{
		"fields": fields,
	})

	return nil
}
