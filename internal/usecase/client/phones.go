package client

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
)

// ======================================================
// ADD PHONE
// ======================================================

type AddPhone struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.ClientCache
}

func NewAddPhone(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.ClientCache,
) *AddPhone {
	return &AddPhone{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *AddPhone) Execute(ctx context.Context, id uint, phone string) error {
	n, err := uc.repo.AddPhone(ctx, id, phone)
	if err != nil {
		return err
	}
	if err := requireAffected(n); err != nil {
		return err
	}

	afterMutation(ctx, uc.cache, uc.audit, id, audit.ActionClientPhoneAdded, map[string]any{
		"phone": phone,
	})
	return nil
}

// ======================================================
// REMOVE PHONE
// ======================================================

type RemovePhone struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.ClientCache
}

func NewRemovePhone(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.ClientCache,
) *RemovePhone {
	return &RemovePhone{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *RemovePhone) Execute(ctx context.Context, id uint, phone string) error {
	n, err := uc.repo.DeletePhone(ctx, id, phone)
	if err != nil {
		return err
	}
	if err := requireAffected(n); err != nil {
		return err
	}

	afterMutation(ctx, uc.cache, uc.audit, id, audit.ActionClientPhoneRemoved, map[string]any{
		"phone": phone,
	})
	return nil
}
