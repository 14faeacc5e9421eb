package client

import (
	"context"

	"github.com/BruksfildServices01/client-registry/internal/models"
)

// Repository is the clients store. Every method runs a single statement
// and commits it. Methods returning an int64 report the number of rows
// affected; an unknown id affects zero rows and is not an error.
type Repository interface {
	// -------- Schema --------
	EnsureSchema(ctx context.Context) error

	// -------- Client --------
	AddClient(
		ctx context.Context,
		in NewClient,
	) (*models.Client, error)

	GetClient(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	UpdateClient(
		ctx context.Context,
		id uint,
		patch Patch,
	) (int64, error)

	DeleteClient(
		ctx context.Context,
		id uint,
	) (int64, error)

	// -------- Phones --------
	AddPhone(
		ctx context.Context,
		id uint,
		phone string,
	) (int64, error)

	DeletePhone(
		ctx context.Context,
		id uint,
		phone string,
	) (int64, error)

	// -------- Search --------
	FindClients(
		ctx context.Context,
		filter Filter,
	) ([]models.Client, error)
}
