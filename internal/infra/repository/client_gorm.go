package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

const clientsSchema = `
CREATE TABLE IF NOT EXISTS clients (
	id SERIAL PRIMARY KEY,
	first_name TEXT,
	last_name TEXT,
	email TEXT,
	phone TEXT[]
)`

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// --------------------------------------------------
// Schema
// --------------------------------------------------

func (r *ClientGormRepository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Exec(clientsSchema).Error; err != nil {
		return fmt.Errorf("failed to create clients table: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *ClientGormRepository) AddClient(
	ctx context.Context,
	in domain.NewClient,
) (*models.Client, error) {

	client := in.Model()
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (r *ClientGormRepository) GetClient(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&client).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	return &client, nil
}

// UpdateClient writes only the fields supplied in patch. An empty patch
// is rejected before any statement is sent.
func (r *ClientGormRepository) UpdateClient(
	ctx context.Context,
	id uint,
	patch domain.Patch,
) (int64, error) {

	assignments := patch.Assignments()
	if len(assignments) == 0 {
		return 0, domain.ErrNoFieldsToUpdate
	}

	values := make(map[string]any, len(assignments))
	for _, a := range assignments {
		values[a.Column] = a.Value
	}

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(values)

	if res.Error != nil {
		return 0, fmt.Errorf("failed to update client: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *ClientGormRepository) DeleteClient(
	ctx context.Context,
	id uint,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Client{})

	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete client: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Phones
// --------------------------------------------------

func (r *ClientGormRepository) AddPhone(
	ctx context.Context,
	id uint,
	phone string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("phone", gorm.Expr("array_append(phone, ?::text)", phone))

	if res.Error != nil {
		return 0, fmt.Errorf("failed to add phone: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// DeletePhone removes every occurrence of phone from the client's list.
func (r *ClientGormRepository) DeletePhone(
	ctx context.Context,
	id uint,
	phone string,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Update("phone", gorm.Expr("array_remove(phone, ?::text)", phone))

	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete phone: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// --------------------------------------------------
// Search
// --------------------------------------------------

// FindClients returns the clients matching any supplied filter. With no
// filter supplied nothing can match, so no query is sent.
func (r *ClientGormRepository) FindClients(
	ctx context.Context,
	filter domain.Filter,
) ([]models.Client, error) {

	conds := filter.Conditions()
	if len(conds) == 0 {
		return []models.Client{}, nil
	}

	where := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		where = append(where, c.SQL)
		args = append(args, c.Arg)
	}

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where(strings.Join(where, " OR "), args...).
		Order("id ASC").
		Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("failed to find clients: %w", err)
	}

	return clients, nil
}

// Compile-time check
var _ domain.Repository = (*ClientGormRepository)(nil)
