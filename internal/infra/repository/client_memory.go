package repository

import (
	"context"
	"sort"
	"sync"

	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

// ClientMemoryRepository keeps clients in process memory with the same
// observable behavior as ClientGormRepository. Returned clients are
// copies.
type ClientMemoryRepository struct {
	mu      sync.Mutex
	nextID  uint
	clients map[uint]models.Client
}

func NewClientMemoryRepository() *ClientMemoryRepository {
	return &ClientMemoryRepository{
		nextID:  1,
		clients: make(map[uint]models.Client),
	}
}

func (r *ClientMemoryRepository) EnsureSchema(context.Context) error {
	return nil
}

func (r *ClientMemoryRepository) AddClient(_ context.Context, in domain.NewClient) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := cloneClient(*in.Model())
	c.ID = r.nextID
	r.nextID++
	r.clients[c.ID] = c

	out := cloneClient(c)
	return &out, nil
}

func (r *ClientMemoryRepository) GetClient(_ context.Context, id uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	out := cloneClient(c)
	return &out, nil
}

func (r *ClientMemoryRepository) UpdateClient(_ context.Context, id uint, patch domain.Patch) (int64, error) {
	if len(patch.Assignments()) == 0 {
		return 0, domain.ErrNoFieldsToUpdate
	}

	return r.mutate(id, func(c *models.Client) {
		patch.Apply(c)
	}), nil
}

func (r *ClientMemoryRepository) DeleteClient(_ context.Context, id uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return 0, nil
	}
	delete(r.clients, id)
	return 1, nil
}

func (r *ClientMemoryRepository) AddPhone(_ context.Context, id uint, phone string) (int64, error) {
	return r.mutate(id, func(c *models.Client) {
		c.Phone = append(c.Phone, phone)
	}), nil
}

func (r *ClientMemoryRepository) DeletePhone(_ context.Context, id uint, phone string) (int64, error) {
	return r.mutate(id, func(c *models.Client) {
		c.Phone = c.Phone.Without(phone)
	}), nil
}

func (r *ClientMemoryRepository) FindClients(_ context.Context, filter domain.Filter) ([]models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []models.Client{}
	for _, c := range r.clients {
		if filter.Matches(c) {
			out = append(out, cloneClient(c))
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ClientMemoryRepository) mutate(id uint, fn func(*models.Client)) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return 0
	}

	c = cloneClient(c)
	fn(&c)
	r.clients[id] = c
	return 1
}

func cloneClient(c models.Client) models.Client {
	cp := func(s *string) *string {
		if s == nil {
			return nil
		}
		v := *s
		return &v
	}

	out := models.Client{
		ID:        c.ID,
		FirstName: cp(c.FirstName),
		LastName:  cp(c.LastName),
		Email:     cp(c.Email),
	}
	if c.Phone != nil {
		out.Phone = append(models.PhoneList{}, c.Phone...)
	}
	return out
}

var _ domain.Repository = (*ClientMemoryRepository)(nil)
