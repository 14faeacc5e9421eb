package cli

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/httperr"
	"github.com/BruksfildServices01/client-registry/internal/infra/repository"
	"github.com/BruksfildServices01/client-registry/internal/models"
	"github.com/BruksfildServices01/client-registry/internal/validators"
)

type actionSink struct {
	mu      sync.Mutex
	actions []string
}

func (s *actionSink) Log(_ context.Context, ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, ev.Action)
	return nil
}

type entryCache struct {
	mu          sync.Mutex
	entries     map[uint]models.Client
	generations map[uint]int64
}

func (c *entryCache) Get(_ context.Context, id uint) (*models.Client, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &v, true, nil
}

func (c *entryCache) Generation(_ context.Context, id uint) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[id], nil
}

func (c *entryCache) Set(_ context.Context, client *models.Client, gen int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[client.ID] == gen {
		c.entries[client.ID] = *client
	}
	return nil
}

func (c *entryCache) Invalidate(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
	c.generations[id]++
	return nil
}

type memoryStore struct {
	repo  *repository.ClientMemoryRepository
	cache *entryCache
	sink  *actionSink
}

// useMemoryStore points every command at an in-memory repository with a
// cache and an audit sink the test can inspect.
func useMemoryStore(t *testing.T) *memoryStore {
	t.Helper()

	m := &memoryStore{
		repo: repository.NewClientMemoryRepository(),
		cache: &entryCache{
			entries:     map[uint]models.Client{},
			generations: map[uint]int64{},
		},
		sink: &actionSink{},
	}

	prev := openStore
	openStore = func(context.Context) (*store, error) {
		dispatcher := audit.NewDispatcher(m.sink, 8)
		return &store{
			repo:    m.repo,
			clients: newClientService(m.repo, m.cache, dispatcher, validators.EmailPolicy{}),
			close:   dispatcher.Close,
		}, nil
	}
	t.Cleanup(func() { openStore = prev })

	return m
}

// resetFlags clears flag values left behind by an earlier Execute.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := Execute(context.Background())
	return out.String(), err
}

func (m *memoryStore) seed(t *testing.T) *models.Client {
	t.Helper()

	c, err := m.repo.AddClient(context.Background(), domain.NewClient{
		FirstName: models.Text("John"),
		Phones:    []string{"1"},
	})
	require.NoError(t, err)
	require.NoError(t, m.cache.Set(context.Background(), c, 0))
	return c
}

func TestDeleteCommandDropsCachedClient(t *testing.T) {
	m := useMemoryStore(t)
	c := m.seed(t)

	out, err := run(t, "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "client 1 deleted\n", out)

	_, ok, _ := m.cache.Get(context.Background(), c.ID)
	assert.False(t, ok, "deleted client must not stay cached")
	assert.Equal(t, []string{audit.ActionClientDeleted}, m.sink.actions)
}

func TestWriteCommandsAudit(t *testing.T) {
	m := useMemoryStore(t)
	m.seed(t)

	_, err := run(t, "add-phone", "1", "2")
	require.NoError(t, err)
	_, err = run(t, "remove-phone", "1", "1")
	require.NoError(t, err)
	_, err = run(t, "update", "1", "--last-name", "Doe")
	require.NoError(t, err)

	assert.Equal(t, []string{
		audit.ActionClientPhoneAdded,
		audit.ActionClientPhoneRemoved,
		audit.ActionClientUpdated,
	}, m.sink.actions)

	_, ok, _ := m.cache.Get(context.Background(), 1)
	assert.False(t, ok)

	got, err := m.repo.GetClient(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.PhoneList{"2"}, got.Phone)
	assert.Equal(t, "Doe", *got.LastName)
}

func TestAddCommandValidatesEmail(t *testing.T) {
	m := useMemoryStore(t)

	_, err := run(t, "add", "--first-name", "John", "--email", "not-an-email")
	assert.True(t, httperr.IsBusiness(err, validators.CodeInvalidEmail), "got %v", err)

	found, _ := m.repo.FindClients(context.Background(), domain.Filter{FirstName: domain.Some("John")})
	assert.Empty(t, found, "invalid client must not be stored")

	out, err := run(t, "add", "--first-name", "John", "--email", "john@example.com")
	require.NoError(t, err)
	assert.Equal(t, "client 1 created\n", out)
	assert.Equal(t, []string{audit.ActionClientCreated}, m.sink.actions)
}

func TestUpdateCommandValidatesEmail(t *testing.T) {
	m := useMemoryStore(t)
	m.seed(t)

	_, err := run(t, "update", "1", "--email", "Jane <jane@example.com>")
	assert.True(t, httperr.IsBusiness(err, validators.CodeInvalidEmail), "got %v", err)
	assert.Empty(t, m.sink.actions)
}

func TestWriteOnMissingClient(t *testing.T) {
	useMemoryStore(t)

	for _, args := range [][]string{
		{"delete", "99"},
		{"add-phone", "99", "1"},
		{"remove-phone", "99", "1"},
		{"update", "99", "--first-name", "x"},
	} {
		out, err := run(t, args...)
		require.NoError(t, err, args)
		assert.Equal(t, "no client with id 99\n", out, args)
	}
}
