package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/client-registry/internal/audit"
	"github.com/BruksfildServices01/client-registry/internal/cache"
	"github.com/BruksfildServices01/client-registry/internal/config"
	dbpkg "github.com/BruksfildServices01/client-registry/internal/db"
	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/infra/repository"
	ucClient "github.com/BruksfildServices01/client-registry/internal/usecase/client"
	"github.com/BruksfildServices01/client-registry/internal/validators"
)

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "clientsctl",
	Short: "Manage client records in PostgreSQL",
	Long: `clientsctl manages the clients table: first name, last name, email
and an ordered list of phone numbers per client.

Every command runs against the database named by DATABASE_URL. Writes go
through the same path as the HTTP API: emails are validated, the cached
copy in REDIS_URL is dropped and the change is written to the audit log.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment variables from this file first")
}

// store is an open database handle with the clients repository and the
// use cases on top.
type store struct {
	db      *gorm.DB
	repo    domain.Repository
	clients clientService
	close   func()
}

type clientService struct {
	create      *ucClient.CreateClient
	update      *ucClient.UpdateClient
	addPhone    *ucClient.AddPhone
	removePhone *ucClient.RemovePhone
	delete      *ucClient.DeleteClient
	find        *ucClient.FindClients
}

func newClientService(
	repo domain.Repository,
	clientCache cache.ClientCache,
	dispatcher *audit.Dispatcher,
	emails validators.EmailPolicy,
) clientService {
	return clientService{
		create:      ucClient.NewCreateClient(repo, dispatcher, clientCache, emails),
		update:      ucClient.NewUpdateClient(repo, dispatcher, clientCache, emails),
		addPhone:    ucClient.NewAddPhone(repo, dispatcher, clientCache),
		removePhone: ucClient.NewRemovePhone(repo, dispatcher, clientCache),
		delete:      ucClient.NewDeleteClient(repo, dispatcher, clientCache),
		find:        ucClient.NewFindClients(repo),
	}
}

// openStore is swapped in tests.
var openStore = openDBStore

func openDBStore(ctx context.Context) (*store, error) {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	var clientCache cache.ClientCache = cache.NoopCache{}
	closeCache := func() {}
	if cfg.RedisURL != "" {
		rc, err := cache.Dial(ctx, cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			_ = dbpkg.Close(db)
			return nil, err
		}
		clientCache = rc
		closeCache = func() { _ = rc.Close() }
	}

	dispatcher := audit.NewDispatcher(audit.New(db), cfg.AuditQueue)
	repo := repository.NewClientGormRepository(db)

	return &store{
		db:      db,
		repo:    repo,
		clients: newClientService(repo, clientCache, dispatcher, validators.EmailPolicy{CheckDomain: cfg.EmailDomainCheck}),
		close: func() {
			// queued audit rows need the database still open
			dispatcher.Close()
			closeCache()
			_ = dbpkg.Close(db)
		},
	}, nil
}
