package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/client-registry/internal/domain/client"
	"github.com/BruksfildServices01/client-registry/internal/httperr"
	"github.com/BruksfildServices01/client-registry/internal/models"
)

// statement is one SQL statement gorm would have sent.
type statement struct {
	SQL  string
	Vars []any
}

// sqlRecorder is a gorm logger that keeps the raw SQL and bind variables
// of every statement instead of printing them.
type sqlRecorder struct {
	logger.Interface

	mu    sync.Mutex
	stmts []statement
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	fc()
}

func (r *sqlRecorder) ParamsFilter(_ context.Context, sql string, params ...any) (string, []any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stmts = append(r.stmts, statement{SQL: sql, Vars: params})
	return sql, params
}

func (r *sqlRecorder) statements() []statement {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]statement(nil), r.stmts...)
}

// newDryRunRepo builds a repository whose statements are rendered but
// never sent, so no database is needed. The DSN points at a port nothing
// listens on: any statement that opens a connection fails the test.
func newDryRunRepo(t *testing.T) (*ClientGormRepository, *sqlRecorder) {
	t.Helper()

	rec := &sqlRecorder{Interface: logger.Discard}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 port=1 user=test dbname=test sslmode=disable connect_timeout=1",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 rec,
	})
	require.NoError(t, err)

	return NewClientGormRepository(db), rec
}

func only(t *testing.T, rec *sqlRecorder) statement {
	t.Helper()

	stmts := rec.statements()
	require.Len(t, stmts, 1, "expected exactly one statement")
	return stmts[0]
}

func TestEnsureSchemaSQL(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	require.NoError(t, repo.EnsureSchema(context.Background()))

	st := only(t, rec)
	assert.Contains(t, st.SQL, "CREATE TABLE IF NOT EXISTS clients")
	assert.Contains(t, st.SQL, "id SERIAL PRIMARY KEY")
	assert.Contains(t, st.SQL, "phone TEXT[]")
}

func TestAddClientSQL(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.AddClient(context.Background(), domain.NewClient{
		FirstName: models.Text("John"),
		LastName:  models.Text("Doe"),
		Email:     models.Text("john.doe@example.com"),
	})
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `INSERT INTO "clients"`)
	assert.Contains(t, st.SQL, `RETURNING "id"`)
	require.NotEmpty(t, st.Vars)
	assert.Equal(t, models.PhoneList{}, st.Vars[len(st.Vars)-1], "absent phones are stored as an empty array")
}

func TestAddPhoneSQL(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.AddPhone(context.Background(), 7, "9876543210")
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `UPDATE "clients" SET "phone"=array_append(phone, $1::text)`)
	assert.Contains(t, st.SQL, "WHERE id = $2")
	assert.Equal(t, []any{"9876543210", uint(7)}, st.Vars)
}

func TestDeletePhoneSQL(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.DeletePhone(context.Background(), 7, "1234567890")
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `SET "phone"=array_remove(phone, $1::text)`)
	assert.Equal(t, []any{"1234567890", uint(7)}, st.Vars)
}

func TestUpdateClientWritesOnlySuppliedFields(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.UpdateClient(context.Background(), 7, domain.Patch{
		FirstName: domain.Some("Jane"),
		Email:     domain.Some(""),
	})
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `UPDATE "clients" SET`)
	assert.Contains(t, st.SQL, `"first_name"=`)
	assert.Contains(t, st.SQL, `"email"=`)
	assert.NotContains(t, st.SQL, `"last_name"`)
	assert.NotContains(t, st.SQL, `"phone"`)
	assert.ElementsMatch(t, []any{"Jane", "", uint(7)}, st.Vars)
}

func TestUpdateClientRejectsEmptyPatch(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	n, err := repo.UpdateClient(context.Background(), 7, domain.Patch{})

	require.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	assert.True(t, httperr.IsBusiness(err, domain.CodeNoFieldsToUpdate))
	assert.Zero(t, n)
	assert.Empty(t, rec.statements(), "nothing may reach the store")
}

func TestDeleteClientSQL(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.DeleteClient(context.Background(), 3)
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `DELETE FROM "clients" WHERE id = $1`)
	assert.Equal(t, []any{uint(3)}, st.Vars)
}

func TestFindClientsIncludesOnlySuppliedFilters(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	_, err := repo.FindClients(context.Background(), domain.Filter{
		LastName: domain.Some("Smith"),
		Phone:    domain.Some("555"),
	})
	require.NoError(t, err)

	st := only(t, rec)
	assert.Contains(t, st.SQL, `FROM "clients" WHERE last_name = $1 OR $2::text = ANY(phone)`)
	assert.Contains(t, st.SQL, "ORDER BY id ASC")
	assert.NotContains(t, st.SQL, "first_name")
	assert.NotContains(t, st.SQL, "email")
	assert.Equal(t, []any{"Smith", "555"}, st.Vars)
}

func TestFindClientsWithoutFiltersSkipsQuery(t *testing.T) {
	repo, rec := newDryRunRepo(t)

	clients, err := repo.FindClients(context.Background(), domain.Filter{})
	require.NoError(t, err)

	assert.NotNil(t, clients)
	assert.Empty(t, clients)
	assert.Empty(t, rec.statements())
}
