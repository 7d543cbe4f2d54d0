package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-analytics-service/internal/airlines/core/domain"
	"route-analytics-service/internal/airlines/core/ports"
	"route-analytics-service/internal/platform/database"
)

func newSQLiteRepo(t *testing.T) *AirlineRepository {
	t.Helper()
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "airlines.db")

	_, err := database.Migrate(ctx, database.SQLite, dsn, database.Up)
	require.NoError(t, err)

	db, err := database.Open(ctx, database.SQLite, dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewAirlineRepository(database.NewSQLDB(db), database.SQLite)
	require.NoError(t, err)
	return repo
}

func TestNewAirlineRepository_RejectsPostgres(t *testing.T) {
	_, err := NewAirlineRepository(nil, database.Postgres)
	assert.Error(t, err)
}

func TestAirlineRepository_SaveRenamesExisting(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAirline(ctx, &domain.Airline{ID: "LH", Name: "Lufthansa"}))
	require.NoError(t, repo.SaveAirline(ctx, &domain.Airline{ID: "LH", Name: "Deutsche Lufthansa"}))

	got, err := repo.GetAirline(ctx, "LH")
	require.NoError(t, err)
	assert.Equal(t, "Deutsche Lufthansa", got.Name)

	all, err := repo.ListAirlines(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAirlineRepository_GetMissing(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.GetAirline(context.Background(), "XX")
	assert.ErrorIs(t, err, ports.ErrAirlineNotFound)
}

func TestAirlineRepository_ListAndExisting(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, a := range []domain.Airline{
		{ID: "LH", Name: "Lufthansa"},
		{ID: "BA", Name: "British Airways"},
		{ID: "AF", Name: "Air France"},
	} {
		require.NoError(t, repo.SaveAirline(ctx, &a))
	}

	all, err := repo.ListAirlines(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "AF", all[0].ID)
	assert.Equal(t, "LH", all[2].ID)

	found, err := repo.ExistingAirlines(ctx, []string{"LH", "XX", "BA"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LH", "BA"}, found)

	found, err = repo.ExistingAirlines(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestAirlineRepository_Delete(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveAirline(ctx, &domain.Airline{ID: "LH", Name: "Lufthansa"}))
	require.NoError(t, repo.DeleteAirline(ctx, "LH"))
	assert.ErrorIs(t, repo.DeleteAirline(ctx, "LH"), ports.ErrAirlineNotFound)
}
