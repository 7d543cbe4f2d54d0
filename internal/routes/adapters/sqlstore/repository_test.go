package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/routes/core/domain"
)

func newSQLiteRepo(t *testing.T) *RouteRepository {
	t.Helper()
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "routes.db")

	_, err := database.Migrate(ctx, database.SQLite, dsn, database.Up)
	require.NoError(t, err)

	db, err := database.Open(ctx, database.SQLite, dsn, database.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRouteRepository(database.NewSQLDB(db), database.SQLite)
	require.NoError(t, err)
	return repo
}

func newRoute(d time.Time, airline, destination string) *domain.Route {
	r := &domain.Route{
		ID:             uuid.New(),
		Date:           d,
		FlightCount:    1,
		PassengerCount: 150,
		Delays:         0.25,
		Airline:        airline,
		Origin:         "FRA",
		Destination:    destination,
	}
	r.DedupeKey = d.Format(time.RFC3339) + "|" + airline + "|FRA|" + destination
	return r
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRouteRepository_RejectsPostgres(t *testing.T) {
	_, err := NewRouteRepository(nil, database.Postgres)
	assert.Error(t, err)
}

func TestRouteRepository_InsertIsIdempotent(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	r := newRoute(day(2014, time.January, 1), "LH", "JFK")
	created, err := repo.InsertRoute(ctx, r)
	require.NoError(t, err)
	assert.True(t, created)

	dup := newRoute(day(2014, time.January, 1), "LH", "JFK")
	created, err = repo.InsertRoute(ctx, dup)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRouteRepository_FetchRoutesRangeAndFilters(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, r := range []*domain.Route{
		newRoute(day(2013, time.December, 31), "LH", "JFK"),
		newRoute(day(2014, time.January, 1), "LH", "JFK"),
		newRoute(day(2014, time.January, 15), "BA", "LHR"),
		newRoute(day(2014, time.January, 20), "AF", "JFK"),
		newRoute(day(2014, time.February, 1), "LH", "JFK"),
	} {
		_, err := repo.InsertRoute(ctx, r)
		require.NoError(t, err)
	}

	jan := domain.RouteQuery{From: day(2014, time.January, 1), To: day(2014, time.February, 1)}

	all, err := repo.FetchRoutes(ctx, jan)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, day(2014, time.January, 1), all[0].Date)
	assert.Equal(t, "BA", all[1].Airline)
	assert.Equal(t, 150.0, all[1].PassengerCount)
	assert.Equal(t, 0.25, all[1].Delays)

	q := jan
	q.Airlines = []string{"LH", "AF"}
	filtered, err := repo.FetchRoutes(ctx, q)
	require.NoError(t, err)
	assert.Len(t, filtered, 2)

	q.Destinations = []string{"LHR"}
	none, err := repo.FetchRoutes(ctx, q)
	require.NoError(t, err)
	assert.Empty(t, none)

	q = jan
	q.Destinations = []string{"JFK"}
	byDest, err := repo.FetchRoutes(ctx, q)
	require.NoError(t, err)
	assert.Len(t, byDest, 2)
}

func TestRouteRepository_ExistsBetween(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.InsertRoute(ctx, newRoute(day(2014, time.March, 10), "LH", "JFK"))
	require.NoError(t, err)

	ok, err := repo.ExistsBetween(ctx, day(2014, time.March, 1), day(2014, time.April, 1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsBetween(ctx, day(2014, time.April, 1), day(2014, time.May, 1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRouteRepository_FractionalBoundsKeepHalfOpenRange(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	noon := time.Date(2014, time.January, 1, 12, 0, 0, 0, time.UTC)
	_, err := repo.InsertRoute(ctx, newRoute(noon, "LH", "JFK"))
	require.NoError(t, err)

	half := noon.Add(500 * time.Millisecond)

	after, err := repo.FetchRoutes(ctx, domain.RouteQuery{From: half, To: noon.Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, after)

	before, err := repo.FetchRoutes(ctx, domain.RouteQuery{From: noon.Add(-time.Hour), To: half})
	require.NoError(t, err)
	assert.Len(t, before, 1)

	ok, err := repo.ExistsBetween(ctx, half, noon.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCeilUnix(t *testing.T) {
	noon := time.Date(2014, time.January, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, noon.Unix(), ceilUnix(noon))
	assert.Equal(t, noon.Unix()+1, ceilUnix(noon.Add(time.Nanosecond)))
	assert.Equal(t, int64(0), ceilUnix(time.Unix(-1, 500_000_000)))
}
