package demorequest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(id string, at time.Time) StoredRequest {
	return StoredRequest{DemoRequest: validRequest(), ID: id, CreatedAt: at}
}

func TestMemoryStoreSnapshotIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleRecord("DR-1-AAAA", time.Now())))

	snapshot, err := store.List(ctx)
	require.NoError(t, err)
	snapshot[0].CompanyName = "Mutated"

	require.NoError(t, store.Append(ctx, sampleRecord("DR-2-BBBB", time.Now())))
	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot, 1)
	assert.Len(t, again, 2)
	assert.Equal(t, "Acme", again[0].CompanyName)
}

func TestMemoryStoresAreIndependent(t *testing.T) {
	a, b := NewMemoryStore(), NewMemoryStore()
	require.NoError(t, a.Append(context.Background(), sampleRecord("DR-1-AAAA", time.Now())))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "")
	ctx := context.Background()
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.Append(ctx, sampleRecord("DR-1-AAAA", at)))
	require.NoError(t, store.Append(ctx, sampleRecord("DR-2-BBBB", at.Add(time.Minute))))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "DR-1-AAAA", records[0].ID)
	assert.Equal(t, "DR-2-BBBB", records[1].ID)
	assert.True(t, records[0].CreatedAt.Equal(at))
	assert.Equal(t, "jane@acme.com", records[1].Email)

	n, err := client.LLen(ctx, defaultRedisKey).Result()
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestRedisStoreCorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, "custom:key")
	require.NoError(t, client.RPush(context.Background(), "custom:key", "{not json").Err())

	_, err := store.List(context.Background())
	assert.Error(t, err)
}

var demoRequestColumns = []string{
	"id", "company_name", "industry", "company_size", "website",
	"full_name", "job_title", "email", "phone",
	"use_case", "challenges", "timeline",
	"preferred_date", "preferred_time", "additional_notes", "created_at",
}

func TestPostgresStoreAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := newPostgresStoreWithExec(mock)
	rec := sampleRecord("DR-1-AAAA", time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC))

	mock.ExpectExec("INSERT INTO demo_requests").
		WithArgs(rec.ID, "Acme", "technology", "1-50", "", "Jane Doe", "CTO", "jane@acme.com", "",
			"", "", "", "", "", "", rec.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Append(context.Background(), rec))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreAppendError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := newPostgresStoreWithExec(mock)
	mock.ExpectExec("INSERT INTO demo_requests").WillReturnError(errors.New("connection reset"))

	err = store.Append(context.Background(), sampleRecord("DR-1-AAAA", time.Now()))
	assert.ErrorContains(t, err, "insert failed")
}

func TestPostgresStoreList(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := newPostgresStoreWithExec(mock)
	at := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows(demoRequestColumns).
		AddRow("DR-1-AAAA", "Acme", "technology", "1-50", "", "Jane Doe", "CTO", "jane@acme.com", "",
			"", "", "", "2026-11-02", "14:00-15:00", "", at)
	mock.ExpectQuery("SELECT id, company_name").WillReturnRows(rows)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "DR-1-AAAA", records[0].ID)
	assert.Equal(t, "2026-11-02", records[0].PreferredDate)
	assert.True(t, records[0].CreatedAt.Equal(at))
	require.NoError(t, mock.ExpectationsWereMet())
}
