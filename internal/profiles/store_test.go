package profiles

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"numerology-workers/internal/common/config"
	"numerology-workers/internal/common/database"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/numerology"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*database.PostgresClient, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewPostgresFromDB(db), mock
}

func setupRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func profileRows(e, d, p int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"expression_number", "destiny_number", "life_path_number"}).AddRow(e, d, p)
}

func TestStore_Get_CacheMissLoadsAndCaches(t *testing.T) {
	db, mock := newMockDB(t)
	cache, mr := setupRedis(t)
	store := NewStore(db, cache, 5*time.Minute, logger.NewTestLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).
		WithArgs("user-123").
		WillReturnRows(profileRows(5, 7, 22))

	before := testutil.ToFloat64(metrics.ProfileLookups.WithLabelValues(SourceDatabase))
	p, err := store.Get(context.Background(), "user-123")
	require.NoError(t, err)
	assert.Equal(t, &numerology.Profile{Expression: 5, Destiny: 7, Path: 22}, p)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProfileLookups.WithLabelValues(SourceDatabase)))

	cached, err := mr.Get("numerology:profile:user-123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"expression":5,"destiny":7,"path":22}`, cached)
	assert.Equal(t, 5*time.Minute, mr.TTL("numerology:profile:user-123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_CacheHitSkipsDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	cache, mr := setupRedis(t)
	store := NewStore(db, cache, time.Minute, logger.NewTestLogger(t))

	data, _ := json.Marshal(numerology.Profile{Expression: 3, Destiny: 6, Path: 9})
	require.NoError(t, mr.Set("numerology:profile:cached", string(data)))

	p, err := store.Get(context.Background(), "cached")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Destiny)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_CorruptCacheFallsBackToDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	cache, mr := setupRedis(t)
	store := NewStore(db, cache, time.Minute, logger.NewTestLogger(t))

	require.NoError(t, mr.Set("numerology:profile:u-9", "not-json"))
	mock.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).
		WithArgs("u-9").
		WillReturnRows(profileRows(1, 2, 3))

	p, err := store.Get(context.Background(), "u-9")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Expression)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Get_CacheErrorFallsBackToDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	rdb, redisMock := redismock.NewClientMock()
	store := NewStore(db, database.NewRedisFromCmdable(rdb), time.Minute, logger.NewTestLogger(t))

	redisMock.ExpectGet("numerology:profile:u-1").SetErr(assert.AnError)
	mock.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).
		WithArgs("u-1").
		WillReturnRows(profileRows(8, 8, 8))
	data, _ := json.Marshal(numerology.Profile{Expression: 8, Destiny: 8, Path: 8})
	redisMock.ExpectSet("numerology:profile:u-1", data, time.Minute).SetVal("OK")

	p, err := store.Get(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Path)
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestStore_Get_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"expression_number", "destiny_number", "life_path_number"}))

	_, err := store.Get(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Get_DatabaseError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewTestLogger(t))

	mock.ExpectQuery(regexp.QuoteMeta(selectProfileQuery)).
		WithArgs("u-1").
		WillReturnError(assert.AnError)

	_, err := store.Get(context.Background(), "u-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewStore_ZeroTTLDisablesCache(t *testing.T) {
	db, _ := newMockDB(t)
	cache, _ := setupRedis(t)
	store := NewStore(db, cache, 0, logger.NewNoOpLogger())
	assert.Nil(t, store.cache)
}

func TestStore_Save(t *testing.T) {
	db, mock := newMockDB(t)
	cache, mr := setupRedis(t)
	store := NewStore(db, cache, time.Minute, logger.NewTestLogger(t))
	require.NoError(t, mr.Set("numerology:profile:u-2", `{"expression":1,"destiny":1,"path":1}`))

	mock.ExpectExec(regexp.QuoteMeta(upsertProfileQuery)).
		WithArgs("u-2", 11, 4, 6).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.Save(context.Background(), "u-2", numerology.Profile{Expression: 11, Destiny: 4, Path: 6})
	require.NoError(t, err)
	assert.False(t, mr.Exists("numerology:profile:u-2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Save_RejectsIncompleteProfile(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db, nil, 0, logger.NewNoOpLogger())

	err := store.Save(context.Background(), "u-3", numerology.Profile{Expression: 5, Destiny: 0, Path: 3})
	assert.ErrorIs(t, err, numerology.ErrProfileIncomplete)
	assert.NoError(t, mock.ExpectationsWereMet())
}
