// Package profiles resolves numerology profiles for workers and records the
// evaluations they produce.
package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"numerology-workers/internal/common/database"
	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/common/metrics"
	"numerology-workers/internal/numerology"
)

const cacheKeyPrefix = "numerology:profile:"

// Lookup sources, used as the profile_lookups_total label.
const (
	SourceInline   = "inline"
	SourceCache    = "cache"
	SourceDatabase = "database"
	SourceMissing  = "missing"
)

// ErrNotFound is returned by Get when the user has no stored profile.
var ErrNotFound = errors.New("numerology profile not found")

const (
	selectProfileQuery = `SELECT expression_number, destiny_number, life_path_number FROM user_numerology_profiles WHERE user_id = $1`
	upsertProfileQuery = `INSERT INTO user_numerology_profiles (user_id, expression_number, destiny_number, life_path_number)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
    expression_number = EXCLUDED.expression_number,
    destiny_number = EXCLUDED.destiny_number,
    life_path_number = EXCLUDED.life_path_number,
    updated_at = now()`
)

// Store reads profiles from Postgres through an optional Redis cache.
type Store struct {
	db     *database.PostgresClient
	cache  *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

// NewStore builds a Store. A nil cache or a zero ttl disables caching.
func NewStore(db *database.PostgresClient, cache *database.RedisClient, ttl time.Duration, log logger.Logger) *Store {
	if ttl <= 0 {
		cache = nil
	}
	return &Store{db: db, cache: cache, ttl: ttl, logger: log}
}

func cacheKey(userID string) string {
	return cacheKeyPrefix + userID
}

// Get loads the profile stored for userID. Cache failures are logged and the
// database is consulted instead.
func (s *Store) Get(ctx context.Context, userID string) (*numerology.Profile, error) {
	if p, ok := s.fromCache(ctx, userID); ok {
		metrics.ProfileLookups.WithLabelValues(SourceCache).Inc()
		return p, nil
	}

	var p numerology.Profile
	err := s.db.QueryRow(ctx, selectProfileQuery, userID).Scan(&p.Expression, &p.Destiny, &p.Path)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.ProfileLookups.WithLabelValues(SourceMissing).Inc()
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query profile for %s: %w", userID, err)
	}
	metrics.ProfileLookups.WithLabelValues(SourceDatabase).Inc()

	s.toCache(ctx, userID, &p)
	return &p, nil
}

// Save upserts the profile for userID and drops any cached copy.
func (s *Store) Save(ctx context.Context, userID string, p numerology.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := s.db.Exec(ctx, upsertProfileQuery, userID, p.Expression, p.Destiny, p.Path); err != nil {
		return fmt.Errorf("save profile for %s: %w", userID, err)
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey(userID)); err != nil {
			s.logger.Warn("failed to invalidate cached profile", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}
	return nil
}

func (s *Store) fromCache(ctx context.Context, userID string) (*numerology.Profile, bool) {
	if s.cache == nil {
		return nil, false
	}
	val, err := s.cache.Get(ctx, cacheKey(userID))
	if err != nil {
		if !errors.Is(err, database.ErrCacheMiss) {
			s.logger.Warn("profile cache read failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return nil, false
	}
	var p numerology.Profile
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		s.logger.Debug("discarding unreadable cached profile", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil, false
	}
	return &p, true
}

func (s *Store) toCache(ctx context.Context, userID string, p *numerology.Profile) {
	if s.cache == nil {
		return
	}
	data, _ := json.Marshal(p)
	if err := s.cache.Set(ctx, cacheKey(userID), data, s.ttl); err != nil {
		s.logger.Warn("profile cache write failed", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
	}
}
