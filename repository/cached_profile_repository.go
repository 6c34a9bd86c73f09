package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"loan-decision/domain"
)

const (
	profileKeyPrefix    = "loan:profile:"
	financialsKeyPrefix = "loan:financials:"
)

// CachedProfileRepository serves profile lookups from a cache in front of
// another ProfileRepository. Misses and not-found results are not cached.
type CachedProfileRepository struct {
	next   ProfileRepository
	cache  CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedProfileRepository(
	next ProfileRepository,
	cache CacheRepository,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedProfileRepository {
	return &CachedProfileRepository{next: next, cache: cache, ttl: ttl, logger: logger}
}

func (r *CachedProfileRepository) GetProfile(ctx context.Context, customerID string) (domain.CustomerProfile, error) {
	var profile domain.CustomerProfile
	if r.lookup(ctx, profileKeyPrefix+customerID, &profile) {
		return profile, nil
	}

	profile, err := r.next.GetProfile(ctx, customerID)
	if err != nil {
		return domain.CustomerProfile{}, err
	}
	r.store(ctx, profileKeyPrefix+customerID, profile)
	return profile, nil
}

func (r *CachedProfileRepository) GetFinancials(ctx context.Context, customerID string) (domain.FinancialSnapshot, error) {
	var fin domain.FinancialSnapshot
	if r.lookup(ctx, financialsKeyPrefix+customerID, &fin) {
		return fin, nil
	}

	fin, err := r.next.GetFinancials(ctx, customerID)
	if err != nil {
		return domain.FinancialSnapshot{}, err
	}
	r.store(ctx, financialsKeyPrefix+customerID, fin)
	return fin, nil
}

func (r *CachedProfileRepository) lookup(ctx context.Context, key string, dst any) bool {
	raw, ok := r.cache.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		r.logger.WarnContext(ctx, "discarding corrupt cache entry", "key", key, "error", err)
		return false
	}
	return true
}

// store is best effort; a failed write only costs a later cache miss.
func (r *CachedProfileRepository) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		r.logger.WarnContext(ctx, "failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.cache.Set(ctx, key, string(raw), r.ttl); err != nil {
		r.logger.WarnContext(ctx, "failed to write cache entry", "key", key, "error", err)
	}
}
