// internal/profile/cache.go
// Read-through redis cache in front of a profile Store.
// Redis failures fall back to the backing store.

package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/imadgeboyega/kiekky-matching/internal/common/logging"
)

const (
	cacheKeyPrefix  = "matching:profile:"
	defaultCacheTTL = 5 * time.Minute
)

// CachedStore caches profiles as JSON with a fixed TTL
type CachedStore struct {
	next  Store
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedStore wraps next. A non-positive ttl falls back to five minutes
// so entries always expire.
func NewCachedStore(next Store, client *redis.Client, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedStore{
		next:  next,
		redis: client,
		ttl:   ttl,
	}
}

func cacheKey(id string) string {
	return cacheKeyPrefix + id
}

func (s *CachedStore) GetProfile(ctx context.Context, id string) (*Profile, error) {
	profiles, err := s.GetProfilesByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	p, ok := profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *CachedStore) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	result := make(map[string]*Profile, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	missing := s.readCache(ctx, ids, result)
	if len(missing) == 0 {
		return result, nil
	}

	loaded, err := s.next.GetProfilesByIDs(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, p := range loaded {
		result[id] = p
	}

	s.writeCache(ctx, loaded)
	return result, nil
}

// readCache fills result from redis and returns the ids it could not serve
func (s *CachedStore) readCache(ctx context.Context, ids []string, result map[string]*Profile) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}

	values, err := s.redis.MGet(ctx, keys...).Result()
	if err != nil {
		cacheLookups.WithLabelValues("error").Add(float64(len(ids)))
		logging.Ctx(ctx).Warn().Err(err).Msg("profile cache read failed")
		return ids
	}

	var missing []string
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			cacheLookups.WithLabelValues("miss").Inc()
			missing = append(missing, ids[i])
			continue
		}

		var p Profile
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			cacheLookups.WithLabelValues("error").Inc()
			missing = append(missing, ids[i])
			continue
		}
		if p.PersonalityTraits == nil {
			p.PersonalityTraits = map[string]float64{}
		}

		cacheLookups.WithLabelValues("hit").Inc()
		result[ids[i]] = &p
	}
	return missing
}

func (s *CachedStore) writeCache(ctx context.Context, profiles map[string]*Profile) {
	if len(profiles) == 0 {
		return
	}

	pipe := s.redis.Pipeline()
	for id, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		pipe.Set(ctx, cacheKey(id), data, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		cacheWriteErrors.Inc()
		logging.Ctx(ctx).Warn().Err(err).Msg("profile cache write failed")
	}
}

// Invalidate drops cached entries, e.g. after the profile service reports an edit
func (s *CachedStore) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cacheKey(id)
	}
	return s.redis.Del(ctx, keys...).Err()
}
