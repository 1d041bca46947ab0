package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func style(s AttachmentStyle) *AttachmentStyle { return &s }

func sampleProfile(id string) *Profile {
	birth := time.Date(1994, 5, 1, 0, 0, 0, 0, time.UTC)
	return &Profile{
		ID:                id,
		BirthDate:         &birth,
		Location:          &Coordinates{Latitude: 40.7128, Longitude: -74.0060},
		Interests:         []string{"hiking", "jazz"},
		PersonalityTraits: map[string]float64{"openness": 70},
		AttachmentStyle:   style(AttachmentSecure),
	}
}

// countingStore records how many ids reach the backing store
type countingStore struct {
	mu     sync.Mutex
	inner  Store
	calls  int
	loaded []string
	err    error
}

func (c *countingStore) GetProfile(ctx context.Context, id string) (*Profile, error) {
	return c.inner.GetProfile(ctx, id)
}

func (c *countingStore) GetProfilesByIDs(ctx context.Context, ids []string) (map[string]*Profile, error) {
	c.mu.Lock()
	c.calls++
	c.loaded = append(c.loaded, ids...)
	c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.inner.GetProfilesByIDs(ctx, ids)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Put(sampleProfile("a"))

	p, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"hiking", "jazz"}, p.Interests)

	// Returned values are copies
	p.Interests[0] = "changed"
	p.PersonalityTraits["openness"] = 1
	again, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "hiking", again.Interests[0])
	assert.Equal(t, 70.0, again.PersonalityTraits["openness"])

	_, err = store.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	batch, err := store.GetProfilesByIDs(ctx, []string{"a", "missing"})
	require.NoError(t, err)
	assert.Len(t, batch, 1)
	assert.Contains(t, batch, "a")
}

func newCachedStore(t *testing.T, ttl time.Duration) (*CachedStore, *countingStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	mem := NewMemoryStore()
	mem.Put(sampleProfile("a"))
	mem.Put(sampleProfile("b"))
	backing := &countingStore{inner: mem}

	return NewCachedStore(backing, client, ttl), backing, mr
}

func TestCachedStoreReadThrough(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t, time.Minute)

	first, err := store.GetProfilesByIDs(ctx, []string{"a", "b", "ghost"})
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, backing.calls)
	assert.True(t, mr.Exists(cacheKey("a")))
	assert.False(t, mr.Exists(cacheKey("ghost")))
	assert.Equal(t, time.Minute, mr.TTL(cacheKey("a")))

	second, err := store.GetProfilesByIDs(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, backing.calls, "second read should be served from redis")
	assert.Equal(t, first["a"].Interests, second["a"].Interests)
	assert.Equal(t, *first["a"].AttachmentStyle, *second["a"].AttachmentStyle)
	assert.True(t, first["a"].BirthDate.Equal(*second["a"].BirthDate))
}

func TestCachedStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t, time.Minute)

	_, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls)
}

func TestCachedStoreZeroTTLStillExpires(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t, 0)

	_, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, defaultCacheTTL, mr.TTL(cacheKey("a")))

	mr.FastForward(defaultCacheTTL + time.Second)

	_, err = store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls)
}

func TestCachedStoreInvalidate(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t, time.Minute)

	_, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Invalidate(ctx, "a"))
	assert.False(t, mr.Exists(cacheKey("a")))

	_, err = store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, backing.calls)
}

func TestCachedStoreRedisDown(t *testing.T) {
	ctx := context.Background()
	store, backing, mr := newCachedStore(t, time.Minute)
	mr.Close()

	p, err := store.GetProfile(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", p.ID)
	assert.Equal(t, 1, backing.calls)
}

func TestCachedStoreBackingError(t *testing.T) {
	ctx := context.Background()
	store, backing, _ := newCachedStore(t, time.Minute)
	backing.err = errors.New("connection refused")

	_, err := store.GetProfilesByIDs(ctx, []string{"a"})
	assert.Error(t, err)

	_, err = store.GetProfile(ctx, "ghost")
	assert.Error(t, err)
}

func TestPostgresRepositoryGetProfilesByIDs(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	repo := NewPostgresRepository(sqlx.NewDb(raw, "postgres"))

	birth := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "birth_date", "latitude", "longitude", "bio", "attachment_style"}).
			AddRow("a", birth, 40.0, -74.0, "hi", "secure").
			AddRow("b", nil, 34.0, nil, nil, "unknown"))
	mock.ExpectQuery("FROM profile_interests").
		WillReturnRows(sqlmock.NewRows([]string{"profile_id", "name"}).
			AddRow("a", "hiking").
			AddRow("a", "jazz").
			AddRow("b", "jazz"))
	mock.ExpectQuery("FROM personality_traits").
		WillReturnRows(sqlmock.NewRows([]string{"profile_id", "trait_name", "trait_value"}).
			AddRow("a", "openness", 80.0))

	profiles, err := repo.GetProfilesByIDs(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	a := profiles["a"]
	require.NotNil(t, a.Location)
	assert.Equal(t, 40.0, a.Location.Latitude)
	assert.Equal(t, []string{"hiking", "jazz"}, a.Interests)
	assert.Equal(t, 80.0, a.PersonalityTraits["openness"])
	require.NotNil(t, a.AttachmentStyle)
	assert.Equal(t, AttachmentSecure, *a.AttachmentStyle)

	b := profiles["b"]
	assert.Nil(t, b.Location, "half a location is no location")
	assert.Nil(t, b.BirthDate)
	assert.Nil(t, b.AttachmentStyle, "unknown styles are dropped")
	assert.Empty(t, b.PersonalityTraits)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetProfileNotFound(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	repo := NewPostgresRepository(sqlx.NewDb(raw, "postgres"))

	mock.ExpectQuery("FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "birth_date", "latitude", "longitude", "bio", "attachment_style"}))

	_, err = repo.GetProfile(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryQueryError(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	repo := NewPostgresRepository(sqlx.NewDb(raw, "postgres"))

	mock.ExpectQuery("FROM profiles").WillReturnError(errors.New("connection reset"))

	_, err = repo.GetProfilesByIDs(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load profiles")
}
