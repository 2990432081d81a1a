package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memrepo "github.com/privacyweave/backend/internal/repositories/memory"
	"github.com/privacyweave/backend/internal/utils"
)

// fakeCache is a TTL-less map cache for exercising the caching paths.
type fakeCache struct {
	data map[string][]byte
	sets int
	dels int
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.data[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
	}
	c.dels++
	return nil
}

func TestListActiveUsesCache(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	require.NoError(t, store.SeedJobListings(ctx))

	c := newFakeCache()
	svc := NewListingService(store.JobListings(), c, testLogger())

	first, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, first, 3)
	assert.Equal(t, 1, c.sets)

	// second read is served from the cache
	second, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Title, second[i].Title)
	}
	assert.Equal(t, 1, c.sets)
}

func TestCreateListingInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	c := newFakeCache()
	svc := NewListingService(store.JobListings(), c, testLogger())

	_, err := svc.ListActive(ctx)
	require.NoError(t, err)

	l, err := svc.Create(ctx, ListingInput{Title: "Privacy Engineer", Description: "Build privacy tooling"})
	require.NoError(t, err)
	assert.True(t, l.IsActive)
	assert.Equal(t, 1, c.dels)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Privacy Engineer", active[0].Title)
}

func TestCreateListingInactive(t *testing.T) {
	ctx := context.Background()
	store := memrepo.NewStore()
	svc := NewListingService(store.JobListings(), newFakeCache(), testLogger())

	inactive := false
	l, err := svc.Create(ctx, ListingInput{Title: "Hidden", Description: "d", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, l.IsActive)

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestGetListingNotFound(t *testing.T) {
	svc := NewListingService(memrepo.NewStore().JobListings(), newFakeCache(), testLogger())

	_, err := svc.Get(context.Background(), 123)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
