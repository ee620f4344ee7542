package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/fuikk/fuikk/core/stats"
	"github.com/fuikk/fuikk/internal/iocache"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cacheInput() statsInput {
	raw := schema.NewRawAnswerSet()
	raw.Set(generalEN, []string{"Good", "OK"})
	return statsInput{
		course:        schema.Course{Code: "INF1000", Name: "Intro", Semester: "H2020"},
		raw:           raw,
		participation: schema.Participation{Answered: 2, Invited: 4},
		scales:        schema.Scales{generalEN: {Order: []string{"Bad", "OK", "Good"}}},
	}
}

func cacheContext(store *iocache.MockCacheStore) context.Context {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetStatsStore").Return(store)
	return contextWithCacheManager(context.Background(), mgr)
}

func TestCachedGenerateMissStores(t *testing.T) {
	in := cacheInput()
	key, err := generateCacheKey(in)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", key).Return(nil, 0, int64(0), errors.New("miss"))
	store.On("Set", key, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

	result, cached := cachedGenerate(cacheContext(store), stats.NewGenerator(nil), in)
	require.NotNil(t, result)
	assert.False(t, cached)
	assert.InDelta(t, 0.5, result.AnswerPercentage/100, 1e-9)
	store.AssertExpectations(t)
}

func TestCachedGenerateHit(t *testing.T) {
	in := cacheInput()
	key, err := generateCacheKey(in)
	require.NoError(t, err)

	want := stats.NewGenerator(nil).Generate(in.course, in.raw, in.participation, in.scales)
	data, err := json.Marshal(want)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", key).Return(data, currentCacheVersion, time.Now().Unix(), nil)

	result, cached := cachedGenerate(cacheContext(store), stats.NewGenerator(nil), in)
	require.NotNil(t, result)
	assert.True(t, cached)
	assert.Equal(t, want.Course, result.Course)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCachedGenerateStale(t *testing.T) {
	in := cacheInput()
	key, err := generateCacheKey(in)
	require.NoError(t, err)

	store := &iocache.MockCacheStore{}
	store.On("Get", key).Return([]byte(`{}`), currentCacheVersion, time.Now().Add(-2*cacheMaxAge).Unix(), nil)
	store.On("Set", key, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64")).Return(nil)

	_, cached := cachedGenerate(cacheContext(store), stats.NewGenerator(nil), in)
	assert.False(t, cached)
	store.AssertCalled(t, "Set", key, mock.Anything, currentCacheVersion, mock.AnythingOfType("int64"))
}

func TestCachedGenerateWithoutManager(t *testing.T) {
	result, cached := cachedGenerate(context.Background(), stats.NewGenerator(nil), cacheInput())
	require.NotNil(t, result)
	assert.False(t, cached)
}

func TestGenerateCacheKeyChangesWithInputs(t *testing.T) {
	a := cacheInput()
	b := cacheInput()
	b.participation.Invited = 5

	keyA, err := generateCacheKey(a)
	require.NoError(t, err)
	keyB, err := generateCacheKey(b)
	require.NoError(t, err)
	assert.NotEqual(t, keyA, keyB)
	assert.Len(t, keyA, 64)
}
