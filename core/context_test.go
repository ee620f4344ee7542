package core

import (
	"context"
	"sync"
	"testing"

	"github.com/fuikk/fuikk/internal/iocache"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	mgr := &iocache.MockCacheManager{}
	ctx := contextWithCacheManager(context.Background(), mgr)
	ctx = withRunID(ctx, 12345)
	ctx = withSemester(ctx, "H2020")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			runID, ok := getRunID(ctx)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", i)
			assert.Equal(t, int64(12345), runID)
			assert.Equal(t, "H2020", semesterFromContext(ctx))
			assert.Same(t, mgr, cacheManagerFromContext(ctx))
		})
	}
	wg.Wait()
}

// TestContextDefaults tests the zero values of an empty context.
func TestContextDefaults(t *testing.T) {
	ctx := context.Background()

	runID, ok := getRunID(ctx)
	assert.False(t, ok)
	assert.Equal(t, int64(0), runID)
	assert.Empty(t, semesterFromContext(ctx))
	assert.Nil(t, cacheManagerFromContext(ctx))
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	base := context.Background()
	ctx1 := withRunID(base, 1)
	ctx2 := withRunID(base, 2)

	id1, _ := getRunID(ctx1)
	id2, _ := getRunID(ctx2)
	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)

	_, ok := getRunID(base)
	assert.False(t, ok)
}
