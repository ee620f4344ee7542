package core

import (
	"context"

	"github.com/fuikk/fuikk/internal/contract"
)

// Context keys for pipeline options
type contextKey string

const (
	cacheManagerKey contextKey = "cacheManager"
	runIDKey        contextKey = "runID"
	semesterKey     contextKey = "semester"
)

// contextWithCacheManager stores the cache manager for use in worker goroutines
func contextWithCacheManager(ctx context.Context, mgr contract.CacheManager) context.Context {
	return context.WithValue(ctx, cacheManagerKey, mgr)
}

// cacheManagerFromContext returns the cache manager stored in the context, or nil
func cacheManagerFromContext(ctx context.Context) contract.CacheManager {
	mgr, _ := ctx.Value(cacheManagerKey).(contract.CacheManager)
	return mgr
}

// withRunID sets the history run ID in the context
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the history run ID from the context
func getRunID(ctx context.Context) (int64, bool) {
	val := ctx.Value(runIDKey)
	if val == nil {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

// withSemester sets the semester being processed
func withSemester(ctx context.Context, semester string) context.Context {
	return context.WithValue(ctx, semesterKey, semester)
}

// semesterFromContext returns the semester being processed, or ""
func semesterFromContext(ctx context.Context) string {
	sem, _ := ctx.Value(semesterKey).(string)
	return sem
}
