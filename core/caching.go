package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fuikk/fuikk/core/stats"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"go.uber.org/zap"
)

// currentCacheVersion defines the version of the cached stats schema
const currentCacheVersion = 1

// cacheMaxAge is how long a cached stats record stays valid
const cacheMaxAge = 7 * 24 * time.Hour

// statsInput is everything the stats generator reads for one course in one semester.
type statsInput struct {
	course        schema.Course
	raw           *schema.RawAnswerSet
	participation schema.Participation
	scales        schema.Scales
}

// cachedGenerate returns the stats for one unit, reusing a cached result when the inputs match.
// The bool reports a cache hit.
func cachedGenerate(ctx context.Context, gen *stats.Generator, in statsInput) (*schema.CourseSemesterStats, bool) {
	mgr := cacheManagerFromContext(ctx)
	if mgr == nil {
		return generate(gen, in), false
	}
	store := mgr.GetStatsStore()
	if store == nil {
		return generate(gen, in), false
	}

	key, err := generateCacheKey(in)
	if err != nil {
		contract.Logger().Debug("stats cache key failed", zap.String("course", in.course.Code), zap.Error(err))
		return generate(gen, in), false
	}

	if result, ok := checkCacheHit(store, key); ok {
		return result, true
	}
	return computeAndStore(gen, in, store, key), false
}

func generate(gen *stats.Generator, in statsInput) *schema.CourseSemesterStats {
	return gen.Generate(in.course, in.raw, in.participation, in.scales)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) (*schema.CourseSemesterStats, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil, false // Cache miss
	}
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > cacheMaxAge {
		return nil, false // Stale or version mismatch
	}
	var result *schema.CourseSemesterStats
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return result, true
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(gen *stats.Generator, in statsInput, store contract.CacheStore, key string) *schema.CourseSemesterStats {
	result := generate(gen, in)
	data, err := json.Marshal(result)
	if err != nil {
		return result
	}
	if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.Logger().Debug("stats cache write failed", zap.String("course", in.course.Code), zap.Error(err))
	}
	return result
}

// generateCacheKey hashes every input of one stats unit
func generateCacheKey(in statsInput) (string, error) {
	raw, err := json.Marshal(in.raw)
	if err != nil {
		return "", err
	}
	scales, err := json.Marshal(in.scales)
	if err != nil {
		return "", err
	}
	p := in.participation
	key := fmt.Sprintf("%d:%s:%s:%s:%d:%d:%d:%s:%s",
		currentCacheVersion,
		in.course.Semester,
		in.course.Code,
		in.course.Name,
		p.Started, p.Answered, p.Invited,
		raw,
		scales,
	)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), nil
}
