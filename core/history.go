package core

import (
	"context"
	"errors"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/outwriter"
	"github.com/fuikk/fuikk/schema"
)

// ErrHistoryDisabled is returned when no history backend is configured.
var ErrHistoryDisabled = errors.New("summary history is disabled (set --history-backend)")

// GetCourseHistory returns every recorded summary row of cfg.Course, oldest first.
func GetCourseHistory(_ context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.CourseSummaryRecord, error) {
	if cfg.Course == "" {
		return nil, errors.New("no course code given")
	}
	if mgr == nil || mgr.GetHistoryStore() == nil {
		return nil, ErrHistoryDisabled
	}
	return mgr.GetHistoryStore().GetCourseHistory(cfg.Course)
}

// ExecuteHistory prints the recorded summary rows of one course.
func ExecuteHistory(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	records, err := GetCourseHistory(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintCourseHistory(records, cfg)
}
