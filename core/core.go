// Package core runs the fuikk pipelines over a data directory.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/internal/nettskjema"
	"github.com/fuikk/fuikk/internal/outwriter"
	"github.com/fuikk/fuikk/schema"
)

// ExecutorFunc defines the function signature for executing the fuikk commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteResponses converts the CSV exports of the selected semesters to responses JSON.
func ExecuteResponses(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, err := GetResponsesResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintResponsesResults(results, cfg)
}

// GetResponsesResults converts every CSV export and reports the count per semester.
func GetResponsesResults(_ context.Context, cfg *contract.Config, _ contract.CacheManager) ([]schema.ResponsesResult, error) {
	layout := datadir.NewLayout(cfg.DataDir)
	semesters, err := layout.SelectSemesters(cfg.Semester)
	if err != nil {
		return nil, err
	}
	results := make([]schema.ResponsesResult, 0, len(semesters))
	for _, sem := range semesters {
		n, err := datadir.ConvertResponses(layout, sem)
		if err != nil {
			return results, fmt.Errorf("failed to convert responses for %s: %w", sem, err)
		}
		results = append(results, schema.ResponsesResult{Semester: sem, Files: n})
	}
	return results, nil
}

// ExecuteStats runs the stats generator and prints what it did per semester.
func ExecuteStats(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	results, err := GetStatsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintStatsResults(results, cfg, time.Since(start))
}

// ExecuteCourses combines, aggregates and summarizes every semester.
func ExecuteCourses(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := GetCoursesResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintCoursesResult(result, cfg, time.Since(result.Started))
}

// ExecuteSummary prints the summary report.
func ExecuteSummary(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	rows, err := GetSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintSummaryResults(rows, cfg, time.Since(start))
}

// ExecuteScore prints the semester scores.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	result, err := GetScoreResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintScoreResults(result, cfg)
}

// ExecutePlot draws the general-question trend of one course.
func ExecutePlot(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	trend, err := GetCourseTrend(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintCourseTrend(trend, cfg)
}

// ExecuteDivide prints the course assignment of each member.
func ExecuteDivide(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	assignments, err := GetDivideResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintDivideResults(assignments, cfg)
}

// ExecuteSort files the downloads directory into the data directory.
func ExecuteSort(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	sorter, err := datadir.NewSorter(cfg.DownloadsDir, cfg.DataDir, cfg.SortExclude, cfg.SortDelete, cfg.Workers)
	if err != nil {
		return err
	}
	results, err := sorter.Run()
	if err != nil {
		return err
	}
	return outwriter.PrintSortResults(results, cfg)
}

// ExecuteDownload fetches forms, participation and CSV reports from the survey API.
func ExecuteDownload(ctx context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	start := time.Now()
	client, err := nettskjema.NewClient(ctx, cfg.API)
	if err != nil {
		return err
	}
	result, err := nettskjema.Download(ctx, client, nettskjema.DownloadOptions{
		Dir:    cfg.DownloadsDir,
		Filter: cfg.API.TitleFilter,
		CSV:    cfg.API.CSVReports,
	})
	if err != nil {
		return err
	}
	return outwriter.PrintDownloadResult(result, cfg, time.Since(start))
}
