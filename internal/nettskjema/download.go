package nettskjema

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/internal/datadir"
	"github.com/fuikk/fuikk/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
)

// Files kept in the download directory.
const (
	FormDataFile   = "formdata.json"
	DownloadedFile = "downloaded.txt"
	StatsDir       = "stats"
	CSVDir         = "csv"
	StatsFile      = "stats.json"
)

var unsafeFileChars = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]+`)

// DownloadOptions selects what Download fetches and where it writes.
type DownloadOptions struct {
	Dir    string
	Filter string // substring the form title must contain; empty keeps every form
	CSV    bool
}

// AggregatedStats is the stats/stats.json file.
type AggregatedStats struct {
	Respondents *orderedmap.OrderedMap[string, schema.ParticipationReport] `json:"respondents"`
}

// Download fetches participation and CSV reports for every form not yet listed in downloaded.txt.
//
// The form list is cached in formdata.json so a rerun after a failure resumes
// without listing forms again. A failed invitation lookup records zero invited.
func Download(ctx context.Context, client contract.SurveyClient, opts DownloadOptions) (schema.DownloadResult, error) {
	var result schema.DownloadResult

	forms, err := loadForms(ctx, client, opts.Dir)
	if err != nil {
		return result, err
	}
	if opts.Filter != "" {
		filtered := forms[:0:0]
		for _, f := range forms {
			if strings.Contains(f.Title, opts.Filter) {
				filtered = append(filtered, f)
			}
		}
		contract.Logger().Info("form filter applied",
			zap.String("filter", opts.Filter),
			zap.Int("matched", len(filtered)),
			zap.Int("total", len(forms)))
		forms = filtered
	}
	result.Forms = len(forms)

	downloadedPath := filepath.Join(opts.Dir, DownloadedFile)
	downloaded, err := readDownloaded(downloadedPath)
	if err != nil {
		return result, err
	}

	aggregated := AggregatedStats{Respondents: orderedmap.New[string, schema.ParticipationReport]()}
	for _, form := range forms {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if downloaded[form.FormID] {
			result.Skipped++
			continue
		}

		report, err := fetchForm(ctx, client, opts, form, &result)
		if errors.Is(err, ErrUnauthorized) {
			return result, err
		}
		aggregated.Respondents.Set(form.Title, report)
		if err != nil {
			result.Failed++
			contract.Logger().Warn("form download incomplete",
				zap.Int64("form", form.FormID),
				zap.String("title", form.Title),
				zap.Error(err))
			continue
		}
		if err := appendDownloaded(downloadedPath, form.FormID); err != nil {
			return result, err
		}
		result.Downloaded++
	}

	if err := datadir.WriteJSON(filepath.Join(opts.Dir, StatsDir, StatsFile), aggregated); err != nil {
		return result, fmt.Errorf("failed to write aggregated stats: %w", err)
	}
	return result, nil
}

// fetchForm writes the participation file and, when asked, the CSV report of one form.
func fetchForm(ctx context.Context, client contract.SurveyClient, opts DownloadOptions, form schema.Form, result *schema.DownloadResult) (schema.ParticipationReport, error) {
	name := CleanFileName(form.Title)

	invited, err := client.CountInvitations(ctx, form.FormID)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return schema.ParticipationReport{}, err
		}
		contract.Logger().Warn("invitations unavailable",
			zap.Int64("form", form.FormID),
			zap.Error(err))
		invited = 0
	}
	report := schema.NewParticipationReport(form.NumberOfDeliveredSubmissions, invited)
	if err := datadir.WriteJSON(filepath.Join(opts.Dir, StatsDir, name+".json"), report); err != nil {
		return report, err
	}

	if !opts.CSV {
		return report, nil
	}
	body, err := client.CSVReport(ctx, form.FormID)
	if err != nil {
		return report, err
	}
	csvPath := filepath.Join(opts.Dir, CSVDir, name+".csv")
	if err := os.MkdirAll(filepath.Dir(csvPath), 0o755); err != nil {
		return report, err
	}
	if err := os.WriteFile(csvPath, body, 0o644); err != nil {
		return report, err
	}
	result.Reports++
	return report, nil
}

// loadForms reads the cached form list or fetches and caches it.
func loadForms(ctx context.Context, client contract.SurveyClient, dir string) ([]schema.Form, error) {
	path := filepath.Join(dir, FormDataFile)
	var forms []schema.Form
	err := datadir.ReadJSON(path, &forms)
	if err == nil {
		return forms, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	forms, err = client.ListForms(ctx)
	if err != nil {
		return nil, err
	}
	if err := datadir.WriteJSON(path, forms); err != nil {
		return nil, fmt.Errorf("failed to cache form list: %w", err)
	}
	return forms, nil
}

func readDownloaded(path string) (map[int64]bool, error) {
	done := make(map[int64]bool)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return done, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		id, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
		if err != nil {
			continue
		}
		done[id] = true
	}
	return done, scanner.Err()
}

func appendDownloaded(path string, formID int64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f, "%d\n", formID); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// CleanFileName turns a form title into a safe file name.
func CleanFileName(title string) string {
	name := strings.TrimSpace(unsafeFileChars.ReplaceAllString(title, "_"))
	if name == "" {
		return "form"
	}
	return name
}
