package datadir

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/fuikk/fuikk/internal/contract"
)

// Patterns used to classify downloaded files.
var (
	SemesterPattern   = regexp.MustCompile(`(V|H)[0-9]{4}`)
	CourseCodePattern = regexp.MustCompile(`(([A-Z]{1,5}-)?[A-Z]{1,5}[0-9]{3,4})([A-Z]{1,5})?`)
)

// SortAction describes what happened to one downloaded file.
type SortAction string

// All sort actions.
const (
	SortCopied   SortAction = "copied"
	SortMoved    SortAction = "moved"
	SortExcluded SortAction = "excluded"
	SortSkipped  SortAction = "skipped"
	SortFailed   SortAction = "failed"
)

// SortResult is the outcome for one input file.
type SortResult struct {
	Source string     `json:"source"`
	Target string     `json:"target,omitempty"`
	Action SortAction `json:"action"`
	Reason string     `json:"reason,omitempty"`
}

// Sorter files downloaded exports into <output>/<semester>/downloads/<kind>/<code>.<ext>.
type Sorter struct {
	Input   string
	Output  string
	Exclude *regexp.Regexp
	Delete  bool // move instead of copy, then prune empty input directories
	Workers int
}

// NewSorter compiles the exclude pattern and returns a Sorter.
func NewSorter(input, output, exclude string, deleteInput bool, workers int) (*Sorter, error) {
	if exclude == "" {
		exclude = contract.DefaultExcludePattern
	}
	re, err := regexp.Compile(exclude)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}
	return &Sorter{Input: input, Output: output, Exclude: re, Delete: deleteInput, Workers: max(workers, 1)}, nil
}

// Run sorts every file below Input using a pool of workers.
// Results are returned in input path order.
func (s *Sorter) Run() ([]SortResult, error) {
	var paths []string
	err := filepath.WalkDir(s.Input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", s.Input, err)
	}
	sort.Strings(paths)

	results := make([]SortResult, len(paths))
	indexCh := make(chan int, len(paths))
	var wg sync.WaitGroup
	for range s.Workers {
		wg.Go(func() {
			for i := range indexCh {
				results[i] = s.sortFile(paths[i])
			}
		})
	}
	for i := range paths {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()

	if s.Delete {
		if err := pruneEmptyDirs(s.Input); err != nil {
			return results, err
		}
	}
	return results, nil
}

// Classify returns the target path for a downloaded file, or a reason it is not sorted.
func (s *Sorter) Classify(path string) (string, SortAction, string) {
	if s.Exclude != nil && s.Exclude.MatchString(path) {
		return "", SortExcluded, "matches exclude pattern"
	}
	semester := SemesterPattern.FindString(path)
	if semester == "" {
		return "", SortSkipped, "no semester"
	}
	code := findCourseCode(filepath.Base(path), semester)
	if code == "" {
		code = findCourseCode(path, semester)
	}
	if code == "" {
		return "", SortSkipped, "no course code"
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	kind := ext
	if ext == "json" {
		kind = "participation"
	}
	target := filepath.Join(s.Output, semester, "downloads", kind, code+"."+ext)
	if s.Delete {
		return target, SortMoved, ""
	}
	return target, SortCopied, ""
}

// findCourseCode returns the leftmost course code in text that is not the semester itself.
func findCourseCode(text, semester string) string {
	for _, m := range CourseCodePattern.FindAllStringSubmatch(text, -1) {
		if m[1] != semester {
			return m[0]
		}
	}
	return ""
}

func (s *Sorter) sortFile(path string) SortResult {
	rel, err := filepath.Rel(s.Input, path)
	if err != nil {
		rel = path
	}
	target, action, reason := s.Classify(rel)
	result := SortResult{Source: path, Target: target, Action: action, Reason: reason}
	if target == "" {
		return result
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return failed(result, err)
	}
	if s.Delete {
		_ = os.Remove(target)
		if err := os.Rename(path, target); err != nil {
			return failed(result, err)
		}
		return result
	}
	if err := copyFile(path, target); err != nil {
		return failed(result, err)
	}
	return result
}

func failed(result SortResult, err error) SortResult {
	result.Action = SortFailed
	result.Reason = err.Error()
	return result
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// pruneEmptyDirs removes empty directories below root, repeating until none are left.
// The root itself is removed when it ends up empty.
func pruneEmptyDirs(root string) error {
	for {
		var empty []string
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				empty = append(empty, path)
			}
			return nil
		})
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if len(empty) == 0 {
			return nil
		}
		for _, dir := range empty {
			if err := os.Remove(dir); err != nil {
				return err
			}
		}
	}
}
