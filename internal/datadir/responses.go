package datadir

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"go.uber.org/zap"
)

// ParseResponsesCSV reads a ';'-delimited survey export. The header row gives
// the question order; each following row is one respondent. Rows whose field
// count differs from the header are skipped and their 1-based line numbers returned.
// An empty input yields an empty set.
func ParseResponsesCSV(r io.Reader) (*schema.RawAnswerSet, []int, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	responses := schema.NewRawAnswerSet()
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return responses, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make([][]string, len(header))
	var skipped []int
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if len(record) != len(header) {
			line, _ := reader.FieldPos(0)
			skipped = append(skipped, line)
			continue
		}
		for i, field := range record {
			columns[i] = append(columns[i], field)
		}
	}

	for i, question := range header {
		answers := columns[i]
		if answers == nil {
			answers = []string{}
		}
		if existing, ok := responses.Get(question); ok {
			answers = append(existing, answers...)
		}
		responses.Set(question, answers)
	}
	return responses, skipped, nil
}

// ConvertResponses converts every CSV export of a semester into
// outputs/responses/<code>.json and returns the number of files written.
func ConvertResponses(layout Layout, semester string) (int, error) {
	csvDir := layout.CSVDir(semester)
	codes, err := CourseCodes(csvDir, ".csv")
	if err != nil {
		return 0, fmt.Errorf("invalid input path %s: %w", csvDir, err)
	}

	outDir := layout.ResponsesDir(semester)
	if info, err := os.Stat(outDir); err == nil && !info.IsDir() {
		return 0, fmt.Errorf("output path %s must be a directory", outDir)
	}

	written := 0
	for _, code := range codes {
		csvPath := filepath.Join(csvDir, code+".csv")
		responses, err := convertFile(csvPath)
		if err != nil {
			contract.Logger().Warn("failed to parse responses",
				zap.String("semester", semester), zap.String("course", code), zap.Error(err))
			continue
		}
		if err := WriteJSON(filepath.Join(outDir, code+".json"), responses); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func convertFile(path string) (*schema.RawAnswerSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	responses, skipped, err := ParseResponsesCSV(file)
	if err != nil {
		return nil, err
	}
	for _, line := range skipped {
		contract.Logger().Warn("skipping row that does not match the header length",
			zap.String("file", path), zap.Int("line", line))
	}
	return responses, nil
}
