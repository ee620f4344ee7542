package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
)

// Table names for summary history.
const (
	summaryRunsTable      = "fuikk_summary_runs"
	courseSummariesTable  = "fuikk_course_summaries"
	courseSummaryColumns  = "run_id, course_code, recorded_at, semesters, total_responses, total_invited, average_response_rate, average_rating"
	summaryRunColumns     = "run_id, start_time, end_time, run_duration_ms, total_courses, config_params"
	courseSummaryOrdering = "ORDER BY run_id, course_code"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the summary history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{summaryRunsTable, getCreateSummaryRunsQuery(backend)},
		{courseSummariesTable, getCreateCourseSummariesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateSummaryRunsQuery returns the CREATE TABLE query for fuikk_summary_runs.
func getCreateSummaryRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(summaryRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_courses INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_courses INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_courses INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateCourseSummariesQuery returns the CREATE TABLE query for fuikk_course_summaries.
func getCreateCourseSummariesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(courseSummariesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				course_code VARCHAR(64) NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				semesters INT NOT NULL,
				total_responses INT NOT NULL,
				total_invited INT NOT NULL,
				average_response_rate DOUBLE NOT NULL,
				average_rating DOUBLE NOT NULL,
				PRIMARY KEY (run_id, course_code)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				course_code TEXT NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				semesters INT NOT NULL,
				total_responses INT NOT NULL,
				total_invited INT NOT NULL,
				average_response_rate DOUBLE PRECISION NOT NULL,
				average_rating DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (run_id, course_code)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				course_code TEXT NOT NULL,
				recorded_at TEXT NOT NULL,
				semesters INTEGER NOT NULL,
				total_responses INTEGER NOT NULL,
				total_invited INTEGER NOT NULL,
				average_response_rate REAL NOT NULL,
				average_rating REAL NOT NULL,
				PRIMARY KEY (run_id, course_code)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new summary run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(summaryRunsTable, hs.backend)
	args := []any{formatTime(startTime, hs.backend), string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert summary run: %w", err)
	}
	return runID, nil
}

// EndRun updates the summary run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID int64, endTime time.Time, totalCourses int) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(summaryRunsTable, hs.backend)
	p := placeholders(hs.backend, 4)

	row := hs.db.QueryRow(fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, p[0]), runID)
	startTime, err := hs.scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()
	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_courses = %s WHERE run_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	if _, err := hs.db.Exec(query, formatTime(endTime, hs.backend), durationMs, totalCourses, runID); err != nil {
		return fmt.Errorf("failed to update summary run: %w", err)
	}
	return nil
}

// RecordCourseSummary stores one course's summary row for a run.
func (hs *HistoryStoreImpl) RecordCourseSummary(runID int64, code string, semesters int, row schema.SummaryRow) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteTableName(courseSummariesTable, hs.backend),
		courseSummaryColumns,
		strings.Join(placeholders(hs.backend, 8), ", "))

	_, err := hs.db.Exec(query,
		runID, code, formatTime(time.Now(), hs.backend), semesters,
		row.TotalResponses, row.TotalInvited, row.AverageResponseRate, row.AverageRating,
	)
	if err != nil {
		return fmt.Errorf("failed to insert summary for %s: %w", code, err)
	}
	return nil
}

// GetCourseHistory returns every recorded summary of one course, oldest run first.
func (hs *HistoryStoreImpl) GetCourseHistory(code string) ([]schema.CourseSummaryRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE course_code = %s %s`,
		courseSummaryColumns, quoteTableName(courseSummariesTable, hs.backend),
		placeholders(hs.backend, 1)[0], courseSummaryOrdering)
	return hs.queryCourseSummaries(query, code)
}

// GetAllCourseSummaries retrieves all course summaries from the store.
func (hs *HistoryStoreImpl) GetAllCourseSummaries() ([]schema.CourseSummaryRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM %s %s`,
		courseSummaryColumns, quoteTableName(courseSummariesTable, hs.backend), courseSummaryOrdering)
	return hs.queryCourseSummaries(query)
}

func (hs *HistoryStoreImpl) queryCourseSummaries(query string, args ...any) ([]schema.CourseSummaryRecord, error) {
	rows, err := hs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query course summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.CourseSummaryRecord
	for rows.Next() {
		var record schema.CourseSummaryRecord
		var recordedAt any = &record.RecordedAt
		var recordedAtStr string
		if hs.backend == schema.SQLiteBackend {
			recordedAt = &recordedAtStr
		}
		if err := rows.Scan(&record.RunID, &record.CourseCode, recordedAt, &record.Semesters,
			&record.TotalResponses, &record.TotalInvited, &record.AverageResponseRate, &record.AverageRating); err != nil {
			return nil, fmt.Errorf("failed to scan course summary: %w", err)
		}
		if hs.backend == schema.SQLiteBackend {
			if record.RecordedAt, err = parseTime(recordedAtStr); err != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course summaries: %w", err)
	}
	return results, nil
}

// GetAllRuns retrieves all summary runs from the store.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.SummaryRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id", summaryRunColumns, quoteTableName(summaryRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query summary runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SummaryRunRecord
	for rows.Next() {
		var record schema.SummaryRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalCourses, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan summary run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalCourses, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan summary run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(summaryRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable))
		if status.LastRunTime, err = hs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		row = hs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable))
		if status.OldestRunTime, err = hs.scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}

		row = hs.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_courses), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalCoursesRecorded); err != nil {
			return status, fmt.Errorf("failed to get total courses recorded: %w", err)
		}
	}

	for _, table := range []string{summaryRunsTable, courseSummariesTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// scanTime reads a single timestamp column, handling SQLite's text storage.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}
