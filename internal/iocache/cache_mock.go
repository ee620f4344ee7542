package iocache

import (
	"time"

	"github.com/fuikk/fuikk/internal/contract"
	"github.com/fuikk/fuikk/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetStatsStore implements the CacheManager interface.
func (m *MockCacheManager) GetStatsStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// BeginRun implements the HistoryStore interface.
func (m *MockHistoryStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	args := m.Called(startTime, configParams)
	return args.Get(0).(int64), args.Error(1)
}

// EndRun implements the HistoryStore interface.
func (m *MockHistoryStore) EndRun(runID int64, endTime time.Time, totalCourses int) error {
	args := m.Called(runID, endTime, totalCourses)
	return args.Error(0)
}

// RecordCourseSummary implements the HistoryStore interface.
func (m *MockHistoryStore) RecordCourseSummary(runID int64, code string, semesters int, row schema.SummaryRow) error {
	args := m.Called(runID, code, semesters, row)
	return args.Error(0)
}

// GetCourseHistory implements the HistoryStore interface.
func (m *MockHistoryStore) GetCourseHistory(code string) ([]schema.CourseSummaryRecord, error) {
	args := m.Called(code)
	records, _ := args.Get(0).([]schema.CourseSummaryRecord)
	return records, args.Error(1)
}

// GetAllRuns implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllRuns() ([]schema.SummaryRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.SummaryRunRecord)
	return records, args.Error(1)
}

// GetAllCourseSummaries implements the HistoryStore interface.
func (m *MockHistoryStore) GetAllCourseSummaries() ([]schema.CourseSummaryRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.CourseSummaryRecord)
	return records, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
