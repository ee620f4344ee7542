// Package iocache persists generated stats and summary history.
package iocache

import (
	"sync"

	"github.com/fuikk/fuikk/internal/contract"
)

// CacheStoreManager manages the stats cache and the summary history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	stats        contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetStatsStore returns the stats CacheStore.
func (mgr *CacheStoreManager) GetStatsStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.stats
}

// GetHistoryStore returns the summary HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
