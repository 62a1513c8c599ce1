package category_cache

import (
	"sync"
	"time"

	"github.com/nomato-app/nomato-backend/models"
)

const TTL = 5 * time.Minute

// ── Category list cache ──────────────────────────────────────────────────────
// GetCategories and the home page both read from this.

type listEntry struct {
	categories []models.CategoryResponse
	fetchedAt  time.Time
}

var (
	listMu    sync.RWMutex
	listCache *listEntry
)

func GetList() ([]models.CategoryResponse, bool) {
	listMu.RLock()
	defer listMu.RUnlock()
	if listCache != nil && time.Since(listCache.fetchedAt) < TTL {
		return listCache.categories, true
	}
	return nil, false
}

func SetList(categories []models.CategoryResponse) {
	listMu.Lock()
	defer listMu.Unlock()
	listCache = &listEntry{categories: categories, fetchedAt: time.Now()}
}

// ── Invalidate (seed import, tests) ──────────────────────────────────────────

func Invalidate() {
	listMu.Lock()
	listCache = nil
	listMu.Unlock()
}
