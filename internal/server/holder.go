// Package server exposes the estimation engine over HTTP: a gin API with a
// TTL result cache, a scheduled dataset refresher, and a snapshot stream.
package server

import (
	"sync"

	"github.com/yourusername/draw-odds/internal/draw"
)

// DatasetHolder publishes the active dataset to handler goroutines. Refresh
// swaps the whole pointer; a reader keeps whatever dataset it fetched for
// the duration of its run.
type DatasetHolder struct {
	mu sync.RWMutex
	ds *draw.Dataset
}

// NewDatasetHolder creates an empty holder
func NewDatasetHolder() *DatasetHolder {
	return &DatasetHolder{}
}

// Get returns the active dataset, or nil before the first load
func (h *DatasetHolder) Get() *draw.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds
}

// Set swaps in a freshly loaded dataset
func (h *DatasetHolder) Set(ds *draw.Dataset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ds = ds
}

// Loaded reports whether a dataset is available
func (h *DatasetHolder) Loaded() bool {
	return h.Get() != nil
}
