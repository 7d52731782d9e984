package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/javadocs/internal/content"
)

// ContentIndex holds the dataset currently served and the per-topic view
// counters. Datasets are immutable: a reload swaps the pointer, requests that
// already hold the previous one keep using it.
type ContentIndex struct {
	mu         sync.RWMutex
	dataset    *content.Dataset
	views      map[string]int64 // slug -> views
	lastReload time.Time        // Timestamp of last dataset swap
}

// NewContentIndex creates an empty index.
func NewContentIndex() *ContentIndex {
	return &ContentIndex{
		views: make(map[string]int64),
	}
}

// UpdateDataset replaces the served dataset.
func (idx *ContentIndex) UpdateDataset(ds *content.Dataset) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.dataset = ds
	idx.lastReload = time.Now()
}

// Dataset returns the served dataset, nil before the first load.
func (idx *ContentIndex) Dataset() *content.Dataset {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.dataset
}

// Ready reports whether a dataset has been loaded.
func (idx *ContentIndex) Ready() bool {
	return idx.Dataset() != nil
}

// TopicCount returns the number of topics in the served dataset.
func (idx *ContentIndex) TopicCount() int {
	return idx.Dataset().TopicCount()
}

// NewRepository builds a visitor repository over the served dataset.
func (idx *ContentIndex) NewRepository() *content.Repository {
	return content.NewRepository(idx.Dataset())
}

// IncrementViews increments the view counter of a topic.
func (idx *ContentIndex) IncrementViews(slug string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.views[slug]++
}

// Views returns the view counter of a topic.
func (idx *ContentIndex) Views(slug string) int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.views[slug]
}

// ViewStats returns a copy of every view counter.
func (idx *ContentIndex) ViewStats() map[string]int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make(map[string]int64, len(idx.views))
	for slug, n := range idx.views {
		out[slug] = n
	}
	return out
}

// MergeViews raises local counters to the given values; counters are never
// lowered.
func (idx *ContentIndex) MergeViews(stats map[string]int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	for slug, n := range stats {
		if n > idx.views[slug] {
			idx.views[slug] = n
		}
	}
}

// GetLastReload returns the timestamp of the last dataset swap.
func (idx *ContentIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
