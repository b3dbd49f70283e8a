package store

import (
	"fmt"
	"sync"

	"github.com/sniperz/shorts-downloader/internal/model"
)

// Store holds the ordered collection of discovered items. It is the single
// source of truth shared between the extraction, acquisition and fetch
// jobs; all access goes through its synchronized methods so no reader ever
// observes a partially written record.
type Store struct {
	mu    sync.RWMutex
	items []model.Item
}

// New creates an empty item store
func New() *Store {
	return &Store{}
}

// Append creates a new item record with the next id and NotStarted status,
// returning a copy of the stored record.
func (s *Store) Append(title, url, thumbnailURL string) model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	if title == "" {
		title = model.DefaultTitle
	}
	item := model.Item{
		ID:           len(s.items),
		Title:        title,
		URL:          url,
		ThumbnailURL: thumbnailURL,
		Status:       model.StatusNotStarted,
	}
	s.items = append(s.items, item)
	return item
}

// Get returns a copy of the item with the given id
func (s *Store) Get(id int) (model.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.items) {
		return model.Item{}, false
	}
	return s.items[id], true
}

// Len returns the number of stored items
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot returns a copy of the current collection in discovery order.
// Items discovered after the snapshot is taken are not reflected in it.
func (s *Store) Snapshot() []model.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

// SetStatus transitions the item's status, enforcing that status never
// regresses and never skips InProgress.
func (s *Store) SetStatus(id int, status model.ItemStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.items) {
		return fmt.Errorf("item %d not found", id)
	}
	current := s.items[id].Status
	if current.IsTerminal() {
		return fmt.Errorf("item %d already settled as %s", id, current)
	}
	if !current.CanTransitionTo(status) {
		return fmt.Errorf("illegal status transition for item %d: %s -> %s", id, current, status)
	}
	s.items[id].Status = status
	return nil
}

// MarkThumbLoaded records that the item's thumbnail artifact was fetched.
// Tracked separately from the download status.
func (s *Store) MarkThumbLoaded(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id >= 0 && id < len(s.items) {
		s.items[id].ThumbLoaded = true
	}
}

// Clear drops every record. Ids restart from zero on the next Append; a
// new extraction run always starts from an empty collection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
