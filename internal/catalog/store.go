package catalog

import (
	"maps"
	"slices"
	"sync"

	"github.com/stockdeck/dashboard/internal/backend"
)

// Store holds the last-fetched catalog and inventory snapshots plus the
// transient status line for the inventory page. Snapshots are replaced
// wholesale on every successful fetch; reads hand out copies so a held
// snapshot never changes under the caller. The draft map keeps a failed
// submission's field values ("form.field" keys) so the page can re-render
// them for correction.
type Store struct {
	mu        sync.RWMutex
	items     []backend.Item
	inventory []backend.InventoryRecord
	draft     map[string]string
	busy      bool
	status    string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) ReplaceItems(items []backend.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
}

func (s *Store) ReplaceInventory(records []backend.InventoryRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = slices.Clone(records)
}

func (s *Store) Items() []backend.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store) Inventory() []backend.InventoryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.inventory)
}

// SetDraft merges a failed submission's field values into the draft map.
func (s *Store) SetDraft(values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft == nil {
		s.draft = make(map[string]string, len(values))
	}
	maps.Copy(s.draft, values)
}

// ClearDraft drops all preserved field values after a successful mutation.
func (s *Store) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

func (s *Store) Draft() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.draft)
}

func (s *Store) SetBusy(busy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = busy
}

func (s *Store) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}

func (s *Store) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *Store) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}
