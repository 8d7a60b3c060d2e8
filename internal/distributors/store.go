package distributors

import (
	"maps"
	"slices"
	"sync"

	"github.com/stockdeck/dashboard/internal/backend"
)

// Store holds the distributors snapshot and one offerings snapshot per
// distributor id, each fetched and replaced independently. Reads hand out
// copies; a snapshot taken before a refresh is never mutated by it.
type Store struct {
	mu           sync.RWMutex
	distributors []backend.Distributor
	offerings    map[int64][]backend.Offering

	itemOffersFor int64
	itemOffers    []backend.ItemOffer

	draft  map[string]string
	busy   bool
	status string
}

func NewStore() *Store {
	return &Store{offerings: make(map[int64][]backend.Offering)}
}

// ReplaceAll swaps the distributor list and the whole offerings map in one
// step, dropping entries for distributors that no longer exist.
func (s *Store) ReplaceAll(distributors []backend.Distributor, offerings map[int64][]backend.Offering) {
	cloned := make(map[int64][]backend.Offering, len(offerings))
	for id, items := range offerings {
		cloned[id] = slices.Clone(items)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distributors = slices.Clone(distributors)
	s.offerings = cloned
}

// ReplaceOfferings swaps the offerings snapshot for a single distributor.
func (s *Store) ReplaceOfferings(distributorID int64, items []backend.Offering) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offerings[distributorID] = slices.Clone(items)
}

func (s *Store) Distributors() []backend.Distributor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.distributors)
}

func (s *Store) Offerings() map[int64][]backend.Offering {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cloned := make(map[int64][]backend.Offering, len(s.offerings))
	for id, items := range s.offerings {
		cloned[id] = slices.Clone(items)
	}
	return cloned
}

func (s *Store) OfferingsFor(distributorID int64) []backend.Offering {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.offerings[distributorID])
}

// ReplaceItemOffers records the last "who offers this item" lookup.
func (s *Store) ReplaceItemOffers(itemID int64, offers []backend.ItemOffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemOffersFor = itemID
	s.itemOffers = slices.Clone(offers)
}

func (s *Store) ItemOffers() (int64, []backend.ItemOffer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.itemOffersFor, slices.Clone(s.itemOffers)
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
