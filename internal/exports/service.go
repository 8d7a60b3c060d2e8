package exports

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/samber/lo"

	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/logger"
)

// Table is one exportable backend table.
type Table struct {
	Name  string
	Label string
}

var tables = []Table{
	{Name: "items", Label: "Items"},
	{Name: "inventory", Label: "Inventory"},
	{Name: "distributors", Label: "Distributors"},
	{Name: "distributor_prices", Label: "Distributor Prices"},
}

// Download is a fetched CSV stream ready to hand to the browser.
type Download struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Store holds the status line for the export page.
type Store struct {
	mu     sync.RWMutex
	draft  map[string]string
	busy   bool
	status string
}

func NewStore() *Store {
	return &Store{}
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

// ClearDraft drops all preserved field values after a successful export.
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

type backendAPI interface {
	ExportTable(ctx context.Context, table string) ([]byte, error)
}

// Service fetches CSV exports from the backend. On success the caller streams
// the download; on failure only the status line changes and nothing is saved.
type Service struct {
	api   backendAPI
	store *Store
	logg  *logger.Logger
}

func NewService(api backendAPI, store *Store, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if store == nil {
		return nil, fmt.Errorf("export store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, store: store, logg: logg}, nil
}

// Tables lists the exportable tables, in menu order.
func (s *Service) Tables() []Table {
	return append([]Table(nil), tables...)
}

func (s *Service) Export(ctx context.Context, table string) (*Download, error) {
	if !lo.ContainsBy(tables, func(t Table) bool { return t.Name == table }) {
		err := pkgerrors.New(pkgerrors.CodeValidation, "Invalid table name. Allowed tables: items, inventory, distributors, distributor_prices")
		s.store.SetStatus("Error: " + err.Message())
		return nil, err
	}

	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	data, err := s.api.ExportTable(ctx, table)
	if err != nil {
		s.store.SetStatus("Error exporting table: " + pkgerrors.MessageOf(err))
		return nil, err
	}

	s.store.SetStatus(fmt.Sprintf("%s exported successfully!", table))
	return &Download{
		Filename:    table + ".csv",
		ContentType: "text/csv",
		Data:        data,
	}, nil
}
