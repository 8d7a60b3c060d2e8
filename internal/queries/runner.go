package queries

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"sync"

	"github.com/samber/lo"

	"github.com/stockdeck/dashboard/internal/backend"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/logger"
)

// Query identifiers offered on the queries page.
const (
	QueryOutOfStock   = "out-of-stock"
	QueryOverstocked  = "overstocked"
	QueryLowStock     = "low-stock"
	QueryDistributors = "distributors"
)

// Definition describes one predefined read query. Columns are fixed per
// query, so empty result sets still render a deterministic header row.
type Definition struct {
	ID      string
	Label   string
	Columns []string
}

var inventoryColumns = []string{"ID", "Name", "Stock", "Capacity"}

var definitions = []Definition{
	{ID: QueryOutOfStock, Label: "Out of Stock Items", Columns: inventoryColumns},
	{ID: QueryOverstocked, Label: "Overstocked Items", Columns: inventoryColumns},
	{ID: QueryLowStock, Label: "Low Stock Items", Columns: inventoryColumns},
	{ID: QueryDistributors, Label: "All Distributors", Columns: []string{"ID", "Name"}},
}

// Result is the last query's snapshot in render-ready form.
type Result struct {
	QueryID string
	Columns []string
	Rows    [][]string
}

// Store holds the last query result and status line for the queries page.
type Store struct {
	mu     sync.RWMutex
	result *Result
	draft  map[string]string
	busy   bool
	status string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Replace(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

func (s *Store) Result() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil
	}
	cloned := *s.result
	cloned.Rows = append([][]string(nil), s.result.Rows...)
	return &cloned
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

// ClearDraft drops all preserved field values after a successful run.
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
	ListOutOfStock(ctx context.Context) ([]backend.InventoryRecord, error)
	ListOverstocked(ctx context.Context) ([]backend.InventoryRecord, error)
	ListLowStock(ctx context.Context) ([]backend.InventoryRecord, error)
	ListDistributors(ctx context.Context) ([]backend.Distributor, error)
	GetInventoryRecord(ctx context.Context, itemID int64) (*backend.InventoryRecord, error)
}

// Runner maps a selected query id to one backend read operation and replaces
// the result snapshot with whatever that endpoint returned.
type Runner struct {
	api   backendAPI
	store *Store
	logg  *logger.Logger
}

func NewRunner(api backendAPI, store *Store, logg *logger.Logger) (*Runner, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if store == nil {
		return nil, fmt.Errorf("query store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Runner{api: api, store: store, logg: logg}, nil
}

// Definitions lists the queries offered to the user, in menu order.
func (r *Runner) Definitions() []Definition {
	return append([]Definition(nil), definitions...)
}

func (r *Runner) Run(ctx context.Context, queryID string) error {
	def, found := lo.Find(definitions, func(d Definition) bool { return d.ID == queryID })
	if !found {
		err := pkgerrors.New(pkgerrors.CodeValidation, "Invalid query type selected")
		r.store.SetStatus("Error: " + err.Message())
		return err
	}

	r.store.SetBusy(true)
	defer r.store.SetBusy(false)

	rows, err := r.fetchRows(ctx, queryID)
	if err != nil {
		r.store.SetStatus("Error executing query: " + pkgerrors.MessageOf(err))
		return err
	}

	r.store.Replace(&Result{QueryID: def.ID, Columns: def.Columns, Rows: rows})
	r.store.SetStatus(fmt.Sprintf("Query executed successfully. Found %d results.", len(rows)))
	return nil
}

// InspectRecord fetches a single inventory record and renders it as a
// one-row result.
func (r *Runner) InspectRecord(ctx context.Context, itemID int64) error {
	r.store.SetBusy(true)
	defer r.store.SetBusy(false)

	record, err := r.api.GetInventoryRecord(ctx, itemID)
	if err != nil {
		r.store.SetStatus("Error loading record: " + pkgerrors.MessageOf(err))
		return err
	}

	r.store.Replace(&Result{
		QueryID: "record",
		Columns: inventoryColumns,
		Rows:    [][]string{inventoryRow(*record)},
	})
	r.store.SetStatus(fmt.Sprintf("Loaded inventory record %d", itemID))
	return nil
}

func (r *Runner) fetchRows(ctx context.Context, queryID string) ([][]string, error) {
	switch queryID {
	case QueryDistributors:
		list, err := r.api.ListDistributors(ctx)
		if err != nil {
			return nil, err
		}
		return lo.Map(list, func(d backend.Distributor, _ int) []string {
			return []string{strconv.FormatInt(d.ID, 10), d.Name}
		}), nil
	default:
		records, err := r.fetchInventorySubset(ctx, queryID)
		if err != nil {
			return nil, err
		}
		return lo.Map(records, func(rec backend.InventoryRecord, _ int) []string {
			return inventoryRow(rec)
		}), nil
	}
}

func (r *Runner) fetchInventorySubset(ctx context.Context, queryID string) ([]backend.InventoryRecord, error) {
	switch queryID {
	case QueryOutOfStock:
		return r.api.ListOutOfStock(ctx)
	case QueryOverstocked:
		return r.api.ListOverstocked(ctx)
	case QueryLowStock:
		return r.api.ListLowStock(ctx)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "unmapped query "+queryID)
	}
}

func inventoryRow(rec backend.InventoryRecord) []string {
	return []string{
		strconv.FormatInt(rec.ID, 10),
		rec.Name,
		strconv.Itoa(rec.Stock),
		strconv.Itoa(rec.Capacity),
	}
}
