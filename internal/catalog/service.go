package catalog

import (
	"context"
	"fmt"

	"github.com/stockdeck/dashboard/internal/backend"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/locks"
	"github.com/stockdeck/dashboard/pkg/logger"
)

// Lock keys owned by this service. One mutation per key may be in flight; a
// losing submit is rejected with a busy result instead of queueing.
const (
	lockItems     = "items"
	lockInventory = "inventory"
)

type backendAPI interface {
	ListItems(ctx context.Context) ([]backend.Item, error)
	CreateItem(ctx context.Context, name string) (*backend.CreatedItem, error)
	ListInventory(ctx context.Context) ([]backend.InventoryRecord, error)
	CreateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error
	UpdateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error
	DeleteInventoryRecord(ctx context.Context, itemID int64) error
}

// Service is the single writer for the catalog store. Every mutation decides
// exactly which snapshots it staled and re-fetches them on success; failures
// leave the snapshots untouched.
type Service struct {
	api   backendAPI
	store *Store
	locks *locks.Keyed
	logg  *logger.Logger
}

func NewService(api backendAPI, store *Store, keyed *locks.Keyed, logg *logger.Logger) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if keyed == nil {
		return nil, fmt.Errorf("keyed locks required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Service{api: api, store: store, locks: keyed, logg: logg}, nil
}

// RecordInput carries a parsed add/update inventory form.
type RecordInput struct {
	ItemID   int64
	Stock    int
	Capacity int
}

// RefreshAll replaces both the items and inventory snapshots.
func (s *Service) RefreshAll(ctx context.Context) error {
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.refreshItems(ctx); err != nil {
		s.store.SetStatus("Error loading items: " + publicMessage(err))
		return err
	}
	if err := s.refreshInventory(ctx); err != nil {
		s.store.SetStatus("Error loading inventory: " + publicMessage(err))
		return err
	}
	s.store.SetStatus("Inventory loaded successfully")
	return nil
}

func (s *Service) AddItem(ctx context.Context, name string) error {
	if !s.locks.TryAcquire(lockItems) {
		return s.busyStatus(lockItems)
	}
	defer s.locks.Release(lockItems)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	created, err := s.api.CreateItem(ctx, name)
	if err != nil {
		s.store.SetStatus("Error adding item: " + publicMessage(err))
		return err
	}

	// A new catalog entry may surface in both tables.
	if err := s.refreshItems(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "item_id", created.ID), "items re-fetch after create failed")
	}
	if err := s.refreshInventory(ctx); err != nil {
		s.logg.Warn(ctx, "inventory re-fetch after create failed")
	}
	s.store.SetStatus("Item added successfully")
	return nil
}

func (s *Service) AddToInventory(ctx context.Context, input RecordInput) error {
	if !s.locks.TryAcquire(lockInventory) {
		return s.busyStatus(lockInventory)
	}
	defer s.locks.Release(lockInventory)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.CreateInventoryRecord(ctx, input.ItemID, input.Stock, input.Capacity); err != nil {
		s.store.SetStatus("Error adding to inventory: " + publicMessage(err))
		return err
	}
	if err := s.refreshInventory(ctx); err != nil {
		s.logg.Warn(ctx, "inventory re-fetch after add failed")
	}
	s.store.SetStatus("Item added to inventory successfully")
	return nil
}

func (s *Service) UpdateInventory(ctx context.Context, input RecordInput) error {
	if !s.locks.TryAcquire(lockInventory) {
		return s.busyStatus(lockInventory)
	}
	defer s.locks.Release(lockInventory)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.UpdateInventoryRecord(ctx, input.ItemID, input.Stock, input.Capacity); err != nil {
		s.store.SetStatus("Error updating inventory: " + publicMessage(err))
		return err
	}
	if err := s.refreshInventory(ctx); err != nil {
		s.logg.Warn(ctx, "inventory re-fetch after update failed")
	}
	s.store.SetStatus("Inventory updated successfully")
	return nil
}

func (s *Service) DeleteInventory(ctx context.Context, itemID int64) error {
	if !s.locks.TryAcquire(lockInventory) {
		return s.busyStatus(lockInventory)
	}
	defer s.locks.Release(lockInventory)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.DeleteInventoryRecord(ctx, itemID); err != nil {
		s.store.SetStatus("Error deleting item: " + publicMessage(err))
		return err
	}
	if err := s.refreshInventory(ctx); err != nil {
		s.logg.Warn(ctx, "inventory re-fetch after delete failed")
	}
	s.store.SetStatus("Item deleted successfully")
	return nil
}

func (s *Service) refreshItems(ctx context.Context) error {
	items, err := s.api.ListItems(ctx)
	if err != nil {
		return err
	}
	s.store.ReplaceItems(items)
	return nil
}

func (s *Service) refreshInventory(ctx context.Context) error {
	records, err := s.api.ListInventory(ctx)
	if err != nil {
		return err
	}
	s.store.ReplaceInventory(records)
	return nil
}

func (s *Service) busyStatus(key string) error {
	err := pkgerrors.New(pkgerrors.CodeBusy, fmt.Sprintf("another %s mutation is in flight", key))
	s.store.SetStatus("Error: " + err.Message())
	return err
}

func publicMessage(err error) string {
	return pkgerrors.MessageOf(err)
}
