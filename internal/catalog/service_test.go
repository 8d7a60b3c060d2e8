package catalog

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockdeck/dashboard/internal/backend"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/locks"
	"github.com/stockdeck/dashboard/pkg/logger"
)

type stubBackend struct {
	items     []backend.Item
	inventory []backend.InventoryRecord

	itemsCalls     int
	inventoryCalls int
	createErr      error
	mutateErr      error
}

func (s *stubBackend) ListItems(ctx context.Context) ([]backend.Item, error) {
	s.itemsCalls++
	return s.items, nil
}

func (s *stubBackend) CreateItem(ctx context.Context, name string) (*backend.CreatedItem, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &backend.CreatedItem{ID: 99}, nil
}

func (s *stubBackend) ListInventory(ctx context.Context) ([]backend.InventoryRecord, error) {
	s.inventoryCalls++
	return s.inventory, nil
}

func (s *stubBackend) CreateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error {
	return s.mutateErr
}

func (s *stubBackend) UpdateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error {
	return s.mutateErr
}

func (s *stubBackend) DeleteInventoryRecord(ctx context.Context, itemID int64) error {
	return s.mutateErr
}

func newTestService(t *testing.T, api *stubBackend) (*Service, *Store, *locks.Keyed) {
	t.Helper()
	store := NewStore()
	keyed := locks.NewKeyed()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(api, store, keyed, logg)
	require.NoError(t, err)
	return svc, store, keyed
}

func TestNewServiceRequiresLogger(t *testing.T) {
	_, err := NewService(&stubBackend{}, NewStore(), locks.NewKeyed(), nil)
	require.Error(t, err)
}

func TestRefreshAllReplacesBothSnapshots(t *testing.T) {
	api := &stubBackend{
		items:     []backend.Item{{ID: 1, Name: "Widget"}},
		inventory: []backend.InventoryRecord{{ID: 1, Name: "Widget", Stock: 5, Capacity: 10}},
	}
	svc, store, _ := newTestService(t, api)

	require.NoError(t, svc.RefreshAll(context.Background()))
	assert.Len(t, store.Items(), 1)
	assert.Len(t, store.Inventory(), 1)
	assert.Equal(t, "Inventory loaded successfully", store.Status())
	assert.False(t, store.Busy())
}

func TestAddItemRefetchesItemsAndInventory(t *testing.T) {
	api := &stubBackend{items: []backend.Item{{ID: 1, Name: "Widget"}}}
	svc, store, _ := newTestService(t, api)

	require.NoError(t, svc.AddItem(context.Background(), "Widget"))
	assert.Equal(t, 1, api.itemsCalls)
	assert.Equal(t, 1, api.inventoryCalls)
	assert.Equal(t, "Item added successfully", store.Status())
}

func TestAddItemFailureLeavesSnapshotsUntouched(t *testing.T) {
	api := &stubBackend{createErr: pkgerrors.New(pkgerrors.CodeRejected, "duplicate item")}
	svc, store, _ := newTestService(t, api)

	err := svc.AddItem(context.Background(), "Widget")
	require.Error(t, err)
	assert.Equal(t, 0, api.itemsCalls)
	assert.Equal(t, 0, api.inventoryCalls)
	assert.Equal(t, "Error adding item: duplicate item", store.Status())
}

func TestDeleteInventoryRefetchesInventoryOnly(t *testing.T) {
	api := &stubBackend{}
	svc, _, _ := newTestService(t, api)

	require.NoError(t, svc.DeleteInventory(context.Background(), 4))
	assert.Equal(t, 0, api.itemsCalls)
	assert.Equal(t, 1, api.inventoryCalls)
}

func TestInventoryMutationRejectedWhileLockHeld(t *testing.T) {
	api := &stubBackend{}
	svc, store, keyed := newTestService(t, api)

	require.True(t, keyed.TryAcquire(lockInventory))
	defer keyed.Release(lockInventory)

	err := svc.AddToInventory(context.Background(), RecordInput{ItemID: 1, Stock: 2, Capacity: 3})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeBusy))
	assert.Equal(t, 0, api.inventoryCalls)
	assert.Contains(t, store.Status(), "Error:")
}

func TestItemLockDoesNotBlockInventoryMutations(t *testing.T) {
	api := &stubBackend{}
	svc, _, keyed := newTestService(t, api)

	require.True(t, keyed.TryAcquire(lockItems))
	defer keyed.Release(lockItems)

	require.NoError(t, svc.UpdateInventory(context.Background(), RecordInput{ItemID: 1, Stock: 2, Capacity: 3}))
}
