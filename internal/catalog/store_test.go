package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stockdeck/dashboard/internal/backend"
)

func TestSnapshotsAreCopies(t *testing.T) {
	store := NewStore()
	store.ReplaceInventory([]backend.InventoryRecord{{ID: 1, Name: "Widget", Stock: 5, Capacity: 10}})

	snapshot := store.Inventory()
	snapshot[0].Name = "mutated"

	assert.Equal(t, "Widget", store.Inventory()[0].Name)
}

func TestDraftMergesAndClears(t *testing.T) {
	store := NewStore()
	store.SetDraft(map[string]string{"addRecord.itemId": "1"})
	store.SetDraft(map[string]string{"addRecord.stock": "lots"})

	draft := store.Draft()
	assert.Equal(t, "1", draft["addRecord.itemId"])
	assert.Equal(t, "lots", draft["addRecord.stock"])

	store.ClearDraft()
	assert.Nil(t, store.Draft())
}

func TestReplaceItemsSwapsWholesale(t *testing.T) {
	store := NewStore()
	store.ReplaceItems([]backend.Item{{ID: 1, Name: "Widget"}, {ID: 2, Name: "Gadget"}})
	store.ReplaceItems([]backend.Item{{ID: 3, Name: "Sprocket"}})

	items := store.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
}
