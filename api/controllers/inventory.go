package controllers

import (
	"context"
	"net/http"

	"github.com/stockdeck/dashboard/api/validators"
	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/catalog"
	"github.com/stockdeck/dashboard/pkg/logger"
)

const inventoryPage = "/inventory"

// CatalogService is the slice of catalog.Service the inventory handlers use.
type CatalogService interface {
	RefreshAll(ctx context.Context) error
	AddItem(ctx context.Context, name string) error
	AddToInventory(ctx context.Context, input catalog.RecordInput) error
	UpdateInventory(ctx context.Context, input catalog.RecordInput) error
	DeleteInventory(ctx context.Context, itemID int64) error
}

func InventoryPage(store *catalog.Store, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(r.Context(), w, "inventory.html", views.InventoryPage{
			Status:    store.Status(),
			Busy:      store.Busy(),
			Draft:     store.Draft(),
			Items:     store.Items(),
			Inventory: store.Inventory(),
		})
	}
}

func RefreshInventory(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RefreshAll(r.Context()); err != nil {
			logg.Warn(r.Context(), "inventory refresh failed")
		}
		redirect(w, r, inventoryPage)
	}
}

type addItemForm struct {
	Name string `form:"name" validate:"required"`
}

func AddItem(svc CatalogService, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "addItem", "name")
		var form addItemForm
		if rejectInvalid(w, r, store, inventoryPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		finishMutation(w, r, store, inventoryPage, draft, svc.AddItem(r.Context(), form.Name))
	}
}

type recordForm struct {
	ItemID   string `form:"itemId" validate:"required"`
	Stock    string `form:"stock" validate:"required"`
	Capacity string `form:"capacity" validate:"required"`
}

func (f recordForm) parse() (catalog.RecordInput, error) {
	itemID, err := parseID("itemId", f.ItemID)
	if err != nil {
		return catalog.RecordInput{}, err
	}
	stock, err := parseCount("stock", f.Stock)
	if err != nil {
		return catalog.RecordInput{}, err
	}
	capacity, err := parseCount("capacity", f.Capacity)
	if err != nil {
		return catalog.RecordInput{}, err
	}
	return catalog.RecordInput{ItemID: itemID, Stock: stock, Capacity: capacity}, nil
}

func AddInventoryRecord(svc CatalogService, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "addRecord", "itemId", "stock", "capacity")
		var form recordForm
		if rejectInvalid(w, r, store, inventoryPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		input, err := form.parse()
		if rejectInvalid(w, r, store, inventoryPage, err, draft) {
			return
		}
		finishMutation(w, r, store, inventoryPage, draft, svc.AddToInventory(r.Context(), input))
	}
}

func UpdateInventoryRecord(svc CatalogService, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "updateRecord", "itemId", "stock", "capacity")
		var form recordForm
		if rejectInvalid(w, r, store, inventoryPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		input, err := form.parse()
		if rejectInvalid(w, r, store, inventoryPage, err, draft) {
			return
		}
		finishMutation(w, r, store, inventoryPage, draft, svc.UpdateInventory(r.Context(), input))
	}
}

type deleteRecordForm struct {
	ItemID string `form:"itemId" validate:"required"`
}

func DeleteInventoryRecord(svc CatalogService, store *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form deleteRecordForm
		if rejectInvalid(w, r, store, inventoryPage, validators.DecodeForm(r, &form), nil) {
			return
		}
		itemID, err := parseID("itemId", form.ItemID)
		if rejectInvalid(w, r, store, inventoryPage, err, nil) {
			return
		}
		finishMutation(w, r, store, inventoryPage, nil, svc.DeleteInventory(r.Context(), itemID))
	}
}
