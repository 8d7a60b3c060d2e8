package views

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/stockdeck/dashboard/internal/backend"
	"github.com/stockdeck/dashboard/internal/exports"
	"github.com/stockdeck/dashboard/internal/queries"
	"github.com/stockdeck/dashboard/pkg/logger"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	renderer, err := NewRenderer(logg)
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}
	return renderer
}

func TestInventoryPageRendersSnapshots(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "inventory.html", InventoryPage{
		Status:    "Inventory loaded successfully",
		Items:     []backend.Item{{ID: 1, Name: "Widget"}},
		Inventory: []backend.InventoryRecord{{ID: 1, Name: "Widget", Stock: 5, Capacity: 100}},
	})

	body := rec.Body.String()
	for _, want := range []string{"Inventory loaded successfully", "Widget", "<td>5</td>", "<td>100</td>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestInventoryPageEchoesDraftValues(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "inventory.html", InventoryPage{
		Status: "Error: stock must be a non-negative number",
		Draft: map[string]string{
			"addItem.name":    "Widget",
			"addRecord.stock": "lots",
		},
	})

	body := rec.Body.String()
	for _, want := range []string{`value="Widget"`, `value="lots"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestDistributorsPageFormatsMoney(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "distributors.html", DistributorsPage{
		Distributors: []backend.Distributor{{ID: 1, Name: "Acme"}},
		Groups: []DistributorGroup{{
			Distributor: backend.Distributor{ID: 1, Name: "Acme"},
			Offerings:   []backend.Offering{{ItemID: 10, Name: "Widget", Cost: decimal.RequireFromString("12.5")}},
		}},
	})

	if !strings.Contains(rec.Body.String(), "$12.50") {
		t.Fatalf("body missing formatted cost: %s", rec.Body.String())
	}
}

func TestQueriesPageRendersResultTable(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "queries.html", QueriesPage{
		Queries: []queries.Definition{{ID: "low-stock", Label: "Low Stock Items"}},
		Result: &queries.Result{
			Columns: []string{"ID", "Name"},
			Rows:    [][]string{{"1", "Widget"}},
		},
	})

	body := rec.Body.String()
	for _, want := range []string{"Low Stock Items", "<th>ID</th>", "<td>Widget</td>"} {
		if !strings.Contains(body, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestExportPageListsTables(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "export.html", ExportPage{
		Tables: []exports.Table{{Name: "distributor_prices", Label: "Distributor Prices"}},
	})

	if !strings.Contains(rec.Body.String(), `value="distributor_prices"`) {
		t.Fatalf("body missing table option: %s", rec.Body.String())
	}
}

func TestUnknownTemplateWritesServerError(t *testing.T) {
	renderer := newTestRenderer(t)
	rec := httptest.NewRecorder()
	renderer.Render(context.Background(), rec, "missing.html", nil)

	if rec.Code != 500 {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
