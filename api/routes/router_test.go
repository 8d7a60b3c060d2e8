package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/catalog"
	"github.com/stockdeck/dashboard/internal/distributors"
	"github.com/stockdeck/dashboard/internal/exports"
	"github.com/stockdeck/dashboard/internal/queries"
	"github.com/stockdeck/dashboard/pkg/config"
	"github.com/stockdeck/dashboard/pkg/logger"
)

type stubCatalogService struct{}

func (stubCatalogService) RefreshAll(ctx context.Context) error                { return nil }
func (stubCatalogService) AddItem(ctx context.Context, name string) error      { return nil }
func (stubCatalogService) DeleteInventory(ctx context.Context, id int64) error { return nil }

func (stubCatalogService) AddToInventory(ctx context.Context, input catalog.RecordInput) error {
	return nil
}

func (stubCatalogService) UpdateInventory(ctx context.Context, input catalog.RecordInput) error {
	return nil
}

type stubDistributorService struct{}

func (stubDistributorService) RefreshAll(ctx context.Context) error                  { return nil }
func (stubDistributorService) AddDistributor(ctx context.Context, name string) error { return nil }
func (stubDistributorService) DeleteDistributor(ctx context.Context, id int64) error { return nil }
func (stubDistributorService) ItemOfferings(ctx context.Context, itemID int64) error { return nil }

func (stubDistributorService) AddOffering(ctx context.Context, input distributors.OfferingInput) error {
	return nil
}

func (stubDistributorService) UpdatePrice(ctx context.Context, input distributors.OfferingInput) error {
	return nil
}

func (stubDistributorService) RestockQuote(ctx context.Context, itemID int64, quantity int) error {
	return nil
}

type stubQueryRunner struct{}

func (stubQueryRunner) Definitions() []queries.Definition {
	return []queries.Definition{{ID: "low-stock", Label: "Low Stock Items"}}
}

func (stubQueryRunner) Run(ctx context.Context, queryID string) error         { return nil }
func (stubQueryRunner) InspectRecord(ctx context.Context, itemID int64) error { return nil }

type stubExportService struct{}

func (stubExportService) Tables() []exports.Table {
	return []exports.Table{{Name: "items", Label: "Items"}}
}

func (stubExportService) Export(ctx context.Context, table string) (*exports.Download, error) {
	return &exports.Download{Filename: table + ".csv", ContentType: "text/csv"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{Env: "test", Port: "0"}}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	renderer, err := views.NewRenderer(logg)
	if err != nil {
		t.Fatalf("failed to build renderer: %v", err)
	}

	return NewRouter(
		cfg, logg, renderer, prometheus.NewRegistry(),
		catalog.NewStore(), stubCatalogService{},
		distributors.NewStore(), stubDistributorService{},
		queries.NewStore(), stubQueryRunner{},
		exports.NewStore(), stubExportService{},
	)
}

func TestRootRedirectsToInventory(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/inventory" {
		t.Fatalf("expected /inventory, got %q", loc)
	}
}

func TestPagesRender(t *testing.T) {
	router := newTestRouter(t)
	for path, marker := range map[string]string{
		"/inventory":    "Inventory Management",
		"/distributors": "Distributors",
		"/queries":      "Inventory Queries",
		"/export":       "Export Data",
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Fatalf("GET %s: unexpected content type %q", path, ct)
		}
		if !strings.Contains(rec.Body.String(), marker) {
			t.Fatalf("GET %s: body missing %q", path, marker)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
		if env := rec.Header().Get("X-StockDeck-Env"); env != "test" {
			t.Fatalf("GET %s: unexpected env header %q", path, env)
		}
	}
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
