package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockdeck/dashboard/api/controllers"
	"github.com/stockdeck/dashboard/api/middleware"
	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/catalog"
	"github.com/stockdeck/dashboard/internal/distributors"
	"github.com/stockdeck/dashboard/internal/exports"
	"github.com/stockdeck/dashboard/internal/queries"
	"github.com/stockdeck/dashboard/pkg/config"
	"github.com/stockdeck/dashboard/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	renderer *views.Renderer,
	registry *prometheus.Registry,
	catalogStore *catalog.Store,
	catalogService controllers.CatalogService,
	distributorStore *distributors.Store,
	distributorService controllers.DistributorService,
	queryStore *queries.Store,
	queryRunner controllers.QueryRunner,
	exportStore *exports.Store,
	exportService controllers.ExportService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/inventory", http.StatusFound)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", controllers.InventoryPage(catalogStore, renderer))
		r.Post("/refresh", controllers.RefreshInventory(catalogService, logg))
		r.Post("/items", controllers.AddItem(catalogService, catalogStore))
		r.Post("/records", controllers.AddInventoryRecord(catalogService, catalogStore))
		r.Post("/records/update", controllers.UpdateInventoryRecord(catalogService, catalogStore))
		r.Post("/records/delete", controllers.DeleteInventoryRecord(catalogService, catalogStore))
	})

	r.Route("/distributors", func(r chi.Router) {
		r.Get("/", controllers.DistributorsPage(distributorStore, renderer))
		r.Post("/refresh", controllers.RefreshDistributors(distributorService, logg))
		r.Post("/", controllers.AddDistributor(distributorService, distributorStore))
		r.Post("/delete", controllers.DeleteDistributor(distributorService, distributorStore))
		r.Post("/items", controllers.AddOffering(distributorService, distributorStore))
		r.Post("/prices", controllers.UpdateOfferingPrice(distributorService, distributorStore))
		r.Post("/restock", controllers.RestockQuote(distributorService, distributorStore))
		r.Post("/offerings", controllers.ItemOfferings(distributorService, distributorStore))
	})

	r.Route("/queries", func(r chi.Router) {
		r.Get("/", controllers.QueriesPage(queryRunner, queryStore, renderer))
		r.Post("/run", controllers.RunQuery(queryRunner, queryStore))
		r.Post("/inspect", controllers.InspectRecord(queryRunner, queryStore))
	})

	r.Route("/export", func(r chi.Router) {
		r.Get("/", controllers.ExportPage(exportService, exportStore, renderer))
		r.Get("/download", controllers.DownloadExport(exportService, exportStore))
	})

	return r
}
