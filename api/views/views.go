package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/stockdeck/dashboard/internal/backend"
	"github.com/stockdeck/dashboard/internal/exports"
	"github.com/stockdeck/dashboard/internal/queries"
	"github.com/stockdeck/dashboard/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return "$" + d.StringFixed(2)
	},
}

// Renderer executes the embedded page templates. Pages are pure functions of
// store snapshots; nothing here talks to the backend.
type Renderer struct {
	templates *template.Template
	logg      *logger.Logger
}

func NewRenderer(logg *logger.Logger) (*Renderer, error) {
	t, err := template.New("stockdeck").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t, logg: logg}, nil
}

func (r *Renderer) Render(ctx context.Context, w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		if r.logg != nil {
			r.logg.Error(r.logg.WithField(ctx, "template", name), "template render failed", err)
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// InventoryPage feeds inventory.html. Draft holds a failed submission's
// field values under "form.field" keys so inputs can echo them back.
type InventoryPage struct {
	Status    string
	Busy      bool
	Draft     map[string]string
	Items     []backend.Item
	Inventory []backend.InventoryRecord
}

// DistributorGroup pairs a distributor with its offerings snapshot.
type DistributorGroup struct {
	Distributor backend.Distributor
	Offerings   []backend.Offering
}

// DistributorsPage feeds distributors.html.
type DistributorsPage struct {
	Status        string
	Busy          bool
	Draft         map[string]string
	Distributors  []backend.Distributor
	Groups        []DistributorGroup
	ItemOffersFor int64
	ItemOffers    []backend.ItemOffer
}

// QueriesPage feeds queries.html.
type QueriesPage struct {
	Status  string
	Busy    bool
	Draft   map[string]string
	Queries []queries.Definition
	Result  *queries.Result
}

// ExportPage feeds export.html.
type ExportPage struct {
	Status string
	Busy   bool
	Draft  map[string]string
	Tables []exports.Table
}
