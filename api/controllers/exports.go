package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/exports"
)

const exportPage = "/export"

// ExportService is the slice of exports.Service the handlers use.
type ExportService interface {
	Tables() []exports.Table
	Export(ctx context.Context, table string) (*exports.Download, error)
}

func ExportPage(svc ExportService, store *exports.Store, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(r.Context(), w, "export.html", views.ExportPage{
			Status: store.Status(),
			Busy:   store.Busy(),
			Draft:  store.Draft(),
			Tables: svc.Tables(),
		})
	}
}

// DownloadExport streams a table's CSV as an attachment. Failures bounce back
// to the export page, whose status line carries the error and whose table
// selection keeps the rejected choice.
func DownloadExport(svc ExportService, store *exports.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		table := r.URL.Query().Get("table")
		download, err := svc.Export(r.Context(), table)
		if err != nil {
			store.SetDraft(map[string]string{"export.table": table})
			redirect(w, r, exportPage)
			return
		}
		store.ClearDraft()
		w.Header().Set("Content-Type", download.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
		_, _ = w.Write(download.Data)
	}
}
