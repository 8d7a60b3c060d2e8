package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stockdeck/dashboard/internal/exports"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
)

type stubExportService struct {
	download *exports.Download
	err      error
	last     string
}

func (s *stubExportService) Tables() []exports.Table {
	return []exports.Table{{Name: "items", Label: "Items"}}
}

func (s *stubExportService) Export(ctx context.Context, table string) (*exports.Download, error) {
	s.last = table
	return s.download, s.err
}

func TestDownloadExportStreamsAttachment(t *testing.T) {
	svc := &stubExportService{download: &exports.Download{
		Filename:    "items.csv",
		ContentType: "text/csv",
		Data:        []byte("id,name\n1,Widget\n"),
	}}
	store := exports.NewStore()
	store.SetDraft(map[string]string{"export.table": "items"})

	req := httptest.NewRequest(http.MethodGet, "/export/download?table=items", nil)
	rec := httptest.NewRecorder()
	DownloadExport(svc, store)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.last != "items" {
		t.Fatalf("expected table items, got %q", svc.last)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="items.csv"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "id,name\n1,Widget\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
	if draft := store.Draft(); draft != nil {
		t.Fatalf("expected cleared draft after download, got %v", draft)
	}
}

func TestDownloadExportFailureRedirectsBackKeepingSelection(t *testing.T) {
	svc := &stubExportService{err: pkgerrors.New(pkgerrors.CodeValidation, "Invalid table name")}
	store := exports.NewStore()

	req := httptest.NewRequest(http.MethodGet, "/export/download?table=users", nil)
	rec := httptest.NewRecorder()
	DownloadExport(svc, store)(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/export" {
		t.Fatalf("expected redirect to /export, got %q", loc)
	}
	if got := store.Draft()["export.table"]; got != "users" {
		t.Fatalf("expected rejected table preserved, got %q", got)
	}
}
