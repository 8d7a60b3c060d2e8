package controllers

import (
	"context"
	"net/http"

	"github.com/stockdeck/dashboard/api/validators"
	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/queries"
)

const queriesPage = "/queries"

// QueryRunner is the slice of queries.Runner the handlers use.
type QueryRunner interface {
	Definitions() []queries.Definition
	Run(ctx context.Context, queryID string) error
	InspectRecord(ctx context.Context, itemID int64) error
}

func QueriesPage(runner QueryRunner, store *queries.Store, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.Render(r.Context(), w, "queries.html", views.QueriesPage{
			Status:  store.Status(),
			Busy:    store.Busy(),
			Draft:   store.Draft(),
			Queries: runner.Definitions(),
			Result:  store.Result(),
		})
	}
}

type runQueryForm struct {
	Query string `form:"query" validate:"required"`
}

func RunQuery(runner QueryRunner, store *queries.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "run", "query")
		var form runQueryForm
		if rejectInvalid(w, r, store, queriesPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		finishMutation(w, r, store, queriesPage, draft, runner.Run(r.Context(), form.Query))
	}
}

type inspectRecordForm struct {
	ItemID string `form:"itemId" validate:"required"`
}

func InspectRecord(runner QueryRunner, store *queries.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "inspect", "itemId")
		var form inspectRecordForm
		if rejectInvalid(w, r, store, queriesPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		itemID, err := parseID("itemId", form.ItemID)
		if rejectInvalid(w, r, store, queriesPage, err, draft) {
			return
		}
		finishMutation(w, r, store, queriesPage, draft, runner.InspectRecord(r.Context(), itemID))
	}
}
