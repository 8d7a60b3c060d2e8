package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
)

// pageStore is the slice of a page store the controllers touch directly:
// validation failures never reach a service, so the controller records the
// status line and the preserved field values itself.
type pageStore interface {
	SetStatus(status string)
	SetDraft(values map[string]string)
	ClearDraft()
}

func parseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a positive number")
	}
	return id, nil
}

func parseCount(field, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, field+" must be a non-negative number")
	}
	return n, nil
}

func parseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(raw)
	if err != nil || cost.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "cost must be a non-negative amount")
	}
	return cost, nil
}

// draftValues snapshots the raw submitted fields under "<form>.<field>" keys
// so a failed submission can be echoed back for correction.
func draftValues(r *http.Request, form string, fields ...string) map[string]string {
	_ = r.ParseForm()
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		values[form+"."+field] = strings.TrimSpace(r.Form.Get(field))
	}
	return values
}

// rejectInvalid records a pre-dispatch validation failure, keeps the
// submitted values as a draft, and sends the browser back to the page.
// Returns true when err was non-nil.
func rejectInvalid(w http.ResponseWriter, r *http.Request, store pageStore, page string, err error, draft map[string]string) bool {
	if err == nil {
		return false
	}
	store.SetStatus("Error: " + pkgerrors.MessageOf(err))
	store.SetDraft(draft)
	redirect(w, r, page)
	return true
}

// finishMutation redirects back to the page, preserving the submitted values
// when the mutation failed and clearing them when it succeeded.
func finishMutation(w http.ResponseWriter, r *http.Request, store pageStore, page string, draft map[string]string, err error) {
	if err != nil {
		store.SetDraft(draft)
	} else {
		store.ClearDraft()
	}
	redirect(w, r, page)
}

func redirect(w http.ResponseWriter, r *http.Request, page string) {
	http.Redirect(w, r, page, http.StatusSeeOther)
}
