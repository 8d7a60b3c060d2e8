package controllers

import (
	"context"
	"net/http"

	"github.com/samber/lo"

	"github.com/stockdeck/dashboard/api/validators"
	"github.com/stockdeck/dashboard/api/views"
	"github.com/stockdeck/dashboard/internal/backend"
	"github.com/stockdeck/dashboard/internal/distributors"
	"github.com/stockdeck/dashboard/pkg/logger"
)

const distributorsPage = "/distributors"

// DistributorService is the slice of distributors.Service the handlers use.
type DistributorService interface {
	RefreshAll(ctx context.Context) error
	AddDistributor(ctx context.Context, name string) error
	DeleteDistributor(ctx context.Context, distributorID int64) error
	AddOffering(ctx context.Context, input distributors.OfferingInput) error
	UpdatePrice(ctx context.Context, input distributors.OfferingInput) error
	ItemOfferings(ctx context.Context, itemID int64) error
	RestockQuote(ctx context.Context, itemID int64, quantity int) error
}

func DistributorsPage(store *distributors.Store, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := store.Distributors()
		offersFor, offers := store.ItemOffers()
		renderer.Render(r.Context(), w, "distributors.html", views.DistributorsPage{
			Status:       store.Status(),
			Busy:         store.Busy(),
			Draft:        store.Draft(),
			Distributors: list,
			Groups: lo.Map(list, func(d backend.Distributor, _ int) views.DistributorGroup {
				return views.DistributorGroup{Distributor: d, Offerings: store.OfferingsFor(d.ID)}
			}),
			ItemOffersFor: offersFor,
			ItemOffers:    offers,
		})
	}
}

func RefreshDistributors(svc DistributorService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.RefreshAll(r.Context()); err != nil {
			logg.Warn(r.Context(), "distributor refresh failed")
		}
		redirect(w, r, distributorsPage)
	}
}

type addDistributorForm struct {
	Name string `form:"name" validate:"required"`
}

func AddDistributor(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "addDistributor", "name")
		var form addDistributorForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		finishMutation(w, r, store, distributorsPage, draft, svc.AddDistributor(r.Context(), form.Name))
	}
}

type deleteDistributorForm struct {
	DistributorID string `form:"distributorId" validate:"required"`
}

func DeleteDistributor(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form deleteDistributorForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), nil) {
			return
		}
		id, err := parseID("distributorId", form.DistributorID)
		if rejectInvalid(w, r, store, distributorsPage, err, nil) {
			return
		}
		finishMutation(w, r, store, distributorsPage, nil, svc.DeleteDistributor(r.Context(), id))
	}
}

type offeringForm struct {
	DistributorID string `form:"distributorId" validate:"required"`
	ItemID        string `form:"itemId" validate:"required"`
	Cost          string `form:"cost" validate:"required"`
}

func (f offeringForm) parse() (distributors.OfferingInput, error) {
	distributorID, err := parseID("distributorId", f.DistributorID)
	if err != nil {
		return distributors.OfferingInput{}, err
	}
	itemID, err := parseID("itemId", f.ItemID)
	if err != nil {
		return distributors.OfferingInput{}, err
	}
	cost, err := parseCost(f.Cost)
	if err != nil {
		return distributors.OfferingInput{}, err
	}
	return distributors.OfferingInput{DistributorID: distributorID, ItemID: itemID, Cost: cost}, nil
}

func AddOffering(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "addOffering", "distributorId", "itemId", "cost")
		var form offeringForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		input, err := form.parse()
		if rejectInvalid(w, r, store, distributorsPage, err, draft) {
			return
		}
		finishMutation(w, r, store, distributorsPage, draft, svc.AddOffering(r.Context(), input))
	}
}

func UpdateOfferingPrice(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "updatePrice", "distributorId", "itemId", "cost")
		var form offeringForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		input, err := form.parse()
		if rejectInvalid(w, r, store, distributorsPage, err, draft) {
			return
		}
		finishMutation(w, r, store, distributorsPage, draft, svc.UpdatePrice(r.Context(), input))
	}
}

type restockForm struct {
	ItemID   string `form:"itemId" validate:"required"`
	Quantity string `form:"quantity" validate:"required"`
}

func RestockQuote(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "restock", "itemId", "quantity")
		var form restockForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		itemID, err := parseID("itemId", form.ItemID)
		if rejectInvalid(w, r, store, distributorsPage, err, draft) {
			return
		}
		quantity, err := parseCount("quantity", form.Quantity)
		if rejectInvalid(w, r, store, distributorsPage, err, draft) {
			return
		}
		finishMutation(w, r, store, distributorsPage, draft, svc.RestockQuote(r.Context(), itemID, quantity))
	}
}

type itemOfferingsForm struct {
	ItemID string `form:"itemId" validate:"required"`
}

func ItemOfferings(svc DistributorService, store *distributors.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft := draftValues(r, "lookup", "itemId")
		var form itemOfferingsForm
		if rejectInvalid(w, r, store, distributorsPage, validators.DecodeForm(r, &form), draft) {
			return
		}
		itemID, err := parseID("itemId", form.ItemID)
		if rejectInvalid(w, r, store, distributorsPage, err, draft) {
			return
		}
		finishMutation(w, r, store, distributorsPage, draft, svc.ItemOfferings(r.Context(), itemID))
	}
}
