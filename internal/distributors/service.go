package distributors

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/stockdeck/dashboard/internal/backend"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/locks"
	"github.com/stockdeck/dashboard/pkg/logger"
)

const lockDistributors = "distributors"

func lockOfferings(distributorID int64) string {
	return fmt.Sprintf("distributor:%d", distributorID)
}

type backendAPI interface {
	ListDistributors(ctx context.Context) ([]backend.Distributor, error)
	CreateDistributor(ctx context.Context, name string) (*backend.CreatedDistributor, error)
	DeleteDistributor(ctx context.Context, distributorID int64) error
	ListDistributorItems(ctx context.Context, distributorID int64) ([]backend.Offering, error)
	AddDistributorItem(ctx context.Context, distributorID, itemID int64, cost decimal.Decimal) error
	UpdateOfferingPrice(ctx context.Context, distributorID, itemID int64, cost decimal.Decimal) error
	ListItemOfferings(ctx context.Context, itemID int64) ([]backend.ItemOffer, error)
	RestockQuote(ctx context.Context, itemID int64, quantity int) (*backend.RestockQuote, error)
}

// Service is the single writer for the distributor store. Offering mutations
// re-fetch only the touched distributor's snapshot; distributor create/delete
// re-fetches the list and fans out over every distributor again.
type Service struct {
	api         backendAPI
	store       *Store
	locks       *locks.Keyed
	logg        *logger.Logger
	fanOutLimit int
}

func NewService(api backendAPI, store *Store, keyed *locks.Keyed, logg *logger.Logger, fanOutLimit int) (*Service, error) {
	if api == nil {
		return nil, fmt.Errorf("backend client required")
	}
	if store == nil {
		return nil, fmt.Errorf("distributor store required")
	}
	if keyed == nil {
		return nil, fmt.Errorf("keyed locks required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if fanOutLimit < 1 {
		return nil, fmt.Errorf("fan-out limit must be at least 1, got %d", fanOutLimit)
	}
	return &Service{api: api, store: store, locks: keyed, logg: logg, fanOutLimit: fanOutLimit}, nil
}

// OfferingInput carries a parsed add-offering or update-price form.
type OfferingInput struct {
	DistributorID int64
	ItemID        int64
	Cost          decimal.Decimal
}

// RefreshAll replaces the distributor list, then fetches every distributor's
// offerings under a bounded-concurrency group. A failed per-distributor fetch
// yields an empty snapshot for that distributor and does not fail the batch.
func (s *Service) RefreshAll(ctx context.Context) error {
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	list, err := s.api.ListDistributors(ctx)
	if err != nil {
		s.store.SetStatus("Error loading distributors: " + pkgerrors.MessageOf(err))
		return err
	}

	offerings := s.fetchAllOfferings(ctx, list)
	s.store.ReplaceAll(list, offerings)
	s.store.SetStatus("Distributors loaded successfully")
	return nil
}

func (s *Service) fetchAllOfferings(ctx context.Context, list []backend.Distributor) map[int64][]backend.Offering {
	results := make([][]backend.Offering, len(list))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanOutLimit)
	for i, d := range list {
		i, d := i, d
		g.Go(func() error {
			items, err := s.api.ListDistributorItems(gctx, d.ID)
			if err != nil {
				s.logg.Warn(s.logg.WithField(gctx, "distributor_id", d.ID), "offerings fetch failed, keeping empty snapshot")
				results[i] = []backend.Offering{}
				return nil
			}
			results[i] = items
			return nil
		})
	}
	_ = g.Wait()

	offerings := make(map[int64][]backend.Offering, len(list))
	for i, d := range list {
		offerings[d.ID] = results[i]
	}
	return offerings
}

func (s *Service) AddDistributor(ctx context.Context, name string) error {
	if !s.locks.TryAcquire(lockDistributors) {
		return s.busyStatus("distributors")
	}
	defer s.locks.Release(lockDistributors)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	created, err := s.api.CreateDistributor(ctx, name)
	if err != nil {
		s.store.SetStatus("Error adding distributor: " + pkgerrors.MessageOf(err))
		return err
	}

	if err := s.refreshList(ctx); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "distributor_id", created.ID), "distributor re-fetch after create failed")
	}
	s.store.SetStatus("Distributor added successfully")
	return nil
}

func (s *Service) DeleteDistributor(ctx context.Context, distributorID int64) error {
	if !s.locks.TryAcquire(lockDistributors) {
		return s.busyStatus("distributors")
	}
	defer s.locks.Release(lockDistributors)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.DeleteDistributor(ctx, distributorID); err != nil {
		s.store.SetStatus("Error deleting distributor: " + pkgerrors.MessageOf(err))
		return err
	}
	if err := s.refreshList(ctx); err != nil {
		s.logg.Warn(ctx, "distributor re-fetch after delete failed")
	}
	s.store.SetStatus("Distributor deleted successfully")
	return nil
}

// AddOffering adds an item to one distributor's catalog. Only that
// distributor's offerings snapshot is staled, so only it is re-fetched.
func (s *Service) AddOffering(ctx context.Context, input OfferingInput) error {
	key := lockOfferings(input.DistributorID)
	if !s.locks.TryAcquire(key) {
		return s.busyStatus("offering")
	}
	defer s.locks.Release(key)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.AddDistributorItem(ctx, input.DistributorID, input.ItemID, input.Cost); err != nil {
		s.store.SetStatus("Error adding item: " + pkgerrors.MessageOf(err))
		return err
	}
	s.refreshOfferings(ctx, input.DistributorID)
	s.store.SetStatus("Item added to distributor successfully")
	return nil
}

func (s *Service) UpdatePrice(ctx context.Context, input OfferingInput) error {
	key := lockOfferings(input.DistributorID)
	if !s.locks.TryAcquire(key) {
		return s.busyStatus("offering")
	}
	defer s.locks.Release(key)
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	if err := s.api.UpdateOfferingPrice(ctx, input.DistributorID, input.ItemID, input.Cost); err != nil {
		s.store.SetStatus("Error updating price: " + pkgerrors.MessageOf(err))
		return err
	}
	s.refreshOfferings(ctx, input.DistributorID)
	s.store.SetStatus("Price updated successfully")
	return nil
}

// ItemOfferings loads every distributor offering the given item, cheapest
// first, into the store.
func (s *Service) ItemOfferings(ctx context.Context, itemID int64) error {
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	offers, err := s.api.ListItemOfferings(ctx, itemID)
	if err != nil {
		s.store.SetStatus("Error loading offerings: " + pkgerrors.MessageOf(err))
		return err
	}
	s.store.ReplaceItemOffers(itemID, offers)
	s.store.SetStatus(fmt.Sprintf("Found %d offerings for item %d", len(offers), itemID))
	return nil
}

// RestockQuote asks the backend for the cheapest way to restock quantity
// units of an item and reports the answer as a status line.
func (s *Service) RestockQuote(ctx context.Context, itemID int64, quantity int) error {
	s.store.SetBusy(true)
	defer s.store.SetBusy(false)

	quote, err := s.api.RestockQuote(ctx, itemID, quantity)
	if err != nil {
		s.store.SetStatus("Error getting restock price: " + pkgerrors.MessageOf(err))
		return err
	}
	if quote.CheapestOption == nil {
		err := pkgerrors.New(pkgerrors.CodeRejected, "Failed to get restock price")
		s.store.SetStatus("Error: " + err.Message())
		return err
	}
	s.store.SetStatus(fmt.Sprintf("Cheapest restock: %s - $%s",
		quote.CheapestOption.DistributorName,
		quote.CheapestOption.TotalCost.StringFixed(2)))
	return nil
}

func (s *Service) refreshList(ctx context.Context) error {
	list, err := s.api.ListDistributors(ctx)
	if err != nil {
		return err
	}
	s.store.ReplaceAll(list, s.fetchAllOfferings(ctx, list))
	return nil
}

func (s *Service) refreshOfferings(ctx context.Context, distributorID int64) {
	items, err := s.api.ListDistributorItems(ctx, distributorID)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "distributor_id", distributorID), "offerings re-fetch failed")
		return
	}
	s.store.ReplaceOfferings(distributorID, items)
}

func (s *Service) busyStatus(what string) error {
	err := pkgerrors.New(pkgerrors.CodeBusy, fmt.Sprintf("another %s mutation is in flight", what))
	s.store.SetStatus("Error: " + err.Message())
	return err
}
