package backend

import "github.com/shopspring/decimal"

// Item is one row of the catalog. IDs are assigned by the backend; the
// dashboard never originates identifiers.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// InventoryRecord joins an item with its stock level and capacity.
type InventoryRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	Capacity int    `json:"capacity"`
}

type Distributor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Offering is one item a distributor sells, with its cost.
type Offering struct {
	ItemID int64           `json:"id"`
	Name   string          `json:"name"`
	Cost   decimal.Decimal `json:"cost"`
}

// ItemOffer is one distributor offering a given item, cheapest first in the
// backend's response order.
type ItemOffer struct {
	DistributorID int64           `json:"id"`
	Name          string          `json:"name"`
	Cost          decimal.Decimal `json:"cost"`
}

// RestockQuote is the backend's precomputed cheapest-restock answer. The
// pricing policy is the backend's contract; the dashboard only displays it.
type RestockQuote struct {
	CheapestOption *RestockOption `json:"cheapestOption"`
}

type RestockOption struct {
	DistributorName string          `json:"distributorName"`
	TotalCost       decimal.Decimal `json:"totalCost"`
}

// CreatedItem echoes a successful item creation.
type CreatedItem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CreatedDistributor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
