package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stockdeck/dashboard/pkg/config"
	pkgerrors "github.com/stockdeck/dashboard/pkg/errors"
	"github.com/stockdeck/dashboard/pkg/metrics"
)

// Client translates typed dashboard operations into HTTP calls against the
// remote inventory API. Every operation returns either a parsed payload or a
// typed error; callers never inspect response shapes themselves.
type Client struct {
	baseURL string
	http    *http.Client
	metrics *metrics.BackendMetrics
}

func NewClient(cfg config.BackendConfig, m *metrics.BackendMetrics) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		metrics: m,
	}, nil
}

func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	return getList[Item](ctx, c, "items.list", "/items")
}

func (c *Client) CreateItem(ctx context.Context, name string) (*CreatedItem, error) {
	raw, err := c.do(ctx, "items.create", http.MethodPost, "/items", map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	var created CreatedItem
	if err := json.Unmarshal(raw, &created); err != nil || created.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "create item response missing id")
	}
	return &created, nil
}

func (c *Client) ListInventory(ctx context.Context) ([]InventoryRecord, error) {
	return getList[InventoryRecord](ctx, c, "inventory.list", "/inventory")
}

func (c *Client) ListOutOfStock(ctx context.Context) ([]InventoryRecord, error) {
	return getList[InventoryRecord](ctx, c, "inventory.out_of_stock", "/inventory/out-of-stock")
}

func (c *Client) ListOverstocked(ctx context.Context) ([]InventoryRecord, error) {
	return getList[InventoryRecord](ctx, c, "inventory.overstocked", "/inventory/overstocked")
}

func (c *Client) ListLowStock(ctx context.Context) ([]InventoryRecord, error) {
	return getList[InventoryRecord](ctx, c, "inventory.low_stock", "/inventory/low-stock")
}

func (c *Client) GetInventoryRecord(ctx context.Context, itemID int64) (*InventoryRecord, error) {
	raw, err := c.do(ctx, "inventory.get", http.MethodGet, fmt.Sprintf("/inventory/%d", itemID), nil)
	if err != nil {
		return nil, err
	}
	var record InventoryRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRejected, err, "unexpected inventory record shape")
	}
	return &record, nil
}

func (c *Client) CreateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error {
	return c.mutate(ctx, "inventory.create", http.MethodPost, "/inventory", map[string]any{
		"itemId":   itemID,
		"stock":    stock,
		"capacity": capacity,
	})
}

func (c *Client) UpdateInventoryRecord(ctx context.Context, itemID int64, stock, capacity int) error {
	return c.mutate(ctx, "inventory.update", http.MethodPut, "/inventory", map[string]any{
		"itemId":   itemID,
		"stock":    stock,
		"capacity": capacity,
	})
}

func (c *Client) DeleteInventoryRecord(ctx context.Context, itemID int64) error {
	return c.mutate(ctx, "inventory.delete", http.MethodDelete, fmt.Sprintf("/inventory/%d", itemID), nil)
}

func (c *Client) ListDistributors(ctx context.Context) ([]Distributor, error) {
	return getList[Distributor](ctx, c, "distributors.list", "/distributors")
}

func (c *Client) CreateDistributor(ctx context.Context, name string) (*CreatedDistributor, error) {
	raw, err := c.do(ctx, "distributors.create", http.MethodPost, "/distributors", map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	var created CreatedDistributor
	if err := json.Unmarshal(raw, &created); err != nil || created.ID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "create distributor response missing id")
	}
	return &created, nil
}

func (c *Client) DeleteDistributor(ctx context.Context, distributorID int64) error {
	return c.mutate(ctx, "distributors.delete", http.MethodDelete, fmt.Sprintf("/distributors/%d", distributorID), nil)
}

func (c *Client) ListDistributorItems(ctx context.Context, distributorID int64) ([]Offering, error) {
	return getList[Offering](ctx, c, "distributors.items", fmt.Sprintf("/distributors/%d/items", distributorID))
}

func (c *Client) AddDistributorItem(ctx context.Context, distributorID, itemID int64, cost decimal.Decimal) error {
	return c.mutate(ctx, "distributors.add_item", http.MethodPost, fmt.Sprintf("/distributors/%d/items", distributorID), map[string]any{
		"itemId": itemID,
		"cost":   cost.InexactFloat64(),
	})
}

func (c *Client) UpdateOfferingPrice(ctx context.Context, distributorID, itemID int64, cost decimal.Decimal) error {
	return c.mutate(ctx, "distributors.update_price", http.MethodPut, fmt.Sprintf("/distributors/%d/items/%d/price", distributorID, itemID), map[string]any{
		"cost": cost.InexactFloat64(),
	})
}

func (c *Client) ListItemOfferings(ctx context.Context, itemID int64) ([]ItemOffer, error) {
	return getList[ItemOffer](ctx, c, "items.offerings", fmt.Sprintf("/items/%d/offerings", itemID))
}

func (c *Client) RestockQuote(ctx context.Context, itemID int64, quantity int) (*RestockQuote, error) {
	path := fmt.Sprintf("/items/%d/restock-price?quantity=%d", itemID, quantity)
	raw, err := c.do(ctx, "items.restock_quote", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var quote RestockQuote
	if err := json.Unmarshal(raw, &quote); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRejected, err, "unexpected restock quote shape")
	}
	return &quote, nil
}

// ExportTable fetches the raw CSV stream for one of the exportable tables.
func (c *Client) ExportTable(ctx context.Context, table string) ([]byte, error) {
	return c.do(ctx, "export.table", http.MethodGet, "/export/"+url.PathEscape(table), nil)
}

// mutationAck is the backend's flat success/error envelope: a success carries
// an id or message marker, a rejection carries an error string.
type mutationAck struct {
	ID      *int64  `json:"id"`
	Message *string `json:"message"`
	Error   *string `json:"error"`
}

func (c *Client) mutate(ctx context.Context, op, method, path string, payload any) error {
	raw, err := c.do(ctx, op, method, path, payload)
	if err != nil {
		return err
	}
	var ack mutationAck
	if err := json.Unmarshal(raw, &ack); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRejected, err, "unexpected mutation response shape")
	}
	if ack.ID == nil && ack.Message == nil {
		return pkgerrors.New(pkgerrors.CodeRejected, "mutation response missing success marker")
	}
	return nil
}

func getList[T any](ctx context.Context, c *Client, op, path string) ([]T, error) {
	raw, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeRejected, err, "unexpected collection shape")
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(op, string(pkgerrors.CodeUnavailable))
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, op+" call failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.IncFailure(op, string(pkgerrors.CodeUnavailable))
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnavailable, err, "read response body")
	}

	if rejected := rejection(resp.StatusCode, raw); rejected != nil {
		c.metrics.IncFailure(op, string(rejected.Code()))
		return nil, rejected
	}

	c.metrics.IncSuccess(op)
	return raw, nil
}

// rejection surfaces an application-level error payload verbatim, and treats
// any other non-success status as a rejection with whatever body came back.
func rejection(status int, raw []byte) *pkgerrors.Error {
	var envelope struct {
		Error *string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		return pkgerrors.New(pkgerrors.CodeRejected, *envelope.Error).WithDetails(map[string]any{"status": status})
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return pkgerrors.New(pkgerrors.CodeRejected, msg).WithDetails(map[string]any{"status": status})
	}
	return nil
}
