package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/StellaShiina/inventory-ui/inventory"
)

// ItemsPage is the body of GET /api/items. The totals are the server's own;
// the dashboard derives its summary from Items instead.
type ItemsPage struct {
	Items           []inventory.Item `json:"items"`
	TotalValue      float64          `json:"total_value"`
	TotalQuantity   int              `json:"total_quantity"`
	TotalItemsCount int              `json:"total_items_count"`
}

func (c *Client) ListItems(ctx context.Context) (*ItemsPage, error) {
	var page ItemsPage
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &page); err != nil {
		return nil, err
	}
	if page.Items == nil {
		page.Items = []inventory.Item{}
	}
	return &page, nil
}

func (c *Client) GetItem(ctx context.Context, id int64) (inventory.Item, error) {
	var it inventory.Item
	err := c.do(ctx, http.MethodGet, itemPath(id), nil, &it)
	return it, err
}

// CreateItem returns the stored record with its server-assigned id.
func (c *Client) CreateItem(ctx context.Context, d inventory.Draft) (inventory.Item, error) {
	var it inventory.Item
	err := c.do(ctx, http.MethodPost, "/api/items", d, &it)
	return it, err
}

// UpdateItem returns the record as stored after the update.
func (c *Client) UpdateItem(ctx context.Context, id int64, d inventory.Draft) (inventory.Item, error) {
	var it inventory.Item
	err := c.do(ctx, http.MethodPut, itemPath(id), d, &it)
	return it, err
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, itemPath(id), nil, nil)
}

func (c *Client) Report(ctx context.Context) (inventory.Report, error) {
	var r inventory.Report
	err := c.do(ctx, http.MethodGet, "/api/reports/summary", nil, &r)
	return r, err
}

func itemPath(id int64) string {
	return fmt.Sprintf("/api/items/%d", id)
}
