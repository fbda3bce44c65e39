package market

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/devmarket/internal/client/transport"
)

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.api.Do(ctx, &transport.Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/api/market/categories/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDeviceModels returns the models of one category; categoryID 0 lists all.
func (c *Client) ListDeviceModels(ctx context.Context, categoryID int64) ([]DeviceModel, error) {
	var q url.Values
	if categoryID > 0 {
		q = url.Values{"category_id": {strconv.FormatInt(categoryID, 10)}}
	}
	var out []DeviceModel
	if err := c.get(ctx, "/api/market/device-models/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListProducts returns products on sale. With sellerID > 0 only that seller's
// products are returned.
func (c *Client) ListProducts(ctx context.Context, sellerID int64) ([]Product, error) {
	var q url.Values
	if sellerID > 0 {
		q = url.Values{"seller_id": {strconv.FormatInt(sellerID, 10)}}
	}
	var out []Product
	if err := c.get(ctx, "/api/market/products/", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/api/market/products/"+strconv.FormatInt(id, 10)+"/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Valuate prices a device from questionnaire answers.
func (c *Client) Valuate(ctx context.Context, req ValuationRequest) (*ValuationResponse, error) {
	var out ValuationResponse
	if err := c.postJSON(ctx, "/api/market/valuation/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
