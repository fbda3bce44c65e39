package market

import (
	"context"
	"strconv"
)

// ListOrders returns the current user's orders as buyer.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := c.get(ctx, "/api/market/orders/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTrade buys a product.
func (c *Client) CreateTrade(ctx context.Context, productID int64) (*TradeResponse, error) {
	var out TradeResponse
	payload := map[string]int64{"product_id": productID}
	if err := c.postJSON(ctx, "/api/market/orders/create_trade/", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ConfirmReceipt completes an order as its buyer.
func (c *Client) ConfirmReceipt(ctx context.Context, orderID int64) (*ConfirmResponse, error) {
	var out ConfirmResponse
	path := "/api/market/orders/" + strconv.FormatInt(orderID, 10) + "/confirm_receipt/"
	if err := c.postJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
