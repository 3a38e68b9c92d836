package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/keybtech/shopcli/internal/model"
)

type cartPayload struct {
	Data struct {
		ProductID string `json:"product_id"`
		Qty       int    `json:"qty"`
	} `json:"data"`
}

// Cart fetches the current cart contents.
func (c *Client) Cart(ctx context.Context) (*model.Cart, error) {
	var out struct {
		Data model.Cart `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, c.shopPath("/cart"), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// AddToCart puts qty units of a product into the cart.
func (c *Client) AddToCart(ctx context.Context, productID string, qty int) error {
	if qty < 1 {
		return &ValidationError{Field: "qty", Reason: "must be at least 1"}
	}
	var body cartPayload
	body.Data.ProductID = productID
	body.Data.Qty = qty
	return c.do(ctx, http.MethodPost, c.shopPath("/cart"), body, nil)
}

// UpdateCartItem sets the quantity of an existing cart row.
func (c *Client) UpdateCartItem(ctx context.Context, itemID, productID string, qty int) error {
	if qty < 1 {
		return &ValidationError{Field: "qty", Reason: "must be at least 1"}
	}
	var body cartPayload
	body.Data.ProductID = productID
	body.Data.Qty = qty
	return c.do(ctx, http.MethodPut, c.shopPath("/cart/"+url.PathEscape(itemID)), body, nil)
}

// RemoveCartItem deletes a single cart row.
func (c *Client) RemoveCartItem(ctx context.Context, itemID string) error {
	return c.do(ctx, http.MethodDelete, c.shopPath("/cart/"+url.PathEscape(itemID)), nil, nil)
}

// ClearCart empties the whole cart.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, c.shopPath("/carts"), nil, nil)
}

// SubmitOrder places an order against the current cart and returns the
// service-assigned order id.
func (c *Client) SubmitOrder(ctx context.Context, order model.Order) (string, error) {
	body := struct {
		Data model.Order `json:"data"`
	}{Data: order}
	var out struct {
		OrderID string `json:"orderId"`
	}
	if err := c.do(ctx, http.MethodPost, c.shopPath("/order"), body, &out); err != nil {
		return "", err
	}
	return out.OrderID, nil
}
