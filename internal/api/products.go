package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/keybtech/shopcli/internal/model"
)

// ProductPage is one page of a product listing with its pagination metadata.
type ProductPage struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

// productData wraps mutations the way the service expects: {"data": {...}}.
type productData struct {
	Data model.Product `json:"data"`
}

// AdminProducts fetches one page of the admin product listing.
func (c *Client) AdminProducts(ctx context.Context, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	var out ProductPage
	p := c.shopPath("/admin/products") + "?page=" + url.QueryEscape(fmt.Sprint(page))
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product; the service assigns the id.
func (c *Client) CreateProduct(ctx context.Context, p model.Product) error {
	return c.do(ctx, http.MethodPost, c.shopPath("/admin/product"), productData{Data: p}, nil)
}

// UpdateProduct replaces the product with the given id.
func (c *Client) UpdateProduct(ctx context.Context, id string, p model.Product) error {
	return c.do(ctx, http.MethodPut, c.shopPath("/admin/product/"+url.PathEscape(id)), productData{Data: p}, nil)
}

// DeleteProduct removes the product with the given id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.shopPath("/admin/product/"+url.PathEscape(id)), nil, nil)
}

// Products fetches one page of the public storefront listing.
func (c *Client) Products(ctx context.Context, page int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	var out ProductPage
	p := c.shopPath("/products") + "?page=" + url.QueryEscape(fmt.Sprint(page))
	if err := c.do(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Product fetches a single storefront product by id.
func (c *Client) Product(ctx context.Context, id string) (*model.Product, error) {
	var out struct {
		Product model.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, c.shopPath("/product/"+url.PathEscape(id)), nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}
