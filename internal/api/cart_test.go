package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keybtech/shopcli/internal/model"
)

func TestCart_Read(t *testing.T) {
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/testshop/cart", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{
			"carts":[{"id":"c1","product_id":"p1","qty":2,"total":1980,"final_total":1980,
				"product":{"id":"p1","title":"Keycap Set","price":990}}],
			"total":1980,"final_total":1980}}`))
	}))

	cart, err := c.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Carts, 1)
	assert.Equal(t, 2, cart.Carts[0].Qty)
	assert.Equal(t, "Keycap Set", cart.Carts[0].Product.Title)
	assert.Equal(t, 1980.0, cart.FinalTotal)
}

func TestAddToCart_Payload(t *testing.T) {
	var got cartPayload
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, c.AddToCart(context.Background(), "p1", 3))
	assert.Equal(t, "p1", got.Data.ProductID)
	assert.Equal(t, 3, got.Data.Qty)
}

func TestCartQuantity_RejectedLocally(t *testing.T) {
	dispatched := false
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dispatched = true
		w.Write([]byte(`{"success":true}`))
	}))

	var valErr *ValidationError
	assert.ErrorAs(t, c.AddToCart(context.Background(), "p1", 0), &valErr)
	assert.ErrorAs(t, c.UpdateCartItem(context.Background(), "c1", "p1", -2), &valErr)
	assert.False(t, dispatched, "invalid quantity never reaches the wire")
}

func TestRemoveAndClearCart_Routes(t *testing.T) {
	var paths []string
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))

	require.NoError(t, c.RemoveCartItem(context.Background(), "c1"))
	require.NoError(t, c.ClearCart(context.Background()))
	assert.Equal(t, []string{"/api/testshop/cart/c1", "/api/testshop/carts"}, paths)
}

func TestSubmitOrder(t *testing.T) {
	var got struct {
		Data model.Order `json:"data"`
	}
	c := newTestClient(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/testshop/order", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"orderId":"ord-77"}`))
	}))

	order := model.Order{
		User:    model.OrderUser{Name: "Kay", Email: "kay@example.com", Tel: "0912345678", Address: "Somewhere 1"},
		Message: "leave at door",
	}
	id, err := c.SubmitOrder(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "ord-77", id)
	assert.Equal(t, order, got.Data)
}
