package catalog

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/notify"
)

// Fetcher fetches one page of products. Satisfied by the API client's
// AdminProducts and Products methods.
type Fetcher func(ctx context.Context, page int) (*api.ProductPage, error)

// Controller owns the paginated product collection for one view. The
// displayed collection is a lagging snapshot of the server's truth,
// reconciled only by explicit re-fetch.
//
// Every fetch is tagged with a generation; a response only applies while its
// generation is still the newest one issued. Two interleaved fetches
// therefore resolve last-write-wins: the list can never end up showing a
// page that was requested before the one currently wanted.
type Controller struct {
	fetch    Fetcher
	notifier notify.Notifier
	log      *zap.Logger

	mu         sync.Mutex
	gen        uint64
	page       int
	items      []model.Product
	pagination model.Pagination
}

// New builds a controller around fetch. log may be zap.NewNop().
func New(fetch Fetcher, notifier notify.Notifier, log *zap.Logger) *Controller {
	return &Controller{fetch: fetch, notifier: notifier, log: log, page: 1}
}

// FetchPage loads the given page (clamped to 1). On failure the previously
// displayed list stays untouched and the notifier is informed; a response
// superseded by a newer request is discarded silently, as is one whose
// context was cancelled by navigating away.
func (c *Controller) FetchPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.gen++
	want := c.gen
	c.mu.Unlock()

	res, err := c.fetch(ctx, page)

	c.mu.Lock()
	defer c.mu.Unlock()

	if want != c.gen {
		// A newer request was issued while this one was in flight.
		c.log.Debug("discarding stale page response", zap.Int("page", page))
		return nil
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil // view went away, nobody is listening
		}
		c.log.Warn("page fetch failed", zap.Int("page", page), zap.Error(err))
		c.notifier.Notify(notify.Error("Could not load products", api.UserMessage(err)))
		return err
	}

	c.items = res.Products
	c.pagination = res.Pagination
	if res.Pagination.CurrentPage > 0 {
		c.page = res.Pagination.CurrentPage
	} else {
		c.page = page
	}
	return nil
}

// Refresh re-fetches the page currently viewed. After editing, the view
// returns to the same page rather than jumping to the first.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.FetchPage(ctx, c.CurrentPage())
}

// Items returns a copy of the displayed collection.
func (c *Controller) Items() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Product, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of rows on the displayed page.
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Pagination returns the displayed page descriptor.
func (c *Controller) Pagination() model.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pagination
}

// CurrentPage returns the page the user is viewing (1 before any fetch).
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}
