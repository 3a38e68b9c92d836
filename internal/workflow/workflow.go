package workflow

import (
	"context"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/catalog"
	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/notify"
)

// ProductAPI is the slice of the API client the workflows call.
type ProductAPI interface {
	CreateProduct(ctx context.Context, p model.Product) error
	UpdateProduct(ctx context.Context, id string, p model.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// Confirmer asks the user to confirm a destructive action before it runs.
type Confirmer interface {
	Confirm(prompt string) bool
}

// AuthHandler routes authentication failures seen during a mutation into the
// same path as a failed session probe. Satisfied by *session.Guard.
type AuthHandler interface {
	HandleAuthFailure(err error) bool
}

// Draft is the user-entered form state for create and edit. Numeric fields
// stay text until submission; coercion happens once, here.
type Draft struct {
	Title       string
	Category    string
	Unit        string
	Description string
	Content     string
	OriginPrice string
	Price       string
	Enabled     bool
	ImageURL    string
}

// DraftFrom pre-fills a draft from an existing product for editing.
func DraftFrom(p model.Product) Draft {
	return Draft{
		Title:       p.Title,
		Category:    p.Category,
		Unit:        p.Unit,
		Description: p.Description,
		Content:     p.Content,
		OriginPrice: strconv.Itoa(p.OriginPrice),
		Price:       strconv.Itoa(p.Price),
		Enabled:     p.Enabled(),
		ImageURL:    p.ImageURL,
	}
}

// Product coerces the draft into the wire model. Malformed numeric input
// blocks submission with a ValidationError; nothing is dispatched.
func (d Draft) Product() (model.Product, error) {
	if strings.TrimSpace(d.Title) == "" {
		return model.Product{}, &api.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	originPrice, err := coercePrice("origin_price", d.OriginPrice)
	if err != nil {
		return model.Product{}, err
	}
	price, err := coercePrice("price", d.Price)
	if err != nil {
		return model.Product{}, err
	}

	enabled := 0
	if d.Enabled {
		enabled = 1
	}
	return model.Product{
		Title:       strings.TrimSpace(d.Title),
		Category:    strings.TrimSpace(d.Category),
		Unit:        strings.TrimSpace(d.Unit),
		Description: d.Description,
		Content:     d.Content,
		OriginPrice: originPrice,
		Price:       price,
		IsEnabled:   enabled,
		ImageURL:    strings.TrimSpace(d.ImageURL),
	}, nil
}

func coercePrice(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &api.ValidationError{Field: field, Reason: "is required"}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &api.ValidationError{Field: field, Reason: "must be a number"}
	}
	if f < 0 {
		return 0, &api.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return int(f), nil
}

// Workflows bundles the three product mutations with their shared refresh
// and notification discipline. No state is ever applied optimistically, so
// a failure rolls nothing back.
type Workflows struct {
	api      ProductAPI
	list     *catalog.Controller
	notifier notify.Notifier
	auth     AuthHandler
	confirm  Confirmer
	log      *zap.Logger
}

// New wires the workflows. log may be zap.NewNop().
func New(papi ProductAPI, list *catalog.Controller, notifier notify.Notifier, auth AuthHandler, confirm Confirmer, log *zap.Logger) *Workflows {
	return &Workflows{api: papi, list: list, notifier: notifier, auth: auth, confirm: confirm, log: log}
}

// Create validates the draft, creates the product, and refreshes page 1.
// The server decides placement, so the listing returns to the first page.
// A nil return means the caller may close its form.
func (w *Workflows) Create(ctx context.Context, d Draft) error {
	p, err := d.Product()
	if err != nil {
		w.notifier.Notify(notify.Warning("Check the form", api.UserMessage(err)))
		return err
	}
	if err := w.api.CreateProduct(ctx, p); err != nil {
		w.fail("Create failed", err)
		return err
	}
	w.notifier.Notify(notify.Success("Product created", p.Title))
	return w.list.FetchPage(ctx, 1)
}

// Update validates the draft, updates the product, and refreshes the page
// the user is viewing.
func (w *Workflows) Update(ctx context.Context, id string, d Draft) error {
	p, err := d.Product()
	if err != nil {
		w.notifier.Notify(notify.Warning("Check the form", api.UserMessage(err)))
		return err
	}
	p.ID = id
	if err := w.api.UpdateProduct(ctx, id, p); err != nil {
		w.fail("Update failed", err)
		return err
	}
	w.notifier.Notify(notify.Success("Product updated", p.Title))
	return w.list.Refresh(ctx)
}

// Delete asks for confirmation, deletes, and refreshes. Removing the last
// row of a page steps back one page so the user is not left staring at an
// empty list; the target page is known before the delete, so exactly one
// fetch is issued. Declining the prompt does nothing at all.
func (w *Workflows) Delete(ctx context.Context, p model.Product) error {
	if !w.confirm.Confirm("Delete " + p.Title + "?") {
		return nil
	}
	page := w.list.CurrentPage()
	if w.list.Len() == 1 && page > 1 {
		page--
	}
	if err := w.api.DeleteProduct(ctx, p.ID); err != nil {
		w.fail("Delete failed", err)
		return err
	}
	w.notifier.Notify(notify.Success("Product deleted", p.Title))
	return w.list.FetchPage(ctx, page)
}

func (w *Workflows) fail(title string, err error) {
	w.log.Warn("mutation failed", zap.String("action", title), zap.Error(err))
	if w.auth != nil && w.auth.HandleAuthFailure(err) {
		return // guard already notified and redirected
	}
	w.notifier.Notify(notify.Error(title, api.UserMessage(err)))
}
