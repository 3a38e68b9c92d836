package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keybtech/shopcli/internal/model"
)

// productItem adapts a model.Product to bubbles/list.Item.
type productItem struct {
	model.Product
}

func (i productItem) rowText() string {
	row := fmt.Sprintf("%-12s %-28s %9d %9d  ",
		truncate(i.Category, 12), truncate(i.Title, 28), i.OriginPrice, i.Price)
	if i.Enabled() {
		return row + enabledBadge
	}
	return row + disabledBadge
}

// Implement list.Item interface
func (i productItem) FilterValue() string { return i.Title }

// productDelegate renders one product per line: category, title, prices,
// and the enabled badge, with the selection marker in front.
type productDelegate struct{}

func (d productDelegate) Height() int                               { return 1 }
func (d productDelegate) Spacing() int                              { return 0 }
func (d productDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d productDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(productItem)
	if !ok {
		return
	}
	row := it.rowText()
	if !it.Enabled() {
		row = disabledStyle.Render(row)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+row)
}

// newProductTable builds the list widget. Paging is server-driven (one wire
// page per widget load), so the widget's own chrome is switched off and its
// height always fits a full page.
func newProductTable() list.Model {
	l := list.New(nil, productDelegate{}, 72, 14)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// setProducts replaces the widget's rows and keeps the selection on a valid
// row after the page shrinks.
func setProducts(l *list.Model, products []model.Product) {
	items := make([]list.Item, 0, len(products))
	for _, p := range products {
		items = append(items, productItem{Product: p})
	}
	idx := l.Index()
	l.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	l.Select(idx)
}

// selectedProduct returns the row under the cursor, if any.
func selectedProduct(l list.Model) (model.Product, bool) {
	it, ok := l.SelectedItem().(productItem)
	if !ok {
		return model.Product{}, false
	}
	return it.Product, true
}
