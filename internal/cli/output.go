package cli

import (
	"fmt"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/ui"
)

func printProductPage(page *api.ProductPage) {
	lines := []string{fmt.Sprintf("%-10s %-12s %-28s %9s %9s %7s",
		"ID", "CATEGORY", "TITLE", "ORIGINAL", "PRICE", "STATUS")}
	for _, p := range page.Products {
		status := "off"
		if p.Enabled() {
			status = "on"
		}
		lines = append(lines, fmt.Sprintf("%-10s %-12s %-28s %9d %9d %7s",
			clip(p.ID, 10), clip(p.Category, 12), clip(p.Title, 28), p.OriginPrice, p.Price, status))
	}
	if len(page.Products) == 0 {
		lines = append(lines, "(nothing on this page)")
	}
	pg := page.Pagination
	lines = append(lines, "", fmt.Sprintf("page %d/%d", pg.CurrentPage, pg.TotalPages))
	ui.Panel(lines)
}

func printProduct(p *model.Product) {
	lines := []string{
		p.Title,
		fmt.Sprintf("id:        %s", p.ID),
		fmt.Sprintf("category:  %s", p.Category),
		fmt.Sprintf("price:     %d (was %d) per %s", p.Price, p.OriginPrice, p.Unit),
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	ui.Panel(lines)
}

func printCart(cart *model.Cart) {
	if len(cart.Carts) == 0 {
		ui.Panel([]string{"cart is empty"})
		return
	}
	lines := []string{fmt.Sprintf("%-10s %-28s %5s %10s", "ITEM", "PRODUCT", "QTY", "TOTAL")}
	for _, it := range cart.Carts {
		lines = append(lines, fmt.Sprintf("%-10s %-28s %5d %10.0f",
			clip(it.ID, 10), clip(it.Product.Title, 28), it.Qty, it.FinalTotal))
	}
	lines = append(lines, "", fmt.Sprintf("total: %.0f", cart.FinalTotal))
	ui.Panel(lines)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
