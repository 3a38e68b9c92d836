package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keybtech/shopcli/internal/workflow"
)

// Field order inside the product form.
const (
	fieldTitle = iota
	fieldCategory
	fieldUnit
	fieldOriginPrice
	fieldPrice
	fieldImageURL
	fieldDescription
	fieldContent
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title", "Category", "Unit", "Original price", "Price", "Image URL", "Description", "Content",
}

// productForm is the inline create/edit form. id is empty for create.
type productForm struct {
	id      string
	inputs  [fieldCount]textinput.Model
	focus   int
	enabled bool
	errText string
}

func newProductForm(id string, d workflow.Draft) *productForm {
	f := &productForm{id: id, enabled: d.Enabled}
	values := [fieldCount]string{
		d.Title, d.Category, d.Unit, d.OriginPrice, d.Price, d.ImageURL, d.Description, d.Content,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 300
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[f.focus].Focus()
	return f
}

func (f *productForm) isNew() bool { return f.id == "" }

func (f *productForm) draft() workflow.Draft {
	return workflow.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Category:    f.inputs[fieldCategory].Value(),
		Unit:        f.inputs[fieldUnit].Value(),
		OriginPrice: f.inputs[fieldOriginPrice].Value(),
		Price:       f.inputs[fieldPrice].Value(),
		ImageURL:    f.inputs[fieldImageURL].Value(),
		Description: f.inputs[fieldDescription].Value(),
		Content:     f.inputs[fieldContent].Value(),
		Enabled:     f.enabled,
	}
}

func (f *productForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = ((i % fieldCount) + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// update consumes one key event; it reports whether the form swallowed it.
// Enter and esc are the caller's (submit/cancel), so they never reach here.
func (f *productForm) update(msg tea.Msg) (bool, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return true, nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return true, nil
		case "ctrl+e":
			f.enabled = !f.enabled
			return true, nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func (f *productForm) view() string {
	var b strings.Builder
	header := "Create product"
	if !f.isNew() {
		header = "Edit product"
	}
	b.WriteString(titleStyle.Render(header))
	if f.errText != "" {
		b.WriteString("  " + errorStyle.Render(f.errText))
	}
	b.WriteString("\n\n")

	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			b.WriteString(selectedStyle.Render(" " + label + " "))
		} else {
			b.WriteString(mutedStyle.Render(" " + label + " "))
		}
		b.WriteString(" " + f.inputs[i].View() + "\n")
	}

	badge := disabledBadge
	if f.enabled {
		badge = enabledBadge
	}
	b.WriteString("\n Enabled: " + badge + mutedStyle.Render("  (ctrl+e toggles)"))
	b.WriteString("\n" + helpStyle.Render(" tab next · shift+tab prev · enter save · esc cancel"))
	return b.String()
}
