package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/catalog"
	"github.com/keybtech/shopcli/internal/credential"
	"github.com/keybtech/shopcli/internal/model"
	"github.com/keybtech/shopcli/internal/notify"
	"github.com/keybtech/shopcli/internal/session"
	"github.com/keybtech/shopcli/internal/workflow"
)

// router bridges the session guard's navigation onto the TUI view switch.
// The guard runs inside command goroutines, so requested routes are parked
// here and applied back on the event loop.
type router struct {
	mu      sync.Mutex
	current session.Route
	pending []session.Route
}

func (r *router) Navigate(to session.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, to)
}

func (r *router) Current() session.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *router) take() (session.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return "", false
	}
	to := r.pending[len(r.pending)-1]
	r.pending = nil
	return to, true
}

func (r *router) set(to session.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = to
}

// confirmed satisfies workflow.Confirmer. The TUI collects the user's y/n in
// its own overlay before the workflow ever runs, so by then the answer is yes.
type confirmed struct{}

func (confirmed) Confirm(string) bool { return true }

type viewID int

const (
	viewLogin viewID = iota
	viewProducts
)

// Messages produced by command goroutines.
type guardDoneMsg struct{ ok bool }
type pageDoneMsg struct{}
type mutationDoneMsg struct{ err error }
type loginDoneMsg struct{ err error }

// Model is the admin panel: a guarded paginated product table with inline
// create/edit and delete confirmation.
type Model struct {
	client *api.Client
	creds  *credential.Store
	guard  *session.Guard
	list   *catalog.Controller
	wf     *workflow.Workflows
	queue  *notify.Queue
	rt     *router
	log    *zap.Logger

	view          viewID
	width, height int

	table         list.Model
	spin          spinner.Model
	loading       bool
	busy          bool
	form          *productForm
	confirmTarget *model.Product

	username textinput.Model
	password textinput.Model
	loginRow int

	toast *notify.Message
}

// NewModel wires the guard, list controller, and workflows around the given
// client and credential store.
func NewModel(client *api.Client, creds *credential.Store, log *zap.Logger) *Model {
	queue := &notify.Queue{}
	rt := &router{current: session.RouteAdminProducts}
	guard := session.New(creds, client, rt, queue, log)
	ctrl := catalog.New(client.AdminProducts, queue, log)
	wf := workflow.New(client, ctrl, queue, guard, confirmed{}, log)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	username := textinput.New()
	username.Prompt = "> "
	username.Placeholder = "name@example.com"
	username.Focus()

	password := textinput.New()
	password.Prompt = "> "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return &Model{
		client:   client,
		creds:    creds,
		guard:    guard,
		list:     ctrl,
		wf:       wf,
		queue:    queue,
		rt:       rt,
		log:      log,
		view:     viewProducts,
		table:    newProductTable(),
		spin:     sp,
		username: username,
		password: password,
	}
}

// Run starts the admin TUI.
func Run(client *api.Client, creds *credential.Store, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(client, creds, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.enterProducts())
}

// enterProducts re-runs the session guard; it fires on every navigation into
// the products view, never from cache.
func (m *Model) enterProducts() tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		return guardDoneMsg{ok: m.guard.Enter(context.Background())}
	}
}

func (m *Model) fetchPage(page int) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		_ = m.list.FetchPage(context.Background(), page)
		return pageDoneMsg{}
	}
}

func (m *Model) submitForm() tea.Cmd {
	f := m.form
	m.busy = true
	return func() tea.Msg {
		var err error
		if f.isNew() {
			err = m.wf.Create(context.Background(), f.draft())
		} else {
			err = m.wf.Update(context.Background(), f.id, f.draft())
		}
		return mutationDoneMsg{err: err}
	}
}

func (m *Model) deleteProduct(p model.Product) tea.Cmd {
	m.busy = true
	return func() tea.Msg {
		return mutationDoneMsg{err: m.wf.Delete(context.Background(), p)}
	}
}

func (m *Model) submitLogin() tea.Cmd {
	user, pass := m.username.Value(), m.password.Value()
	m.busy = true
	return func() tea.Msg {
		res, err := m.client.SignIn(context.Background(), user, pass)
		if err != nil {
			m.queue.Notify(notify.Error("Login failed", api.UserMessage(err)))
			return loginDoneMsg{err: err}
		}
		if err := m.creds.Save(res.Token, res.Expired); err != nil {
			m.queue.Notify(notify.Error("Login failed", "could not store credentials"))
			return loginDoneMsg{err: err}
		}
		m.queue.Notify(notify.Success("Welcome back", "signed in"))
		return loginDoneMsg{}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		// a wire page is at most ten rows; keep them all on one widget page
		h := msg.Height - 10
		if h < 12 {
			h = 12
		}
		m.table.SetSize(msg.Width-6, h)

	case spinner.TickMsg:
		if m.loading || m.busy {
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case guardDoneMsg:
		m.loading = false
		m.sync()
		if msg.ok {
			return m, tea.Batch(m.spin.Tick, m.fetchPage(1))
		}
		return m, nil

	case pageDoneMsg:
		m.loading = false
		setProducts(&m.table, m.list.Items())
		m.sync()
		return m, nil

	case mutationDoneMsg:
		m.busy = false
		m.confirmTarget = nil
		if msg.err == nil {
			m.form = nil
		} else if m.form != nil {
			// keep the form open so the user can fix the input
			m.form.errText = api.UserMessage(msg.err)
		}
		setProducts(&m.table, m.list.Items())
		m.sync()
		return m, nil

	case loginDoneMsg:
		m.busy = false
		m.sync()
		if msg.err == nil {
			m.view = viewProducts
			m.rt.set(session.RouteAdminProducts)
			return m, tea.Batch(m.spin.Tick, m.enterProducts())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.busy {
		return m, nil // one workflow at a time
	}

	// delete confirmation overlay
	if m.confirmTarget != nil {
		switch key.String() {
		case "y", "Y":
			target := *m.confirmTarget
			return m, tea.Batch(m.spin.Tick, m.deleteProduct(target))
		case "n", "N", "esc":
			m.confirmTarget = nil
		}
		return m, nil
	}

	// inline create/edit form
	if m.form != nil {
		switch key.String() {
		case "esc":
			m.form = nil
			return m, nil
		case "enter":
			return m, tea.Batch(m.spin.Tick, m.submitForm())
		}
		_, cmd := m.form.update(key)
		return m, cmd
	}

	if m.view == viewLogin {
		return m.handleLoginKey(key)
	}
	return m.handleProductsKey(key)
}

func (m *Model) handleLoginKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "tab", "shift+tab", "up", "down":
		m.loginRow = 1 - m.loginRow
		if m.loginRow == 0 {
			m.username.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.username.Blur()
		}
		return m, nil
	case "enter":
		if m.loginRow == 0 {
			m.loginRow = 1
			m.username.Blur()
			m.password.Focus()
			return m, nil
		}
		return m, tea.Batch(m.spin.Tick, m.submitLogin())
	}

	var cmd tea.Cmd
	if m.loginRow == 0 {
		m.username, cmd = m.username.Update(key)
	} else {
		m.password, cmd = m.password.Update(key)
	}
	return m, cmd
}

func (m *Model) handleProductsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	pg := m.list.Pagination()

	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h":
		if pg.HasPre && !m.loading {
			return m, tea.Batch(m.spin.Tick, m.fetchPage(pg.CurrentPage-1))
		}
		return m, nil
	case "right", "l":
		if pg.HasNext && !m.loading {
			return m, tea.Batch(m.spin.Tick, m.fetchPage(pg.CurrentPage+1))
		}
		return m, nil
	case "r":
		if !m.loading {
			return m, tea.Batch(m.spin.Tick, m.fetchPage(m.list.CurrentPage()))
		}
		return m, nil
	case "a":
		m.form = newProductForm("", workflow.Draft{Enabled: true})
		return m, nil
	case "e":
		if p, ok := selectedProduct(m.table); ok {
			m.form = newProductForm(p.ID, workflow.DraftFrom(p))
		}
		return m, nil
	case "d":
		if p, ok := selectedProduct(m.table); ok {
			m.confirmTarget = &p
		}
		return m, nil
	}

	// everything else (up/down, j/k, home/end) is the widget's
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(key)
	return m, cmd
}

// sync applies state changed by command goroutines: queued notifications
// become the toast, and a navigation requested by the guard switches views.
func (m *Model) sync() {
	if msgs := m.queue.Drain(); len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		m.toast = &last
	}
	if to, ok := m.rt.take(); ok && to == session.RouteLogin && m.view != viewLogin {
		m.view = viewLogin
		m.rt.set(session.RouteLogin)
		m.form = nil
		m.confirmTarget = nil
		m.loginRow = 0
		m.username.Focus()
		m.password.Blur()
	}
}

// ------- rendering -------

func (m *Model) View() string {
	var content string
	switch {
	case m.view == viewLogin:
		content = m.loginView()
	case m.form != nil:
		content = m.form.view()
	case m.confirmTarget != nil:
		content = m.confirmView()
	default:
		content = m.productsView()
	}

	if m.toast != nil {
		content += "\n\n" + renderToast(*m.toast)
	}
	return panelString(content)
}

func (m *Model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ADMIN PANEL") + mutedStyle.Render("  sign in to continue") + "\n\n")
	b.WriteString(" Email    " + m.username.View() + "\n")
	b.WriteString(" Password " + m.password.View() + "\n")
	if m.busy {
		b.WriteString("\n " + m.spin.View() + mutedStyle.Render("signing in…"))
	}
	b.WriteString("\n" + helpStyle.Render(" tab switch field · enter submit · ctrl+c quit"))
	return b.String()
}

func (m *Model) confirmView() string {
	p := m.confirmTarget
	var b strings.Builder
	b.WriteString(errorStyle.Render("Delete product?") + "\n\n")
	b.WriteString(" " + p.Title + mutedStyle.Render("  ("+p.ID+")") + "\n\n")
	b.WriteString(helpStyle.Render(" y delete · n keep"))
	return b.String()
}

func (m *Model) productsView() string {
	pg := m.list.Pagination()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Products") +
		fmt.Sprintf("   %s %d", accentStyle.Render("rows"), m.list.Len()) + "\n\n")

	if m.loading {
		b.WriteString(" " + m.spin.View() + mutedStyle.Render("loading…") + "\n")
		return b.String()
	}
	if m.busy {
		b.WriteString(" " + m.spin.View() + mutedStyle.Render("working…") + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-12s %-28s %9s %9s  %s",
		"CATEGORY", "TITLE", "ORIGINAL", "PRICE", "STATUS")) + "\n")
	if m.list.Len() == 0 {
		b.WriteString(mutedStyle.Render("  nothing on this page") + "\n")
	} else {
		b.WriteString(m.table.View() + "\n")
	}

	b.WriteString("\n " + PaginationBar(pg.CurrentPage, pg.TotalPages) + "\n")
	b.WriteString(helpStyle.Render(" a add · e edit · d delete · r refresh · ←/→ page · q quit"))
	return b.String()
}

func renderToast(msg notify.Message) string {
	line := msg.Title
	if msg.Text != "" {
		line += " " + mutedStyle.Render(msg.Text)
	}
	switch msg.Severity {
	case notify.SeverityError:
		return errorStyle.Render("✖ ") + line
	case notify.SeverityWarning:
		return warnStyle.Render("! ") + line
	default:
		return successStyle.Render("✔ ") + line
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
