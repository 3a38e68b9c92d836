package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/keybtech/shopcli/internal/api"
	"github.com/keybtech/shopcli/internal/credential"
	"github.com/keybtech/shopcli/internal/notify"
)

// State is the guard's position in its lifecycle:
// Unchecked -> Checking -> {Authenticated, Unauthenticated}.
type State int

const (
	Unchecked State = iota
	Checking
	Authenticated
	Unauthenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	default:
		return "unchecked"
	}
}

// Route names a navigable view.
type Route string

const (
	RouteLogin         Route = "login"
	RouteAdminProducts Route = "admin/products"
)

// Router performs navigation. The guard only ever needs to know whether it is
// already on the login route.
type Router interface {
	Navigate(Route)
	Current() Route
}

// Prober validates the current credential against the remote service.
// Satisfied by *api.Client.
type Prober interface {
	Check(ctx context.Context) error
}

// CredentialStore is the slice of *credential.Store the guard needs.
type CredentialStore interface {
	Load() (*credential.Credential, error)
	Clear() error
}

// Guard decides, at the entry of any protected view, whether the current
// credential is valid. The check re-runs on every entry and is never cached:
// token expiry is time-dependent.
type Guard struct {
	creds    CredentialStore
	probe    Prober
	router   Router
	notifier notify.Notifier
	log      *zap.Logger
	state    State
}

// New wires a guard. log may be zap.NewNop().
func New(creds CredentialStore, probe Prober, router Router, notifier notify.Notifier, log *zap.Logger) *Guard {
	return &Guard{
		creds:    creds,
		probe:    probe,
		router:   router,
		notifier: notifier,
		log:      log,
		state:    Unchecked,
	}
}

// State returns the guard's current state.
func (g *Guard) State() State { return g.state }

// Enter runs the check for a protected view. It returns true when the view
// may mount. An absent credential resolves without any probe call; a present
// but rejected credential is cleared so the next entry starts clean.
func (g *Guard) Enter(ctx context.Context) bool {
	g.state = Checking

	cred, err := g.creds.Load()
	if err != nil {
		g.log.Warn("credential load failed", zap.Error(err))
		return g.deny("Sign-in required", "could not read stored credentials")
	}
	if cred == nil {
		return g.deny("Sign-in required", "please log in first")
	}

	if err := g.probe.Check(ctx); err != nil {
		g.log.Info("session probe rejected", zap.Error(err))
		if err := g.creds.Clear(); err != nil {
			g.log.Warn("credential clear failed", zap.Error(err))
		}
		return g.deny("Session expired", api.UserMessage(err))
	}

	g.state = Authenticated
	return true
}

// HandleAuthFailure unifies auth failures seen outside the guard's own probe
// (a list fetch answering 401, say) with a failed probe: clear the
// credential, notify, and head back to login. It reports whether err was
// such a failure.
func (g *Guard) HandleAuthFailure(err error) bool {
	if !api.IsAuthFailure(err) {
		return false
	}
	if cerr := g.creds.Clear(); cerr != nil {
		g.log.Warn("credential clear failed", zap.Error(cerr))
	}
	g.deny("Session expired", api.UserMessage(err))
	return true
}

func (g *Guard) deny(title, reason string) bool {
	g.state = Unauthenticated
	g.notifier.Notify(notify.Error(title, reason))
	if g.router.Current() != RouteLogin {
		g.router.Navigate(RouteLogin)
	}
	return false
}
