package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/core"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/log"
	"github.com/viniciussantana001/ZeroPaper-SistemaOrganizacaoFinanceiro/internal/storage"
)

// Options injects id generation, clock and color generation so tests can pin
// all three.
type Options struct {
	NewID func() string
	Now   func() time.Time
	Color core.ColorFunc
}

func (o Options) withDefaults() Options {
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Color == nil {
		o.Color = core.RandomColor(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return o
}

// App wires the identity store, the session and the active user's workspace.
// It is the single entry point the presentation layer talks to.
type App struct {
	kv     storage.KV
	deps   deps
	logger *log.Logger

	Identity *IdentityService
	session  *Session

	mu sync.RWMutex
	ws *Workspace
}

// NewApp loads the identity store and resumes a persisted session if the
// current-user pointer still resolves to a registered account.
func NewApp(ctx context.Context, kv storage.KV, saver Saver, logger *log.Logger, opts Options) *App {
	opts = opts.withDefaults()
	a := &App{
		kv: kv,
		deps: deps{
			saver:  saver,
			logger: logger,
			newID:  opts.NewID,
			now:    opts.Now,
			color:  opts.Color,
		},
		logger:   logger.WithComponent(log.ComponentApp),
		Identity: NewIdentityService(ctx, kv, saver, logger),
		session:  NewSession(),
	}

	if email, ok := a.Identity.PersistedCurrentUser(ctx); ok && a.Identity.Exists(email) {
		a.activate(ctx, email)
		a.logger.InfoContext(ctx, "Session resumed", log.FieldUserEmail, email)
	}
	return a
}

// Register creates the account and logs it in.
func (a *App) Register(ctx context.Context, email, password string) (core.User, error) {
	u, err := a.Identity.Register(ctx, email, password)
	if err != nil {
		return core.User{}, err
	}
	a.activate(ctx, u.Email)
	a.Identity.SetCurrent(ctx, u.Email)
	return u, nil
}

// Login authenticates and switches the active workspace to that user.
func (a *App) Login(ctx context.Context, email, password string) (core.User, error) {
	u, err := a.Identity.Authenticate(ctx, email, password)
	if err != nil {
		return core.User{}, err
	}
	a.activate(ctx, u.Email)
	a.Identity.SetCurrent(ctx, u.Email)
	return u, nil
}

// Logout clears the session and the persisted pointer. No user data is
// deleted.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	a.ws = nil
	a.mu.Unlock()
	a.session.Clear()
	a.Identity.ClearCurrent(ctx)
	a.logger.InfoContext(ctx, "Session cleared")
}

// Session exposes the current-user handle.
func (a *App) Session() *Session { return a.session }

// Workspace returns the active user's stores, or ErrNotAuthenticated when
// nobody is logged in.
func (a *App) Workspace() (*Workspace, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.ws == nil {
		return nil, core.ErrNotAuthenticated
	}
	return a.ws, nil
}

func (a *App) activate(ctx context.Context, email string) {
	ws := openWorkspace(ctx, a.kv, a.deps, email)
	a.mu.Lock()
	a.ws = ws
	a.mu.Unlock()
	a.session.Activate(email)
}
