// Package services contains application services for the client. AuthService
// owns the session state: who is signed in and whether the stored session has
// been loaded yet.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophgate/internal/client/client"
	"github.com/dmitrijs2005/gophgate/internal/client/models"
	"github.com/dmitrijs2005/gophgate/internal/client/session"
	"github.com/dmitrijs2005/gophgate/internal/logging"
	"github.com/dmitrijs2005/gophgate/internal/validation"
)

// Messages reported in Result.Message.
const (
	MsgSignInFailed       = "Login failed."
	MsgSignUpFailed       = "Registration failed."
	MsgInvalidCredentials = "Invalid email or password."
	MsgAccountExists      = "An account with this email already exists."
	MsgUnavailable        = "Server unavailable. Try again later."
	MsgSessionNotSaved    = "Could not save the session on this device."
)

// SessionStore persists the signed-in user; see session.Store.
type SessionStore interface {
	Load(ctx context.Context) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	Clear(ctx context.Context) error
}

// Result is the outcome of SignIn and SignUp. Success is true when the
// operation succeeded; otherwise Message says why.
type Result struct {
	Success bool
	Message string
	User    *models.User
}

type AuthService struct {
	client         client.Client
	store          SessionStore
	logger         logging.Logger
	requestTimeout time.Duration

	mu           sync.RWMutex
	currentUser  *models.User
	initializing bool
	// bumped by every sign-in/up/out so a slow Init cannot overwrite them
	generation uint64
}

// NewAuthService returns a service in the initializing state. requestTimeout
// bounds every backend call; zero means no bound.
func NewAuthService(c client.Client, store SessionStore, l logging.Logger, requestTimeout time.Duration) *AuthService {
	return &AuthService{
		client:         c,
		store:          store,
		logger:         l.With("module", "auth_service"),
		requestTimeout: requestTimeout,
		initializing:   true,
	}
}

func (a *AuthService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.requestTimeout)
}

// Init loads the stored session. Any storage failure is logged and treated as
// "nobody signed in". Initializing is false afterwards in every case.
func (a *AuthService) Init(ctx context.Context) {
	a.mu.RLock()
	if !a.initializing {
		a.mu.RUnlock()
		return
	}
	gen := a.generation
	a.mu.RUnlock()

	u, err := a.store.Load(ctx)
	if err != nil {
		a.logger.Warn(ctx, "Could not load stored session", "error", err)
		u = nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.generation == gen {
		a.currentUser = u
	}
	a.initializing = false

	if a.currentUser != nil {
		a.logger.Debug(ctx, "Session restored", "user_id", a.currentUser.ID)
	}
}

// Start runs Init in the background. The returned channel is closed once
// initialization has completed.
func (a *AuthService) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Init(ctx)
	}()
	return done
}

// State returns a snapshot of the session state.
func (a *AuthService) State() models.SessionState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	st := models.SessionState{Initializing: a.initializing}
	if a.currentUser != nil {
		u := *a.currentUser
		st.CurrentUser = &u
	}
	return st
}

// SignIn authenticates against the backend. Empty fields are rejected without
// a backend call. On success the user is stored before the state changes.
func (a *AuthService) SignIn(ctx context.Context, email, password string) Result {
	if err := validation.ValidateSignIn(validation.SignInForm{Email: email, Password: password}); err != nil {
		return failure(err, MsgSignInFailed)
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Login(rctx, strings.TrimSpace(email), []byte(password))
	if err != nil {
		a.logger.Info(ctx, "Sign in failed", "error", err)
		return failure(err, MsgSignInFailed)
	}

	return a.establish(ctx, u)
}

// SignUp registers a new account and signs it in. Callers run the full
// registration checks first; only empty fields are rejected here.
func (a *AuthService) SignUp(ctx context.Context, name, email, password string) Result {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return Result{Message: validation.MsgRequired}
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()

	u, err := a.client.Register(rctx, strings.TrimSpace(name), strings.TrimSpace(email), []byte(password))
	if err != nil {
		a.logger.Info(ctx, "Sign up failed", "error", err)
		return failure(err, MsgSignUpFailed)
	}

	return a.establish(ctx, u)
}

func (a *AuthService) establish(ctx context.Context, u *models.User) Result {
	if err := a.store.Save(ctx, u); err != nil {
		a.logger.Error(ctx, "Could not save session", "error", err)
		return Result{Message: MsgSessionNotSaved}
	}

	a.mu.Lock()
	a.currentUser = u
	a.generation++
	a.mu.Unlock()

	cp := *u
	return Result{Success: true, User: &cp}
}

// SignOut clears the stored session and then the in-memory state. If the
// store cannot be cleared the error is returned and the user stays signed in.
func (a *AuthService) SignOut(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "Could not clear session", "error", err)
		return err
	}

	a.mu.Lock()
	a.currentUser = nil
	a.generation++
	a.mu.Unlock()
	return nil
}

// Profile asks the backend for the signed-in user's account.
func (a *AuthService) Profile(ctx context.Context) (*models.User, error) {
	a.mu.RLock()
	u := a.currentUser
	a.mu.RUnlock()
	if u == nil {
		return nil, client.ErrUnauthorized
	}

	rctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Profile(rctx, u.Token)
}

// Ping checks that the backend is reachable.
func (a *AuthService) Ping(ctx context.Context) error {
	rctx, cancel := a.withTimeout(ctx)
	defer cancel()
	return a.client.Ping(rctx)
}

// Message returns the text shown to the user for err.
func Message(err error, fallback string) string {
	var ve *validation.ValidationError
	var re *client.RejectedError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.As(err, &re):
		return re.Message
	case errors.Is(err, client.ErrUnauthorized):
		return MsgInvalidCredentials
	case errors.Is(err, client.ErrAlreadyExists):
		return MsgAccountExists
	case errors.Is(err, client.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return MsgUnavailable
	case errors.Is(err, session.ErrStorage):
		return MsgSessionNotSaved
	default:
		return fallback
	}
}

func failure(err error, fallback string) Result {
	return Result{Message: Message(err, fallback)}
}
