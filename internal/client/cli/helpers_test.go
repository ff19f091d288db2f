package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophgate/internal/client/models"
	"github.com/dmitrijs2005/gophgate/internal/client/router"
	"github.com/dmitrijs2005/gophgate/internal/client/services"
	"github.com/dmitrijs2005/gophgate/internal/logging"
)

type fakeAuth struct {
	mu    sync.Mutex
	state models.SessionState

	signInCalls int
	signInEmail string
	signInPass  string
	signInRes   services.Result

	signUpCalls int
	signUpName  string
	signUpRes   services.Result

	signOutCalls int
	signOutErr   error

	profileUser *models.User
	profileErr  error

	pingErr error
}

func (f *fakeAuth) Start(context.Context) <-chan struct{} {
	f.mu.Lock()
	f.state.Initializing = false
	f.mu.Unlock()
	done := make(chan struct{})
	close(done)
	return done
}

func (f *fakeAuth) State() models.SessionState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *fakeAuth) SignIn(_ context.Context, email, password string) services.Result {
	f.signInCalls++
	f.signInEmail, f.signInPass = email, password
	if f.signInRes.Success {
		f.state.CurrentUser = f.signInRes.User
	}
	return f.signInRes
}

func (f *fakeAuth) SignUp(_ context.Context, name, email, password string) services.Result {
	f.signUpCalls++
	f.signUpName = name
	if f.signUpRes.Success {
		f.state.CurrentUser = f.signUpRes.User
	}
	return f.signUpRes
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.signOutCalls++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.state.CurrentUser = nil
	return nil
}

func (f *fakeAuth) Profile(context.Context) (*models.User, error) {
	return f.profileUser, f.profileErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	f.pingErr = err
	f.mu.Unlock()
}

var ana = &models.User{ID: "u1", Email: "ana@test.com", Name: "Ana", Token: "tok"}

func newTestApp(auth Authenticator, in string) *App {
	return &App{
		auth:   auth,
		gate:   router.NewGate(logging.Nop()),
		logger: logging.Nop(),
		reader: bufio.NewReader(strings.NewReader(in)),
		out:    io.Discard,
	}
}

// capturePrint swaps printlnFn for the duration of the test.
func capturePrint(t *testing.T) *[]string {
	t.Helper()
	var mu sync.Mutex
	lines := &[]string{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		*lines = append(*lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

// stubInputs feeds texts and passwords to the screens in order.
func stubInputs(t *testing.T, texts []string, passwords []string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}

	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}
