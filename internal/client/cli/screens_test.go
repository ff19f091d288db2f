package cli

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/gophgate/internal/client/client"
	"github.com/dmitrijs2005/gophgate/internal/client/router"
	"github.com/dmitrijs2005/gophgate/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_EmptyFieldsDoNotCallService(t *testing.T) {
	out := capturePrint(t)
	for _, in := range [][2]string{{"", ""}, {"ana@test.com", ""}, {"", "123456"}} {
		stubInputs(t, []string{in[0]}, []string{in[1]})
		f := &fakeAuth{}
		a := newTestApp(f, "")

		err := a.Login(context.Background())
		require.Error(t, err)
		assert.Equal(t, 0, f.signInCalls)
	}
	assert.Contains(t, *out, "Error: Please fill in all fields.")
}

func TestLogin_Success(t *testing.T) {
	out := capturePrint(t)
	stubInputs(t, []string{"ana@test.com"}, []string{"123456"})
	f := &fakeAuth{signInRes: services.Result{Success: true, User: ana}}
	a := newTestApp(f, "")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, 1, f.signInCalls)
	assert.Equal(t, "ana@test.com", f.signInEmail)
	assert.Equal(t, "123456", f.signInPass)
	assert.Equal(t, router.RouteLogin, a.route)
	assert.Contains(t, *out, msgSignedIn)
}

func TestLogin_FailureShowsMessage(t *testing.T) {
	out := capturePrint(t)
	stubInputs(t, []string{"ana@test.com"}, []string{"wrong!"})
	f := &fakeAuth{signInRes: services.Result{Message: services.MsgInvalidCredentials}}
	a := newTestApp(f, "")

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, *out, "Error: "+services.MsgInvalidCredentials)
	assert.Nil(t, f.State().CurrentUser)
}

func TestLogin_InputError(t *testing.T) {
	capturePrint(t)
	stubInputs(t, nil, nil)
	f := &fakeAuth{}
	a := newTestApp(f, "")

	assert.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.Equal(t, 0, f.signInCalls)
}

func TestRegister_ValidationNeverCallsService(t *testing.T) {
	tests := []struct {
		name      string
		texts     []string
		passwords []string
		want      string
	}{
		{"empty name", []string{"", "ana@test.com"}, []string{"123456", "123456"}, "Please fill in all fields."},
		{"short password", []string{"Ana", "ana@test.com"}, []string{"12345", "12345"}, "Password must be at least 6 characters."},
		{"mismatch", []string{"Ana", "ana@test.com"}, []string{"123456", "654321"}, "Passwords do not match."},
		{"bad email", []string{"Ana", "bob@@x"}, []string{"123456", "123456"}, "Please enter a valid email."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capturePrint(t)
			stubInputs(t, tt.texts, tt.passwords)
			f := &fakeAuth{}
			a := newTestApp(f, "")

			require.Error(t, a.Register(context.Background()))
			assert.Equal(t, 0, f.signUpCalls)
			assert.Contains(t, *out, "Error: "+tt.want)
		})
	}
}

func TestRegister_Success(t *testing.T) {
	out := capturePrint(t)
	stubInputs(t, []string{"Ana", "ana@test.com"}, []string{"123456", "123456"})
	f := &fakeAuth{signUpRes: services.Result{Success: true, User: ana}}
	a := newTestApp(f, "")

	require.NoError(t, a.Register(context.Background()))
	assert.Equal(t, 1, f.signUpCalls)
	assert.Equal(t, "Ana", f.signUpName)
	assert.Contains(t, *out, msgAccountCreated)
	assert.Equal(t, router.RouteRegister, a.route)
}

func TestRegister_Duplicate(t *testing.T) {
	out := capturePrint(t)
	stubInputs(t, []string{"Ana", "ana@test.com"}, []string{"123456", "123456"})
	f := &fakeAuth{signUpRes: services.Result{Message: services.MsgAccountExists}}
	a := newTestApp(f, "")

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, *out, "Error: "+services.MsgAccountExists)
}

func TestHome_GreetsByName(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	require.NoError(t, a.Home(context.Background()))
	assert.Contains(t, *out, "Hello, Ana!")
	assert.Equal(t, router.RouteHome, a.route)
}

func TestHome_SignedOut(t *testing.T) {
	capturePrint(t)
	a := newTestApp(&fakeAuth{}, "")
	assert.ErrorIs(t, a.Home(context.Background()), client.ErrUnauthorized)
}

func TestProfile_ShowsRemoteAccount(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{profileUser: ana}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, *out, "Name:      Ana")
	assert.Contains(t, *out, "Account:   u1")
}

func TestProfile_ExpiredTokenSignsOut(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{profileErr: client.ErrUnauthorized}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	require.NoError(t, a.Profile(context.Background()))
	assert.Equal(t, 1, f.signOutCalls)
	assert.Nil(t, f.State().CurrentUser)
	assert.Contains(t, *out, "Error: "+msgSessionExpired)
}

func TestProfile_Offline(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{profileErr: client.ErrUnavailable}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	assert.ErrorIs(t, a.Profile(context.Background()), client.ErrUnavailable)
	assert.Contains(t, *out, "Error: "+services.MsgUnavailable)
	assert.NotNil(t, f.State().CurrentUser)
}

func TestLogout(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	require.NoError(t, a.Logout(context.Background()))
	assert.Nil(t, f.State().CurrentUser)
	assert.Contains(t, *out, msgSignedOut)
}

func TestLogout_ErrorKeepsUser(t *testing.T) {
	out := capturePrint(t)
	f := &fakeAuth{signOutErr: errors.New("disk")}
	f.state.CurrentUser = ana
	a := newTestApp(f, "")

	require.Error(t, a.Logout(context.Background()))
	assert.NotNil(t, f.State().CurrentUser)
	assert.Contains(t, *out, "Error: "+msgSignOutFailed)
}
