package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophgate/internal/client/client"
	"github.com/dmitrijs2005/gophgate/internal/client/router"
	"github.com/dmitrijs2005/gophgate/internal/client/services"
	"github.com/dmitrijs2005/gophgate/internal/common"
	"github.com/dmitrijs2005/gophgate/internal/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgAccountCreated  = "Account created!"
	msgSignedIn        = "Login successful."
	msgSignedOut       = "Logged out."
	msgSignOutFailed   = "Could not log out. Please try again."
	msgSessionExpired  = "Your session has expired. Please log in again."
	msgProfileFallback = "Could not load the profile."
)

// notify shows a dismissible error notification.
func notify(msg string) {
	printlnFn("Error: " + msg)
}

func (a *App) promptText(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) promptPassword(prompt string) ([]byte, error) {
	return getPassword(a.reader, prompt, a.out)
}

// Login is the login screen: email and password, then sign in.
func (a *App) Login(ctx context.Context) error {
	a.route = router.RouteLogin

	email, err := a.promptText("Enter email")
	if err != nil {
		return err
	}

	password, err := a.promptPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validation.ValidateSignIn(validation.SignInForm{Email: email, Password: string(password)}); err != nil {
		notify(services.Message(err, services.MsgSignInFailed))
		return err
	}

	res := a.auth.SignIn(ctx, email, string(password))
	if !res.Success {
		notify(res.Message)
		return errors.New(res.Message)
	}

	printlnFn(msgSignedIn)
	return nil
}

// Register is the registration screen: name, email, password and
// confirmation, validated before the account is created.
func (a *App) Register(ctx context.Context) error {
	a.route = router.RouteRegister

	name, err := a.promptText("Enter name")
	if err != nil {
		return err
	}

	email, err := a.promptText("Enter email")
	if err != nil {
		return err
	}

	password, err := a.promptPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirmation, err := a.promptPassword("Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	form := validation.SignUpForm{
		Name:         name,
		Email:        email,
		Password:     string(password),
		Confirmation: string(confirmation),
	}
	if err := validation.ValidateSignUp(form); err != nil {
		notify(services.Message(err, services.MsgSignUpFailed))
		return err
	}

	res := a.auth.SignUp(ctx, name, email, string(password))
	if !res.Success {
		notify(res.Message)
		return errors.New(res.Message)
	}

	printlnFn(msgAccountCreated)
	return nil
}

// Home greets the signed-in user.
func (a *App) Home(ctx context.Context) error {
	a.route = router.RouteHome

	u := a.auth.State().CurrentUser
	if u == nil {
		return client.ErrUnauthorized
	}

	printlnFn(fmt.Sprintf("Hello, %s!", u.Name))
	printlnFn(fmt.Sprintf("You are logged in as %s.", u.Email))
	return nil
}

// Profile shows the remembered account and what the backend knows about it.
// An expired token signs the user out.
func (a *App) Profile(ctx context.Context) error {
	a.route = router.RouteProfile

	u := a.auth.State().CurrentUser
	if u == nil {
		return client.ErrUnauthorized
	}

	printlnFn("Name:      " + u.Name)
	printlnFn("Email:     " + u.Email)
	if !u.SignedInAt.IsZero() {
		printlnFn("Signed in: " + u.SignedInAt.Local().Format("2006-01-02 15:04"))
	}

	remote, err := a.auth.Profile(ctx)
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		notify(msgSessionExpired)
		return a.Logout(ctx)
	case err != nil:
		notify(services.Message(err, msgProfileFallback))
		return err
	}

	printlnFn("Account:   " + remote.ID)
	printlnFn("Type 'logout' to log out.")
	return nil
}

// Logout signs out. If the session cannot be cleared the user stays signed in.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		notify(msgSignOutFailed)
		return err
	}
	printlnFn(msgSignedOut)
	return nil
}
