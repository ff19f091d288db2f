// Package services contains server-side business logic. UserService handles
// registration, login and profile lookups, and issues access tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophgate/internal/common"
	"github.com/dmitrijs2005/gophgate/internal/cryptox"
	"github.com/dmitrijs2005/gophgate/internal/server/auth"
	"github.com/dmitrijs2005/gophgate/internal/server/models"
	"github.com/dmitrijs2005/gophgate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophgate/internal/server/repositories/users"
	"github.com/dmitrijs2005/gophgate/internal/validation"
)

// Session is the result of a successful Register or Login.
type Session struct {
	User        *models.User
	AccessToken string
}

type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

func NewUserService(m repomanager.RepositoryManager, secretKey string, accessTokenValidity time.Duration) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(secretKey),
		accessTokenValidityDuration: accessTokenValidity,
	}
}

// NormalizeEmail trims and lower-cases an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs it in. A second account for the same
// email yields common.ErrorAlreadyExists; bad input yields a
// *validation.ValidationError.
func (s *UserService) Register(ctx context.Context, name, email string, password []byte) (*Session, error) {
	form := validation.SignUpForm{
		Name:         name,
		Email:        NormalizeEmail(email),
		Password:     string(password),
		Confirmation: string(password),
	}
	if err := validation.ValidateSignUp(form); err != nil {
		return nil, err
	}

	salt, verifier := cryptox.HashPassword(password)
	user := &models.User{
		Email:    NormalizeEmail(email),
		Name:     strings.TrimSpace(name),
		Salt:     salt,
		Verifier: verifier,
	}

	var created *models.User
	err := s.repomanager.WithinTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetUserByEmail(ctx, user.Email)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.newSession(created)
}

// Login verifies the password. Unknown emails and wrong passwords both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	if err := validation.ValidateSignIn(validation.SignInForm{Email: email, Password: string(password)}); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !cryptox.CheckPassword(password, user.Salt, user.Verifier) {
		return nil, common.ErrorUnauthorized
	}

	return s.newSession(user)
}

// Profile returns the account a verified access token belongs to.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) newSession(user *models.User) (*Session, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &Session{User: user, AccessToken: token}, nil
}
