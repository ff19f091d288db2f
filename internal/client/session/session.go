// Package session persists the signed-in user between runs. At most one user
// is stored, under the metadata key "current_user".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophgate/internal/client/models"
	"github.com/dmitrijs2005/gophgate/internal/client/repositories/metadata"
)

const Key = "current_user"

// ErrStorage wraps every failure to read, decode or write the stored session.
var ErrStorage = errors.New("session storage failure")

type Store struct {
	repo metadata.Repository
}

func NewStore(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Load returns the stored user, or (nil, nil) when nobody is signed in.
func (s *Store) Load(ctx context.Context) (*models.User, error) {
	raw, ok, err := s.repo.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	if !ok {
		return nil, nil
	}

	u := &models.User{}
	if err := json.Unmarshal(raw, u); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrStorage, Key, err)
	}
	return u, nil
}

// Save replaces any stored user with u.
func (s *Store) Save(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("%w: nil user", ErrStorage)
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrStorage, Key, err)
	}

	if err := s.repo.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}

// Clear removes the stored user. Clearing an empty store succeeds.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Remove(ctx, Key); err != nil {
		return fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return nil
}
