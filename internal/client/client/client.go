package client

import (
	"context"

	"github.com/dmitrijs2005/gophgate/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, name, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error
}
