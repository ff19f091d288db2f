// Package users stores backend accounts. Lookups that find nothing return
// common.ErrorNotFound; creating a second account for an email returns
// common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophgate/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
