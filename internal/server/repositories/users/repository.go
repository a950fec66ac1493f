package users

import (
	"context"

	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindCredentialByUsername returns the user id and stored credential
	// for login verification.
	FindCredentialByUsername(ctx context.Context, username string) (id string, credential string, err error)
	UpdatePassword(ctx context.Context, id string, credential string) (bool, error)
}
