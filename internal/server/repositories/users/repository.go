package users

import (
	"context"

	"github.com/vpopov/authgate/internal/server/models"
)

// Repository is the durable store of user records. Lookup methods return
// common.ErrNotFound when no record matches. Insert assigns the record id
// and returns common.ErrUniqueViolation when a concurrent registration won
// the email/username uniqueness race.
type Repository interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}
