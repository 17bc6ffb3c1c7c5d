package account

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// Repository is the authenticated-user lookup of the gateway.
type Repository interface {
	GetUserInfo(
		ctx context.Context,
		authID string,
	) (*models.UserProfile, error)
}
