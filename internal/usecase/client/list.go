package client

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/account"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// ListVisibleClients lists the clients an authenticated user may see:
// every client for super admins, the clients of the user's venue otherwise.
type ListVisibleClients struct {
	accounts account.Repository
	repo     domain.Repository
}

func NewListVisibleClients(
	accounts account.Repository,
	repo domain.Repository,
) *ListVisibleClients {
	return &ListVisibleClients{
		accounts: accounts,
		repo:     repo,
	}
}

func (uc *ListVisibleClients) Execute(
	ctx context.Context,
	authUserID string,
) ([]models.Client, error) {

	user, err := uc.accounts.GetUserInfo(ctx, authUserID)
	if err != nil {
		return nil, err
	}

	if user.IsSuperAdmin {
		return uc.repo.ListClients(ctx, "")
	}
	if user.VenueID == "" {
		return []models.Client{}, nil
	}
	return uc.repo.ListClients(ctx, user.VenueID)
}
