package client

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
)

type CreateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateClient {
	return &CreateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute returns the id of the new client. The gateway stamps company_id
// from the venue and created_by from the actor.
func (uc *CreateClient) Execute(
	ctx context.Context,
	actor audit.Actor,
	in domain.NewClient,
) (string, error) {

	if err := in.Validate(); err != nil {
		return "", err
	}

	id, err := uc.repo.InsertClient(ctx, in, actor.UserID)
	if err != nil {
		return "", err
	}

	uc.audit.Dispatch(actor.Event(
		audit.ActionClientCreated,
		"client",
		id,
		map[string]string{"venue_id": in.VenueID},
	))

	return id, nil
}
