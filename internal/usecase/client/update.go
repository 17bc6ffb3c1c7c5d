package client

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateClient {
	return &UpdateClient{
		repo:  repo,
		audit: audit,
	}
}

// Execute fails with BusinessError("forbidden") when the guarded update
// reports that the actor may not edit the client.
func (uc *UpdateClient) Execute(
	ctx context.Context,
	actor audit.Actor,
	id string,
	patch domain.Patch,
) error {

	if err := patch.Validate(); err != nil {
		return err
	}

	ok, err := uc.repo.UpdateClientGuarded(ctx, actor.UserID, id, patch)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	uc.audit.Dispatch(actor.Event(
		audit.ActionClientUpdated,
		"client",
		id,
		patch,
	))
	return nil
}
