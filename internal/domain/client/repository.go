package client

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type Repository interface {
	GetClient(
		ctx context.Context,
		id string,
	) (*models.Client, error)

	// venueID == "" lists every client visible to the gateway, newest first.
	ListClients(
		ctx context.Context,
		venueID string,
	) ([]models.Client, error)

	// InsertClient stamps company_id from the venue and created_by from
	// the caller, and returns the new id.
	InsertClient(
		ctx context.Context,
		in NewClient,
		createdBy string,
	) (string, error)

	// UpdateClientGuarded returns false when actorID may not edit the client.
	UpdateClientGuarded(
		ctx context.Context,
		actorID string,
		id string,
		patch Patch,
	) (bool, error)
}
