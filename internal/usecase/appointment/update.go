package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
)

type UpdateAppointment struct {
	repo       domain.Repository
	aggregator *Aggregator
	audit      *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	aggregator *Aggregator,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:       repo,
		aggregator: aggregator,
		audit:      audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor audit.Actor,
	id string,
	patch domain.Patch,
) (*domain.AggregatedAppointment, error) {

	if patch.Empty() {
		return nil, httperr.ErrBusiness("empty_patch")
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := patch.CheckAgainst(ap); err != nil {
		return nil, err
	}
	previous := ap.Status

	updated, err := uc.repo.UpdateAppointment(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if updated.Status != previous {
		uc.audit.Dispatch(actor.Event(
			audit.ActionAppointmentStatus,
			"appointment",
			id,
			map[string]string{"from": previous, "to": updated.Status},
		))
	}

	agg := uc.aggregator.AggregateRow(ctx, *updated)
	return &agg, nil
}
