package appointment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

const defaultFanoutLimit = 8

// ======================================================
// AGGREGATOR
// ======================================================

// Aggregator denormalizes appointments. The stylist name and the five child
// collections are fetched concurrently; a failed child fetch is logged and
// left empty, only a failed root fetch is returned to the caller.
type Aggregator struct {
	repo     domain.Repository
	stylists stylist.Repository
	logger   *zap.Logger
	limit    int
}

// fanoutLimit bounds how many appointments of a history are aggregated at
// once; <= 0 selects the default.
func NewAggregator(
	repo domain.Repository,
	stylists stylist.Repository,
	logger *zap.Logger,
	fanoutLimit int,
) *Aggregator {
	if fanoutLimit <= 0 {
		fanoutLimit = defaultFanoutLimit
	}
	return &Aggregator{
		repo:     repo,
		stylists: stylists,
		logger:   logger,
		limit:    fanoutLimit,
	}
}

func (a *Aggregator) Aggregate(
	ctx context.Context,
	appointmentID string,
) (*domain.AggregatedAppointment, error) {

	ap, err := a.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	agg := a.AggregateRow(ctx, *ap)
	return &agg, nil
}

// AggregateRow never fails.
func (a *Aggregator) AggregateRow(
	ctx context.Context,
	ap models.Appointment,
) domain.AggregatedAppointment {

	out := domain.NewAggregated(ap)

	// every goroutine writes its own field of out
	var g errgroup.Group

	g.Go(func() error {
		out.StylistName = a.stylistName(ctx, ap)
		return nil
	})

	fetchInto(ctx, &g, a, ap.ID, "services", a.repo.ListServices, &out.Services)
	fetchInto(ctx, &g, a, ap.ID, "formulas", a.repo.ListFormulas, &out.Formulas)
	fetchInto(ctx, &g, a, ap.ID, "treatments", a.repo.ListTreatments, &out.Treatments)
	fetchInto(ctx, &g, a, ap.ID, "products", a.repo.ListProducts, &out.Products)
	fetchInto(ctx, &g, a, ap.ID, "photos", a.repo.ListPhotos, &out.Photos)

	_ = g.Wait()
	return out
}

// AggregateHistory keeps the order of rows.
func (a *Aggregator) AggregateHistory(
	ctx context.Context,
	rows []models.Appointment,
) []domain.AggregatedAppointment {

	out := make([]domain.AggregatedAppointment, len(rows))

	var g errgroup.Group
	g.SetLimit(a.limit)

	for i := range rows {
		g.Go(func() error {
			out[i] = a.AggregateRow(ctx, rows[i])
			return nil
		})
	}

	_ = g.Wait()
	return out
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func fetchInto[T any](
	ctx context.Context,
	g *errgroup.Group,
	a *Aggregator,
	appointmentID string,
	collection string,
	fetch func(context.Context, string) ([]T, error),
	dst *[]T,
) {
	g.Go(func() error {
		rows, err := fetch(ctx, appointmentID)
		if err != nil {
			a.logger.Warn("appointment child fetch failed",
				zap.String("appointment_id", appointmentID),
				zap.String("collection", collection),
				zap.Error(err),
			)
			return nil
		}
		if rows != nil {
			*dst = rows
		}
		return nil
	})
}

func (a *Aggregator) stylistName(ctx context.Context, ap models.Appointment) string {
	if ap.StylistID == "" {
		return domain.UnassignedStylist
	}

	s, err := a.stylists.GetStylist(ctx, ap.StylistID)
	if err != nil {
		a.logger.Warn("stylist lookup failed",
			zap.String("appointment_id", ap.ID),
			zap.String("stylist_id", ap.StylistID),
			zap.Error(err),
		)
		return domain.UnassignedStylist
	}
	if s.Name == "" {
		return domain.UnassignedStylist
	}
	return s.Name
}
