package appointment

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/dto"
)

const RecentClientsLimit = 5

// ListRecentClients backs the dashboard: the latest appointments with the
// client and stylist names resolved.
type ListRecentClients struct {
	repo       domain.Repository
	clients    client.Repository
	aggregator *Aggregator
	logger     *zap.Logger
}

func NewListRecentClients(
	repo domain.Repository,
	clients client.Repository,
	aggregator *Aggregator,
	logger *zap.Logger,
) *ListRecentClients {
	return &ListRecentClients{
		repo:       repo,
		clients:    clients,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Execute lists the latest appointments held in venueIDs; nil means every
// venue. Appointments whose client cannot be read are dropped.
func (uc *ListRecentClients) Execute(
	ctx context.Context,
	venueIDs []string,
) ([]dto.RecentClientDTO, error) {

	apps, err := uc.repo.ListRecentAppointments(ctx, venueIDs, RecentClientsLimit)
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.RecentClientDTO, len(apps))

	var g errgroup.Group
	for i, ap := range apps {
		g.Go(func() error {
			c, err := uc.clients.GetClient(ctx, ap.ClientID)
			if err != nil {
				uc.logger.Warn("recent client lookup failed",
					zap.String("appointment_id", ap.ID),
					zap.String("client_id", ap.ClientID),
					zap.Error(err),
				)
				return nil
			}
			rows[i] = &dto.RecentClientDTO{
				AppointmentID: ap.ID,
				ClientID:      c.ID,
				ClientName:    c.FullName(),
				StylistName:   uc.aggregator.stylistName(ctx, ap),
				Date:          ap.Date,
				Status:        ap.Status,
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]dto.RecentClientDTO, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
