// Package infra selects the data gateway the API runs against.
package infra

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/account"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/company"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/stylist"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/venue"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
)

// Gateway bundles one implementation of every repository.
type Gateway struct {
	Accounts     account.Repository
	Companies    company.Repository
	Venues       venue.Repository
	Stylists     stylist.Repository
	Clients      client.Repository
	Appointments appointment.Repository
	Audit        audit.Store
}

func NewGormGateway(db *gorm.DB, feed realtime.Publisher, logger *zap.Logger) Gateway {
	return Gateway{
		Accounts:     repository.NewAccountGormRepository(db),
		Companies:    repository.NewCompanyGormRepository(db),
		Venues:       repository.NewVenueGormRepository(db),
		Stylists:     repository.NewStylistGormRepository(db),
		Clients:      repository.NewClientGormRepository(db, feed, logger),
		Appointments: repository.NewAppointmentGormRepository(db),
		Audit:        repository.NewAuditGormStore(db),
	}
}

func NewMemoryGateway(store *memory.Store) Gateway {
	return Gateway{
		Accounts:     store,
		Companies:    store,
		Venues:       store,
		Stylists:     store,
		Clients:      store,
		Appointments: store,
		Audit:        store,
	}
}
