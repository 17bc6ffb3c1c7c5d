package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

// Actions recorded by the back office.
const (
	ActionClientCreated        = "client_created"
	ActionClientUpdated        = "client_updated"
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentStatus    = "appointment_status_changed"
	ActionAppointmentPhotoSent = "photo_uploaded"
)

type Filter struct {
	CompanyID string
	Action    string
	Entity    string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// Store persists audit rows. List returns newest first plus the total
// matching count before paging.
type Store interface {
	AppendAudit(ctx context.Context, l *models.AuditLog) error
	ListAudit(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

// Actor is the authenticated caller a use case acts for.
type Actor struct {
	UserID    string
	CompanyID string
}

func (a Actor) Event(action, entity, entityID string, meta any) Event {
	return Event{
		CompanyID: a.CompanyID,
		UserID:    a.UserID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Metadata:  meta,
	}
}
