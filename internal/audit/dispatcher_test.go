package audit

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/models"
)

type recordingStore struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (s *recordingStore) AppendAudit(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, *l)
	return nil
}

func (s *recordingStore) ListAudit(context.Context, Filter) ([]models.AuditLog, int64, error) {
	return nil, 0, nil
}

func TestDispatcherWritesEventsOnClose(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(New(store), zap.NewNop())

	d.Dispatch(Event{
		CompanyID: "co-1",
		UserID:    "u-1",
		Action:    ActionClientCreated,
		Entity:    "client",
		EntityID:  "c-1",
		Metadata:  map[string]string{"venue_id": "v-1"},
	})
	d.Close()

	if len(store.rows) != 1 {
		t.Fatalf("expected 1 audit row, got %d", len(store.rows))
	}
	row := store.rows[0]
	if row.Action != ActionClientCreated || row.EntityID != "c-1" {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.Metadata != `{"venue_id":"v-1"}` {
		t.Fatalf("metadata = %q", row.Metadata)
	}
}

func TestNilDispatcherIgnoresEvents(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: ActionClientUpdated})
}

func TestDispatchAfterCloseIsDropped(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(New(store), zap.NewNop())
	d.Close()

	d.Dispatch(Event{Action: ActionClientCreated, Entity: "client", EntityID: "late"})
	d.Close()

	if len(store.rows) != 0 {
		t.Fatalf("expected late event dropped, got %d rows", len(store.rows))
	}
}
