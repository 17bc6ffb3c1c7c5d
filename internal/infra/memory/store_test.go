package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
)

func seedVenue(t *testing.T, s *Store) *models.Venue {
	t.Helper()
	ctx := context.Background()
	co := &models.Company{Name: "Haus"}
	if err := s.CreateCompany(ctx, co); err != nil {
		t.Fatal(err)
	}
	v := &models.Venue{CompanyID: co.ID, Name: "Mitte"}
	if err := s.CreateVenue(ctx, v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestClientsListNewestFirstWithTies(t *testing.T) {
	s := NewStore()
	v := seedVenue(t, s)
	ctx := context.Background()

	fixed := s.now()
	s.now = func() time.Time { return fixed }

	var ids []string
	for _, name := range []string{"Ada", "Grace", "Hedy"} {
		id, err := s.InsertClient(ctx, client.NewClient{VenueID: v.ID, FirstName: name, LastName: "X"}, "")
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	got, err := s.ListClients(ctx, v.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0].ID != ids[2] || got[2].ID != ids[0] {
		t.Fatalf("expected newest first, got %v", got)
	}
}

func TestInsertClientStampsCompanyAndAnnounces(t *testing.T) {
	broker := realtime.NewBroker()
	s := NewStore().WithFeed(broker)
	v := seedVenue(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := broker.Subscribe(ctx, realtime.TableClients)
	if err != nil {
		t.Fatal(err)
	}

	id, err := s.InsertClient(ctx, client.NewClient{VenueID: v.ID, FirstName: "Ada", LastName: "L"}, "u1")
	if err != nil {
		t.Fatal(err)
	}

	c, err := s.GetClient(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if c.CompanyID != v.CompanyID || c.CreatedBy == nil || *c.CreatedBy != "u1" {
		t.Fatalf("expected stamped ownership, got %+v", c)
	}

	select {
	case ev := <-events:
		if ev.Op != realtime.OpInsert || ev.RowID != id {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("expected an insert event")
	}

	if _, err := s.InsertClient(ctx, client.NewClient{VenueID: "missing", FirstName: "A", LastName: "B"}, ""); !httperr.IsValidation(err) {
		t.Fatalf("expected validation error for unknown venue, got %v", err)
	}
}

type downFeed struct{}

func (downFeed) Publish(context.Context, realtime.ChangeEvent) error {
	return errors.New("broker down")
}

func TestUnannouncedChangeIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewStore().WithFeed(downFeed{}).WithLogger(zap.New(core))
	v := seedVenue(t, s)
	ctx := context.Background()

	id, err := s.InsertClient(ctx, client.NewClient{VenueID: v.ID, FirstName: "Ada", LastName: "L"}, "")
	if err != nil {
		t.Fatalf("expected insert to succeed despite the feed, got %v", err)
	}

	entries := logs.FilterMessage("client change not announced").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["client_id"]; got != id {
		t.Fatalf("expected client_id %q in log, got %v", id, got)
	}
}

func TestReturnedClientIsACopy(t *testing.T) {
	s := NewStore()
	v := seedVenue(t, s)
	ctx := context.Background()

	note := "likes espresso"
	id, err := s.InsertClient(ctx, client.NewClient{VenueID: v.ID, FirstName: "Ada", LastName: "L", Notes: note}, "")
	if err != nil {
		t.Fatal(err)
	}

	c, _ := s.GetClient(ctx, id)
	*c.Notes = "changed"

	again, _ := s.GetClient(ctx, id)
	if again.Notes == nil || *again.Notes != note {
		t.Fatalf("stored client was mutated through a returned copy: %v", again.Notes)
	}
}

func TestDeleteVenueRefusedWhileReferenced(t *testing.T) {
	s := NewStore()
	v := seedVenue(t, s)
	ctx := context.Background()

	if err := s.CreateStylist(ctx, &models.Stylist{VenueID: v.ID, Name: "Lena"}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteVenue(ctx, v.ID); !httperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := s.DeleteVenue(ctx, "missing"); !httperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestChildBatchNeedsParent(t *testing.T) {
	s := NewStore()
	err := s.CreateServices(context.Background(), []models.AppointmentService{{AppointmentID: "nope", ServiceName: "cut"}})
	if !httperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListAuditPagesNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for _, action := range []string{"a", "b", "c"} {
		if err := s.AppendAudit(ctx, &models.AuditLog{CompanyID: "co", Action: action, Entity: "client"}); err != nil {
			t.Fatal(err)
		}
	}
	_ = s.AppendAudit(ctx, &models.AuditLog{CompanyID: "other", Action: "x", Entity: "client"})

	logs, total, err := s.ListAudit(ctx, audit.Filter{CompanyID: "co", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(logs) != 2 || logs[0].Action != "b" || logs[1].Action != "a" {
		t.Fatalf("unexpected page %+v", logs)
	}
}

func TestAppointmentsOnTheSameDateListLatestCreatedFirst(t *testing.T) {
	s := NewStore()
	v := seedVenue(t, s)
	ctx := context.Background()

	clientID, err := s.InsertClient(ctx, client.NewClient{VenueID: v.ID, FirstName: "Ada", LastName: "L"}, "")
	if err != nil {
		t.Fatal(err)
	}

	date := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		ap := &models.Appointment{ClientID: clientID, VenueID: v.ID, Date: date}
		if err := s.CreateAppointment(ctx, ap); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, ap.ID)
	}

	byClient, err := s.ListAppointmentsByClient(ctx, clientID)
	if err != nil {
		t.Fatal(err)
	}
	recent, err := s.ListRecentAppointments(ctx, []string{v.ID}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(byClient) != 3 || byClient[0].ID != ids[2] || byClient[2].ID != ids[0] {
		t.Fatalf("expected latest created first, got %v", byClient)
	}
	if len(recent) != 2 || recent[0].ID != ids[2] || recent[1].ID != ids[1] {
		t.Fatalf("expected recent list to break ties the same way, got %v", recent)
	}

	none, _ := s.ListRecentAppointments(ctx, []string{}, 10)
	if len(none) != 0 {
		t.Fatalf("expected an empty venue scope to match nothing, got %d", len(none))
	}
}
