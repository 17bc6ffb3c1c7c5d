package clientlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
	clientuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
)

type fixture struct {
	store  *memory.Store
	broker *realtime.Broker
	venueA string
	venueB string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	broker := realtime.NewBroker()
	store := memory.NewStore().WithFeed(broker)

	co := &models.Company{Name: "Haus"}
	if err := store.CreateCompany(ctx, co); err != nil {
		t.Fatal(err)
	}
	a := &models.Venue{CompanyID: co.ID, Name: "A"}
	b := &models.Venue{CompanyID: co.ID, Name: "B"}
	if err := store.CreateVenue(ctx, a); err != nil {
		t.Fatal(err)
	}
	if err := store.CreateVenue(ctx, b); err != nil {
		t.Fatal(err)
	}

	store.PutUserProfile(models.UserProfile{AuthID: "stylist", CompanyID: co.ID, VenueID: a.ID})
	store.PutUserProfile(models.UserProfile{AuthID: "admin", IsSuperAdmin: true})

	return fixture{store: store, broker: broker, venueA: a.ID, venueB: b.ID}
}

func (f fixture) insert(t *testing.T, venueID, first string) string {
	t.Helper()
	id, err := f.store.InsertClient(context.Background(), client.NewClient{
		VenueID:   venueID,
		FirstName: first,
		LastName:  "X",
	}, "")
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (f fixture) viewModel() *ViewModel {
	return New(clientuc.NewListVisibleClients(f.store, f.store), zap.NewNop())
}

func TestLoadScopesByVenueUnlessSuperAdmin(t *testing.T) {
	f := newFixture(t)
	f.insert(t, f.venueA, "first")
	f.insert(t, f.venueB, "other")
	newest := f.insert(t, f.venueA, "second")
	ctx := context.Background()

	stylist := f.viewModel()
	if err := stylist.Load(ctx, "stylist"); err != nil {
		t.Fatal(err)
	}
	got, ok := stylist.Clients()
	if !ok || len(got) != 2 {
		t.Fatalf("stylist sees %d clients, want 2", len(got))
	}
	if got[0].ID != newest {
		t.Fatalf("list is not newest first: %s", got[0].FirstName)
	}

	admin := f.viewModel()
	if err := admin.Load(ctx, "admin"); err != nil {
		t.Fatal(err)
	}
	if all, _ := admin.Clients(); len(all) != 3 {
		t.Fatalf("admin sees %d clients, want 3", len(all))
	}
}

func TestLoadUnknownUserFails(t *testing.T) {
	f := newFixture(t)
	vm := f.viewModel()

	if err := vm.Load(context.Background(), "ghost"); err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := vm.Clients(); ok {
		t.Fatal("failed load must not look loaded")
	}
	if vm.Err() == nil {
		t.Fatal("error not kept")
	}
}

func TestWatchReloadsOnInsert(t *testing.T) {
	f := newFixture(t)
	vm := f.viewModel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := vm.Load(ctx, "stylist"); err != nil {
		t.Fatal(err)
	}

	updates := make(chan []models.Client, 4)
	done := make(chan struct{})
	go func() {
		vm.Watch(ctx, f.broker, func(c []models.Client) { updates <- c })
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for f.broker.Subscribers(realtime.TableClients) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("watch never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	f.insert(t, f.venueA, "fresh")

	select {
	case got := <-updates:
		if len(got) != 1 || got[0].FirstName != "fresh" {
			t.Fatalf("unexpected update %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after insert")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

type deadFeed struct{}

func (deadFeed) Subscribe(context.Context, string) (<-chan realtime.ChangeEvent, error) {
	return nil, errors.New("connection refused")
}

func TestWatchWithoutFeedKeepsListWorking(t *testing.T) {
	f := newFixture(t)
	vm := f.viewModel()
	ctx := context.Background()

	vm.Watch(ctx, nil, nil)
	vm.Watch(ctx, deadFeed{}, nil)

	f.insert(t, f.venueA, "still")
	if err := vm.Load(ctx, "stylist"); err != nil {
		t.Fatal(err)
	}
	if got, _ := vm.Clients(); len(got) != 1 {
		t.Fatalf("got %d clients", len(got))
	}
}
