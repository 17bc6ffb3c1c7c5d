package clientprofile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/infra/memory"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	appointmentuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
	clientuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
)

// ======================================================
// Fixtures
// ======================================================

type env struct {
	store     *memory.Store
	venueID   string
	stylistID string
	actor     audit.Actor
}

func newEnv(t *testing.T) env {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	co := &models.Company{Name: "Haus"}
	if err := store.CreateCompany(ctx, co); err != nil {
		t.Fatal(err)
	}
	v := &models.Venue{CompanyID: co.ID, Name: "Mitte"}
	if err := store.CreateVenue(ctx, v); err != nil {
		t.Fatal(err)
	}
	st := &models.Stylist{VenueID: v.ID, Name: "Lena"}
	if err := store.CreateStylist(ctx, st); err != nil {
		t.Fatal(err)
	}
	store.PutUserProfile(models.UserProfile{
		AuthID:    "user-1",
		CompanyID: co.ID,
		VenueID:   v.ID,
		StylistID: &st.ID,
	})

	return env{
		store:     store,
		venueID:   v.ID,
		stylistID: st.ID,
		actor:     audit.Actor{UserID: "user-1", CompanyID: co.ID},
	}
}

func (e env) client(t *testing.T, first string) string {
	t.Helper()
	id, err := e.store.InsertClient(context.Background(), client.NewClient{
		VenueID:   e.venueID,
		FirstName: first,
		LastName:  "Tester",
		Email:     first + "@example.com",
	}, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (e env) history(t *testing.T, clientID string, dates ...time.Time) {
	t.Helper()
	ctx := context.Background()
	for _, d := range dates {
		ap := &models.Appointment{ClientID: clientID, StylistID: e.stylistID, Date: d}
		if err := e.store.CreateAppointment(ctx, ap); err != nil {
			t.Fatal(err)
		}
		if err := e.store.CreateServices(ctx, []models.AppointmentService{{AppointmentID: ap.ID, ServiceName: "cut"}}); err != nil {
			t.Fatal(err)
		}
	}
}

func newVM(repoC client.Repository, repoA appointment.Repository, store *memory.Store) *ViewModel {
	logger := zap.NewNop()
	agg := appointmentuc.NewAggregator(repoA, store, logger, 4)
	return New(Deps{
		Clients:      repoC,
		Appointments: repoA,
		Aggregator:   agg,
		Create:       appointmentuc.NewCreateAppointment(repoA, nil, logger),
		Update:       clientuc.NewUpdateClient(repoC, nil),
		Logger:       logger,
	})
}

func snapshotJSON(t *testing.T, vm *ViewModel) []byte {
	t.Helper()
	snap, ok := vm.Snapshot()
	if !ok {
		t.Fatal("no snapshot")
	}
	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// slowClients blocks GetClient until release is closed.
type slowClients struct {
	*memory.Store
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowClients) GetClient(ctx context.Context, id string) (*models.Client, error) {
	s.once.Do(func() { close(s.entered) })
	select {
	case <-s.release:
	case <-time.After(2 * time.Second):
		return nil, errors.New("never released")
	}
	return s.Store.GetClient(ctx, id)
}

// failingHistory fails the appointment history read.
type failingHistory struct {
	*memory.Store
}

func (failingHistory) ListAppointmentsByClient(context.Context, string) ([]models.Appointment, error) {
	return nil, httperr.Remote("list_appointments", errors.New("timeout"))
}

// ======================================================
// Load
// ======================================================

func TestLoadOrdersHistoryByDateDescending(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	base := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	e.history(t, id, base.AddDate(0, 0, 5), base, base.AddDate(0, 1, 0), base.AddDate(0, 0, 12))

	vm := newVM(e.store, e.store, e.store)
	if err := vm.Load(context.Background(), id); err != nil {
		t.Fatalf("Load: %v", err)
	}

	snap, _ := vm.Snapshot()
	if len(snap.Appointments) != 4 {
		t.Fatalf("got %d appointments, want 4", len(snap.Appointments))
	}
	for i := 1; i < len(snap.Appointments); i++ {
		if snap.Appointments[i].Date.After(snap.Appointments[i-1].Date) {
			t.Fatalf("history not ordered at %d", i)
		}
	}
	if snap.Appointments[0].StylistName != "Lena" || len(snap.Appointments[0].Services) != 1 {
		t.Fatalf("appointment not aggregated: %+v", snap.Appointments[0])
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

func TestLoadFailureIsDistinctFromEmpty(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")

	empty := newVM(e.store, e.store, e.store)
	if err := empty.Load(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	if empty.State() != StateReady || empty.Err() != nil {
		t.Fatalf("empty history should load: %s %v", empty.State(), empty.Err())
	}

	failing := newVM(e.store, failingHistory{e.store}, e.store)
	err := failing.Load(context.Background(), id)
	if !httperr.IsRemote(err) {
		t.Fatalf("expected remote failure, got %v", err)
	}
	if failing.State() != StateFailed || failing.Err() == nil {
		t.Fatalf("state = %s, err = %v", failing.State(), failing.Err())
	}
	if _, ok := failing.Snapshot(); ok {
		t.Fatal("failed first load must not expose a snapshot")
	}

	// a failed view-model can be reloaded
	failing.deps.Appointments = e.store
	if err := failing.Load(context.Background(), id); err != nil {
		t.Fatalf("reload: %v", err)
	}
}

func TestLoadMissingClientIsNotFound(t *testing.T) {
	e := newEnv(t)
	vm := newVM(e.store, e.store, e.store)

	if err := vm.Load(context.Background(), "nope"); !httperr.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestConcurrentLoadIsRejected(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	slow := &slowClients{Store: e.store, entered: make(chan struct{}), release: make(chan struct{})}
	vm := newVM(slow, e.store, e.store)

	done := make(chan error, 1)
	go func() { done <- vm.Load(context.Background(), id) }()

	select {
	case <-slow.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first load never started")
	}

	if err := vm.Load(context.Background(), id); !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("expected ErrLoadInProgress, got %v", err)
	}
	if err := vm.BeginEdit(); !errors.Is(err, ErrLoadInProgress) {
		t.Fatalf("expected ErrLoadInProgress from BeginEdit, got %v", err)
	}

	close(slow.release)
	if err := <-done; err != nil {
		t.Fatalf("first load: %v", err)
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

func TestClosedViewModelDiscardsInFlightLoad(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	slow := &slowClients{Store: e.store, entered: make(chan struct{}), release: make(chan struct{})}
	vm := newVM(slow, e.store, e.store)

	done := make(chan error, 1)
	go func() { done <- vm.Load(context.Background(), id) }()

	<-slow.entered
	vm.Close()
	close(slow.release)

	if err := <-done; !errors.Is(err, ErrDiscarded) {
		t.Fatalf("expected ErrDiscarded, got %v", err)
	}
	if _, ok := vm.Snapshot(); ok {
		t.Fatal("discarded load was applied")
	}
	if err := vm.Load(context.Background(), id); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestInstancesAreIsolated(t *testing.T) {
	e := newEnv(t)
	ada := e.client(t, "ada")
	bob := e.client(t, "bob")
	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	e.history(t, ada, base, base.AddDate(0, 0, 1))
	e.history(t, bob, base.AddDate(0, 0, 2))

	vmA := newVM(e.store, e.store, e.store)
	vmB := newVM(e.store, e.store, e.store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() { defer wg.Done(); errs[0] = vmA.Load(context.Background(), ada) }()
	go func() { defer wg.Done(); errs[1] = vmB.Load(context.Background(), bob) }()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	a, _ := vmA.Snapshot()
	b, _ := vmB.Snapshot()
	if a.Client.ID != ada || len(a.Appointments) != 2 {
		t.Fatalf("ada snapshot wrong: %s, %d", a.Client.ID, len(a.Appointments))
	}
	if b.Client.ID != bob || len(b.Appointments) != 1 {
		t.Fatalf("bob snapshot wrong: %s, %d", b.Client.ID, len(b.Appointments))
	}

	// mutating a returned snapshot never reaches the view-model
	a.Appointments[0].Services[0].ServiceName = "changed"
	*a.Client.Email = "changed@example.com"
	again, _ := vmA.Snapshot()
	if again.Appointments[0].Services[0].ServiceName != "cut" || *again.Client.Email != "ada@example.com" {
		t.Fatal("snapshot shares memory with the view-model")
	}
}

// ======================================================
// Edit buffer
// ======================================================

func TestBeginThenCancelLeavesSnapshotIdentical(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	e.history(t, id, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

	vm := newVM(e.store, e.store, e.store)
	if err := vm.Load(context.Background(), id); err != nil {
		t.Fatal(err)
	}
	before := snapshotJSON(t, vm)

	if err := vm.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	name := "Grace"
	if err := vm.Stage(client.Patch{FirstName: &name}); err != nil {
		t.Fatal(err)
	}
	if d, _ := vm.Draft(); d.FirstName != "Grace" {
		t.Fatalf("draft first name = %q", d.FirstName)
	}
	if err := vm.CancelEdit(); err != nil {
		t.Fatal(err)
	}

	if after := snapshotJSON(t, vm); !bytes.Equal(before, after) {
		t.Fatalf("snapshot changed:\nbefore %s\nafter  %s", before, after)
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

func TestCommitEditUpdatesRemoteAndLocal(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	vm := newVM(e.store, e.store, e.store)
	ctx := context.Background()
	if err := vm.Load(ctx, id); err != nil {
		t.Fatal(err)
	}

	if err := vm.BeginEdit(); err != nil {
		t.Fatal(err)
	}
	notes := "likes espresso"
	if err := vm.Stage(client.Patch{Notes: &notes}); err != nil {
		t.Fatal(err)
	}
	last := "Byron"
	if err := vm.CommitEdit(ctx, e.actor, client.Patch{LastName: &last}); err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}

	snap, _ := vm.Snapshot()
	if snap.Client.LastName != "Byron" || snap.Client.Notes == nil || *snap.Client.Notes != notes {
		t.Fatalf("local client not replaced: %+v", snap.Client)
	}
	remote, _ := e.store.GetClient(ctx, id)
	if remote.LastName != "Byron" {
		t.Fatalf("remote client not updated: %+v", remote)
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

func TestCommitEditForbiddenKeepsEditing(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	vm := newVM(e.store, e.store, e.store)
	ctx := context.Background()
	if err := vm.Load(ctx, id); err != nil {
		t.Fatal(err)
	}
	before := snapshotJSON(t, vm)

	_ = vm.BeginEdit()
	last := "Byron"
	err := vm.CommitEdit(ctx, audit.Actor{UserID: "stranger"}, client.Patch{LastName: &last})
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if vm.State() != StateEditing {
		t.Fatalf("state = %s", vm.State())
	}
	if d, _ := vm.Draft(); d.LastName != "Byron" {
		t.Fatal("staged edits were lost")
	}
	if !bytes.Equal(before, snapshotJSON(t, vm)) {
		t.Fatal("snapshot changed on failed commit")
	}
}

func TestEditRequiresReady(t *testing.T) {
	e := newEnv(t)
	vm := newVM(e.store, e.store, e.store)

	if err := vm.BeginEdit(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err := vm.CancelEdit(); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

// ======================================================
// Create appointment
// ======================================================

func TestCreateAppointmentOnEmptyClientReloadsHistory(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	vm := newVM(e.store, e.store, e.store)
	ctx := context.Background()
	if err := vm.Load(ctx, id); err != nil {
		t.Fatal(err)
	}

	date, _ := time.Parse(time.RFC3339, "2024-03-20T10:00:00Z")
	report, err := vm.CreateAppointment(ctx, e.actor, appointment.NewAppointment{
		Date:      &date,
		StylistID: e.stylistID,
	})
	if err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if report.AppointmentID == "" {
		t.Fatal("no appointment id reported")
	}

	snap, _ := vm.Snapshot()
	if len(snap.Appointments) != 1 {
		t.Fatalf("got %d appointments, want 1", len(snap.Appointments))
	}
	ap := snap.Appointments[0]
	if ap.ID != report.AppointmentID || !ap.Date.Equal(date) {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if len(ap.Services)+len(ap.Formulas)+len(ap.Treatments)+len(ap.Products)+len(ap.Photos) != 0 {
		t.Fatalf("children should be empty: %+v", ap)
	}
	if ap.Services == nil || ap.Formulas == nil || ap.Treatments == nil || ap.Products == nil || ap.Photos == nil {
		t.Fatal("children must be arrays")
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

func TestCreateEmptyAppointmentIsRejectedBeforeAnyWrite(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	vm := newVM(e.store, e.store, e.store)
	ctx := context.Background()
	if err := vm.Load(ctx, id); err != nil {
		t.Fatal(err)
	}
	before := snapshotJSON(t, vm)

	_, err := vm.CreateAppointment(ctx, e.actor, appointment.NewAppointment{})
	if !httperr.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	rows, _ := e.store.ListAppointmentsByClient(ctx, id)
	if len(rows) != 0 {
		t.Fatalf("a write happened: %+v", rows)
	}
	if !bytes.Equal(before, snapshotJSON(t, vm)) {
		t.Fatal("snapshot changed")
	}
	if vm.State() != StateReady {
		t.Fatalf("state = %s", vm.State())
	}
}

// brokenProducts fails the product batch only.
type brokenProducts struct {
	*memory.Store
}

func (brokenProducts) CreateProducts(context.Context, []models.AppointmentProduct) error {
	return httperr.Remote("insert_products", errors.New("rls denied"))
}

func TestCreateAppointmentPartialWriteStillReloads(t *testing.T) {
	e := newEnv(t)
	id := e.client(t, "ada")
	repo := brokenProducts{e.store}
	vm := newVM(e.store, repo, e.store)
	ctx := context.Background()
	if err := vm.Load(ctx, id); err != nil {
		t.Fatal(err)
	}

	date := time.Now().UTC()
	_, err := vm.CreateAppointment(ctx, e.actor, appointment.NewAppointment{
		Date:      &date,
		StylistID: e.stylistID,
		Services:  []appointment.ServiceInput{{ServiceName: "balayage"}},
		Products:  []appointment.ProductInput{{ProductName: "toner", Quantity: "2"}},
	})

	var pw *httperr.PartialWriteError
	if !errors.As(err, &pw) || len(pw.Failed) != 1 || pw.Failed[0] != "products" {
		t.Fatalf("expected partial write on products, got %v", err)
	}

	snap, _ := vm.Snapshot()
	if len(snap.Appointments) != 1 {
		t.Fatalf("history not reloaded: %d", len(snap.Appointments))
	}
	if len(snap.Appointments[0].Services) != 1 || len(snap.Appointments[0].Products) != 0 {
		t.Fatalf("reload does not reflect what was written: %+v", snap.Appointments[0])
	}
}
