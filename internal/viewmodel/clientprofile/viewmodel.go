// Package clientprofile holds the view-model behind a client's profile page:
// the client row, its aggregated appointment history and an edit buffer.
package clientprofile

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/audit"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-backoffice/internal/domain/client"
	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	appointmentuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/appointment"
	clientuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
)

var (
	ErrLoadInProgress = httperr.ErrBusiness(httperr.CodeLoadInProgress)
	ErrBusy           = httperr.ErrBusiness(httperr.CodeBusy)
	ErrInvalidState   = httperr.ErrBusiness(httperr.CodeInvalidState)
	ErrNotLoaded      = httperr.ErrBusiness("not_loaded")
	// ErrDiscarded is returned by a load whose result was dropped because
	// the view-model was closed while it was in flight.
	ErrDiscarded = httperr.ErrBusiness("load_discarded")
	ErrClosed    = httperr.ErrBusiness("closed")
)

// Snapshot is the data handed to the presentation layer. It never shares
// memory with the view-model.
type Snapshot struct {
	Client       models.Client                       `json:"client"`
	Appointments []appointment.AggregatedAppointment `json:"appointments"`
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Client:       s.Client.Clone(),
		Appointments: make([]appointment.AggregatedAppointment, len(s.Appointments)),
	}
	for i, a := range s.Appointments {
		out.Appointments[i] = a.Clone()
	}
	return out
}

type Deps struct {
	Clients      client.Repository
	Appointments appointment.Repository
	Aggregator   *appointmentuc.Aggregator
	Create       *appointmentuc.CreateAppointment
	Update       *clientuc.UpdateClient
	Logger       *zap.Logger
}

// ViewModel is owned by one presentation surface. Its methods are safe for
// concurrent use; operations that would overlap a load or a write are
// rejected instead of queued.
type ViewModel struct {
	deps Deps

	mu       sync.Mutex
	state    State
	busy     bool
	closed   bool
	gen      uint64
	clientID string
	snapshot *Snapshot
	draft    client.Patch
	err      error
}

func New(deps Deps) *ViewModel {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &ViewModel{deps: deps, state: StateUnloaded}
}

// ======================================================
// Accessors
// ======================================================

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Err is the last unrecovered failure, cleared by the next successful load.
func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Snapshot returns a deep copy of the last loaded data. ok is false before
// the first successful load.
func (vm *ViewModel) Snapshot() (Snapshot, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.snapshot == nil {
		return Snapshot{}, false
	}
	return vm.snapshot.clone(), true
}

// Draft is the client as it would look after committing the staged edits.
func (vm *ViewModel) Draft() (models.Client, error) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.state != StateEditing {
		return models.Client{}, ErrInvalidState
	}
	c := vm.snapshot.Client.Clone()
	vm.draft.Apply(&c)
	return c, nil
}

// Close makes any in-flight load discard its result.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.closed = true
	vm.gen++
}

// ======================================================
// Load
// ======================================================

func (vm *ViewModel) Load(ctx context.Context, clientID string) error {
	vm.mu.Lock()
	if err := vm.checkIdle(StateUnloaded, StateReady, StateFailed); err != nil {
		vm.mu.Unlock()
		return err
	}
	vm.clientID = clientID
	gen := vm.startLoad()
	vm.mu.Unlock()

	return vm.runLoad(ctx, gen, clientID)
}

// Reload loads the current client again.
func (vm *ViewModel) Reload(ctx context.Context) error {
	vm.mu.Lock()
	if vm.clientID == "" {
		vm.mu.Unlock()
		return ErrNotLoaded
	}
	id := vm.clientID
	vm.mu.Unlock()
	return vm.Load(ctx, id)
}

// checkIdle must be called with mu held.
func (vm *ViewModel) checkIdle(allowed ...State) error {
	if vm.closed {
		return ErrClosed
	}
	if vm.state == StateLoading {
		return ErrLoadInProgress
	}
	if vm.busy {
		return ErrBusy
	}
	for _, s := range allowed {
		if vm.state == s {
			return nil
		}
	}
	return ErrInvalidState
}

// startLoad must be called with mu held.
func (vm *ViewModel) startLoad() uint64 {
	vm.state = StateLoading
	vm.busy = false
	vm.gen++
	return vm.gen
}

func (vm *ViewModel) runLoad(ctx context.Context, gen uint64, clientID string) error {
	snap, err := vm.fetch(ctx, clientID)

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if vm.closed || vm.gen != gen {
		vm.deps.Logger.Debug("client profile load discarded", zap.String("client_id", clientID))
		return ErrDiscarded
	}

	if err != nil {
		vm.state = StateFailed
		vm.err = err
		return err
	}

	vm.snapshot = snap
	vm.draft = client.Patch{}
	vm.state = StateReady
	vm.err = nil
	return nil
}

// fetch reads the client, then its history, then aggregates every
// appointment concurrently.
func (vm *ViewModel) fetch(ctx context.Context, clientID string) (*Snapshot, error) {
	c, err := vm.deps.Clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	rows, err := vm.deps.Appointments.ListAppointmentsByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	history := vm.deps.Aggregator.AggregateHistory(ctx, rows)

	// children of a cancelled load read as empty, which must not pass
	// for a real result
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Snapshot{Client: c.Clone(), Appointments: history}, nil
}

// ======================================================
// Edit buffer
// ======================================================

func (vm *ViewModel) BeginEdit() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.checkIdle(StateReady); err != nil {
		return err
	}
	vm.draft = client.Patch{}
	vm.state = StateEditing
	return nil
}

// Stage layers p over the edits staged so far.
func (vm *ViewModel) Stage(p client.Patch) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.checkIdle(StateEditing); err != nil {
		return err
	}
	vm.draft = vm.draft.Merge(p)
	return nil
}

func (vm *ViewModel) CancelEdit() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err := vm.checkIdle(StateEditing); err != nil {
		return err
	}
	vm.draft = client.Patch{}
	vm.state = StateReady
	return nil
}

// CommitEdit sends the staged edits plus p through the guarded update and,
// on success, replaces the local client. On failure the view-model stays
// in editing with the edits kept.
func (vm *ViewModel) CommitEdit(ctx context.Context, actor audit.Actor, p client.Patch) error {
	vm.mu.Lock()
	if err := vm.checkIdle(StateEditing); err != nil {
		vm.mu.Unlock()
		return err
	}
	patch := vm.draft.Merge(p)
	if err := patch.Validate(); err != nil {
		vm.mu.Unlock()
		return err
	}
	id := vm.snapshot.Client.ID
	gen := vm.gen
	vm.busy = true
	vm.mu.Unlock()

	err := vm.deps.Update.Execute(ctx, actor, id, patch)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.busy = false

	if vm.closed || vm.gen != gen {
		return ErrDiscarded
	}
	if err != nil {
		vm.err = err
		vm.draft = patch
		return err
	}

	next := vm.snapshot.clone()
	patch.Apply(&next.Client)
	vm.snapshot = &next
	vm.draft = client.Patch{}
	vm.state = StateReady
	vm.err = nil
	return nil
}

// ======================================================
// Create appointment
// ======================================================

// CreateAppointment writes an appointment for the loaded client and
// reloads the history. Invalid input is rejected before any write. When
// the appointment row was written the history is reloaded even if some
// child batches failed; the returned error then carries the
// PartialWriteError.
func (vm *ViewModel) CreateAppointment(
	ctx context.Context,
	actor audit.Actor,
	in appointment.NewAppointment,
) (appointmentuc.WriteReport, error) {

	vm.mu.Lock()
	if err := vm.checkIdle(StateReady); err != nil {
		vm.mu.Unlock()
		return appointmentuc.WriteReport{}, err
	}
	in.ClientID = vm.snapshot.Client.ID
	if in.VenueID == "" {
		in.VenueID = vm.snapshot.Client.VenueID
	}
	if err := in.Validate(); err != nil {
		vm.mu.Unlock()
		return appointmentuc.WriteReport{}, err
	}
	clientID := vm.clientID
	gen := vm.gen
	vm.busy = true
	vm.mu.Unlock()

	report, writeErr := vm.deps.Create.Execute(ctx, actor, in)

	vm.mu.Lock()
	if vm.closed || vm.gen != gen {
		vm.busy = false
		vm.mu.Unlock()
		return report, errors.Join(writeErr, ErrDiscarded)
	}
	if report.AppointmentID == "" {
		vm.busy = false
		vm.err = writeErr
		vm.mu.Unlock()
		return report, writeErr
	}
	loadGen := vm.startLoad()
	vm.mu.Unlock()

	if err := vm.runLoad(ctx, loadGen, clientID); err != nil {
		return report, errors.Join(writeErr, err)
	}
	return report, writeErr
}
