// Package clientlist keeps the client table of the back office in sync with
// the realtime feed.
package clientlist

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-backoffice/internal/httperr"
	"github.com/BruksfildServices01/salon-backoffice/internal/models"
	"github.com/BruksfildServices01/salon-backoffice/internal/realtime"
	clientuc "github.com/BruksfildServices01/salon-backoffice/internal/usecase/client"
)

var ErrLoadInProgress = httperr.ErrBusiness(httperr.CodeLoadInProgress)

type ViewModel struct {
	list   *clientuc.ListVisibleClients
	logger *zap.Logger

	mu      sync.Mutex
	loading bool
	loaded  bool
	userID  string
	clients []models.Client
	err     error
}

func New(list *clientuc.ListVisibleClients, logger *zap.Logger) *ViewModel {
	return &ViewModel{list: list, logger: logger}
}

// Load reads the clients visible to authUserID. Overlapping loads are
// rejected with ErrLoadInProgress.
func (vm *ViewModel) Load(ctx context.Context, authUserID string) error {
	vm.mu.Lock()
	if vm.loading {
		vm.mu.Unlock()
		return ErrLoadInProgress
	}
	vm.loading = true
	vm.userID = authUserID
	vm.mu.Unlock()

	clients, err := vm.list.Execute(ctx, authUserID)

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.loading = false
	if err != nil {
		vm.err = err
		return err
	}
	vm.clients = clients
	vm.loaded = true
	vm.err = nil
	return nil
}

// Clients returns a copy of the last loaded list; ok is false before the
// first successful load.
func (vm *ViewModel) Clients() ([]models.Client, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if !vm.loaded {
		return nil, false
	}
	out := make([]models.Client, len(vm.clients))
	for i, c := range vm.clients {
		out[i] = c.Clone()
	}
	return out, true
}

func (vm *ViewModel) Err() error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.err
}

// Watch reloads the list on every client-table change until ctx is done
// and hands each fresh list to onChange. A nil feed or a failed
// subscription is logged and Watch returns; the list itself keeps working.
func (vm *ViewModel) Watch(
	ctx context.Context,
	feed realtime.Subscriber,
	onChange func([]models.Client),
) {
	if feed == nil {
		vm.logger.Info("client list realtime feed disabled")
		return
	}

	events, err := feed.Subscribe(ctx, realtime.TableClients)
	if err != nil {
		vm.logger.Warn("client list subscription failed", zap.Error(err))
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			vm.reload(ctx, ev, onChange)
		}
	}
}

func (vm *ViewModel) reload(ctx context.Context, ev realtime.ChangeEvent, onChange func([]models.Client)) {
	vm.mu.Lock()
	userID := vm.userID
	vm.mu.Unlock()

	err := vm.Load(ctx, userID)
	switch {
	case errors.Is(err, ErrLoadInProgress):
		return
	case err != nil:
		if ctx.Err() == nil {
			vm.logger.Warn("client list reload failed",
				zap.String("op", string(ev.Op)),
				zap.String("row_id", ev.RowID),
				zap.Error(err),
			)
		}
		return
	}

	if onChange != nil {
		clients, _ := vm.Clients()
		onChange(clients)
	}
}
