package realtime

import (
	"context"
	"time"
)

type Op string

const (
	OpInsert Op = "INSERT"
	OpUpdate Op = "UPDATE"
	OpDelete Op = "DELETE"
)

const TableClients = "clients"

// ChangeEvent is one row change on a watched table.
type ChangeEvent struct {
	Table string    `json:"table"`
	Op    Op        `json:"op"`
	RowID string    `json:"row_id"`
	At    time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev ChangeEvent) error
}

// Subscriber delivers change events for one table until ctx is done, then
// closes the channel.
type Subscriber interface {
	Subscribe(ctx context.Context, table string) (<-chan ChangeEvent, error)
}

type Feed interface {
	Publisher
	Subscriber
}

// Notify publishes ev when p is set. Feed failures never fail the write
// that produced the event.
func Notify(ctx context.Context, p Publisher, table string, op Op, rowID string) error {
	if p == nil {
		return nil
	}
	return p.Publish(ctx, ChangeEvent{
		Table: table,
		Op:    op,
		RowID: rowID,
		At:    time.Now().UTC(),
	})
}
