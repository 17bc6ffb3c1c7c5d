package realtime

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Broker is the in-process feed used when no Redis is configured.
type Broker struct {
	mu     sync.Mutex
	topics map[string]map[chan ChangeEvent]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		topics: make(map[string]map[chan ChangeEvent]struct{}),
	}
}

func (b *Broker) Subscribe(ctx context.Context, table string) (<-chan ChangeEvent, error) {
	ch := make(chan ChangeEvent, subscriberBuffer)

	b.mu.Lock()
	subs, ok := b.topics[table]
	if !ok {
		subs = make(map[chan ChangeEvent]struct{})
		b.topics[table] = subs
	}
	subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.topics[table], ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch, nil
}

func (b *Broker) Publish(_ context.Context, ev ChangeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.topics[ev.Table] {
		select {
		case ch <- ev:
		default:
			// slow subscriber, it reloads on the next event anyway
		}
	}
	return nil
}

func (b *Broker) Subscribers(table string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.topics[table])
}
