package sequencer

import (
	"context"
	"sync"
)

// Inbox is the unbounded queue between input sources and the scheduler.
// Any number of goroutines may Push; only the scheduler drains.
type Inbox struct {
	mu    sync.Mutex
	queue []Message
}

func NewInbox() *Inbox {
	return &Inbox{}
}

// Push queues m. Unhandled messages are dropped here and never reach the
// scheduler.
func (b *Inbox) Push(m Message) {
	if m.Kind == Unhandled {
		return
	}
	b.mu.Lock()
	b.queue = append(b.queue, m)
	b.mu.Unlock()
}

// Drain takes every queued message in arrival order. It never blocks on
// an empty queue.
func (b *Inbox) Drain() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := b.queue
	b.queue = nil
	return q
}

func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Listen runs src until ctx is done, pushing everything it decodes.
func (b *Inbox) Listen(ctx context.Context, src Source) error {
	return src.Listen(ctx, b.Push)
}
