package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
)

type slot struct {
	ch   chan struct{} // capacity 1: a token in the channel means held
	refs int
}

// Local is a keyed mutex for a single process. Waiting honours ctx cancellation.
type Local struct {
	mu    sync.Mutex
	slots map[string]*slot
}

// NewLocal builds an in-process locker.
func NewLocal() *Local {
	return &Local{slots: map[string]*slot{}}
}

var _ ports.ItemLocker = (*Local)(nil)

// Lock acquires every id in sorted order. On error nothing stays held.
func (l *Local) Lock(ctx context.Context, itemIDs ...string) (func(), error) {
	ids := normalize(itemIDs)
	held := make([]string, 0, len(ids))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}
	for _, id := range ids {
		s := l.acquireSlot(id)
		select {
		case s.ch <- struct{}{}:
			held = append(held, id)
		case <-ctx.Done():
			l.dropSlot(id)
			release()
			return nil, ctx.Err()
		}
	}
	var once sync.Once
	return func() { once.Do(release) }, nil
}

func (l *Local) acquireSlot(id string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[id]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[id] = s
	}
	s.refs++
	return s
}

func (l *Local) dropSlot(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := l.slots[id]
	s.refs--
	if s.refs == 0 {
		delete(l.slots, id)
	}
}

func (l *Local) release(id string) {
	l.mu.Lock()
	s := l.slots[id]
	l.mu.Unlock()
	<-s.ch
	l.dropSlot(id)
}
