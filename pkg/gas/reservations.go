package gas

import (
	"sync"

	"github.com/thounyy/sui-go-utils/pkg/sui"
)

// Reservations is a process-local set of gas coins claimed by in-flight
// flows. A Provisioner sharing it never hands out a coin another flow holds.
// Callers release a coin once its transaction has executed or been dropped.
type Reservations struct {
	mu   sync.Mutex
	held map[sui.Address]struct{}
}

func NewReservations() *Reservations {
	return &Reservations{held: make(map[sui.Address]struct{})}
}

// Reserve claims id and reports whether the claim succeeded.
func (r *Reservations) Reserve(id sui.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.held[id]; ok {
		return false
	}
	r.held[id] = struct{}{}
	return true
}

func (r *Reservations) Release(ids ...sui.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.held, id)
	}
}

func (r *Reservations) Reserved(id sui.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.held[id]
	return ok
}

func (r *Reservations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.held)
}
