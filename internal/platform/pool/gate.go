package pool

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

var ErrQueueFull = errors.New("pool: wait queue is full")

// Gate limita cuántos callers usan la base a la vez y cuántos pueden esperar turno.
// Va delante del pool del driver: el driver nunca ve más de Capacity() pedidos.
type Gate struct {
	sem        *semaphore.Weighted
	capacity   int64
	queueLimit int64

	inUse   atomic.Int64
	waiting atomic.Int64
}

// NewGate crea un Gate con capacity slots.
// queueLimit > 0 acota la cola, 0 falla apenas no hay slot libre, < 0 cola sin límite.
func NewGate(capacity, queueLimit int) *Gate {
	if capacity <= 0 {
		capacity = 1
	}
	return &Gate{
		sem:        semaphore.NewWeighted(int64(capacity)),
		capacity:   int64(capacity),
		queueLimit: int64(queueLimit),
	}
}

// Acquire bloquea hasta tener slot, el ctx se cancele o la cola esté llena.
// El release devuelto es idempotente.
func (g *Gate) Acquire(ctx context.Context) (func(), error) {
	if g.sem.TryAcquire(1) {
		return g.granted(), nil
	}

	if g.queueLimit >= 0 {
		if g.waiting.Add(1) > g.queueLimit {
			g.waiting.Add(-1)
			return nil, ErrQueueFull
		}
	} else {
		g.waiting.Add(1)
	}

	err := g.sem.Acquire(ctx, 1)
	g.waiting.Add(-1)
	if err != nil {
		return nil, err
	}
	return g.granted(), nil
}

func (g *Gate) granted() func() {
	g.inUse.Add(1)
	var once atomic.Bool
	return func() {
		if once.Swap(true) {
			return
		}
		g.inUse.Add(-1)
		g.sem.Release(1)
	}
}

func (g *Gate) Capacity() int { return int(g.capacity) }

func (g *Gate) InUse() int { return int(g.inUse.Load()) }

func (g *Gate) Waiting() int { return int(g.waiting.Load()) }
