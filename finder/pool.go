package finder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"Nav/pathfinding"

	"go.uber.org/zap"
)

var ErrPoolClosed = errors.New("finder pool closed")

// Pool hands out idle engines so no engine ever runs two queries at once.
type Pool struct {
	log    *zap.Logger
	idle   map[Strategy]chan pathfinding.Finder
	closed chan struct{}
	once   sync.Once
}

// NewPool creates size engines for every strategy.
func NewPool(size int, logger *zap.Logger) (*Pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("pool size must be positive, got %d", size)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Pool{
		log:    logger.Named("pool"),
		idle:   make(map[Strategy]chan pathfinding.Finder, len(Strategies)),
		closed: make(chan struct{}),
	}
	for _, s := range Strategies {
		ch := make(chan pathfinding.Finder, size)
		for i := 0; i < size; i++ {
			f, err := New(s, logger)
			if err != nil {
				return nil, err
			}
			ch <- f
		}
		p.idle[s] = ch
	}
	return p, nil
}

// Acquire waits for an idle engine of strategy s.
func (p *Pool) Acquire(ctx context.Context, s Strategy) (pathfinding.Finder, error) {
	ch, ok := p.idle[s]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
	select {
	case <-p.closed:
		return nil, ErrPoolClosed
	default:
	}

	select {
	case f := <-ch:
		return f, nil
	case <-p.closed:
		return nil, ErrPoolClosed
	case <-ctx.Done():
		p.log.Warn("no leisure engine", zap.String("strategy", string(s)), zap.Error(ctx.Err()))
		return nil, ctx.Err()
	}
}

// Release returns an engine taken with Acquire.
func (p *Pool) Release(s Strategy, f pathfinding.Finder) {
	ch, ok := p.idle[s]
	if !ok {
		return
	}
	select {
	case ch <- f:
	default:
		p.log.Warn("released an engine the pool did not lend", zap.String("strategy", string(s)))
	}
}

// Idle counts engines of s waiting to be acquired.
func (p *Pool) Idle(s Strategy) int {
	return len(p.idle[s])
}

func (p *Pool) Close() {
	p.once.Do(func() { close(p.closed) })
}
