// Package registry keeps named collision grids for a caller. Nothing here is
// global: whoever needs lookups is handed a *Registry.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"Nav/collision"
	"Nav/pathfinding"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound = errors.New("grid not found")
	ErrExists   = errors.New("grid already loaded")
)

// Entry guards one grid. Queries share the read lock, so a cell toggle
// never lands in the middle of a search.
type Entry struct {
	Name string
	mu   sync.RWMutex
	data *collision.Data
}

// Query runs fn with the grid held read-only.
func (e *Entry) Query(fn func(g pathfinding.Grid)) {
	e.View(func(d *collision.Data) { fn(d) })
}

// View is Query for callers that need the concrete grid, e.g. to dump it.
// fn must not modify d.
func (e *Entry) View(fn func(d *collision.Data)) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn(e.data)
}

// Update runs fn with exclusive access to the grid.
func (e *Entry) Update(fn func(d *collision.Data)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.data)
}

func (e *Entry) Size() (width, height int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.data.Width(), e.data.Height()
}

type Registry struct {
	log   *zap.Logger
	mu    sync.RWMutex
	grids map[string]*Entry
	group singleflight.Group
}

func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		log:   logger.Named("registry"),
		grids: make(map[string]*Entry),
	}
}

// Add stores data under name unless the name is taken. It reports whether
// the grid was stored.
func (r *Registry) Add(name string, data *collision.Data) bool {
	_, added := r.Put(name, data)
	return added
}

// Put is Add returning the entry under name: the new one when added is
// true, otherwise the one already registered. The entry stays valid after
// a concurrent Remove.
func (r *Registry) Put(name string, data *collision.Data) (e *Entry, added bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.grids[name]; ok {
		return e, false
	}
	e = &Entry{Name: name, data: data}
	r.grids[name] = e
	r.log.Info("grid added",
		zap.String("name", name),
		zap.Int("width", data.Width()),
		zap.Int("height", data.Height()))
	return e, true
}

// LoadFile reads a PNG collision image, or a text grid for other
// extensions, into name. A name is only ever loaded
// once; concurrent calls for the same name share one read.
func (r *Registry) LoadFile(name, path string) (*Entry, error) {
	if e, ok := r.Get(name); ok {
		return e, nil
	}

	v, err, _ := r.group.Do(name, func() (interface{}, error) {
		if e, ok := r.Get(name); ok {
			return e, nil
		}
		data, err := collision.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loading grid %q: %w", name, err)
		}
		e, _ := r.Put(name, data)
		return e, nil
	})
	if err != nil {
		r.log.Warn("grid load failed", zap.String("name", name), zap.String("file", path), zap.Error(err))
		return nil, err
	}
	return v.(*Entry), nil
}

func (r *Registry) Get(name string) (*Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.grids[name]
	return e, ok
}

// Lookup is Get with an error for callers that propagate failures.
func (r *Registry) Lookup(name string) (*Entry, error) {
	if e, ok := r.Get(name); ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.grids[name]; !ok {
		return false
	}
	delete(r.grids, name)
	r.log.Info("grid removed", zap.String("name", name))
	return true
}

// Names lists the registered grids in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.grids))
	for name := range r.grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.grids)
}
