package misc

import "sync"

// Resetter is implemented by pooled objects that can clear their state.
type Resetter interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool for Resetter values. Put
// resets the object before returning it to the pool, so Get always
// hands back a clean instance.
type Pool[T Resetter] struct {
	p sync.Pool
}

// NewPool creates a Pool whose empty slots are filled by newFn.
func NewPool[T Resetter](newFn func() T) *Pool[T] {
	pl := &Pool[T]{}
	pl.p.New = func() any { return newFn() }
	return pl
}

// Get retrieves an object from the pool, allocating via newFn if empty.
func (pl *Pool[T]) Get() T {
	v, ok := pl.p.Get().(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}

// Put resets v and returns it to the pool.
func (pl *Pool[T]) Put(v T) {
	v.Reset()
	pl.p.Put(v)
}
