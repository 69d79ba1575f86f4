package state

import (
	"context"
	"sync"
)

// View is a consistent copy of a Mirror.
type View[T any] struct {
	Data    T
	Loading bool
	Error   string
}

// Mirror guards one piece of server state. The zero value is ready to use.
type Mirror[T any] struct {
	mu       sync.RWMutex
	data     T
	loading  int
	err      string
	onChange func(View[T])
}

// New returns a Mirror that reports every change to onChange, if non-nil.
func New[T any](onChange func(View[T])) *Mirror[T] {
	return &Mirror[T]{onChange: onChange}
}

// View returns the current state.
func (m *Mirror[T]) View() View[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view()
}

func (m *Mirror[T]) view() View[T] {
	return View[T]{Data: m.data, Loading: m.loading > 0, Error: m.err}
}

// Set replaces the data and clears the error.
func (m *Mirror[T]) Set(v T) {
	m.Update(func(T) T { return v })
}

// Update applies fn to the data and clears the error.
func (m *Mirror[T]) Update(fn func(T) T) {
	m.mu.Lock()
	m.data = fn(m.data)
	m.err = ""
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

// Reset drops data and error.
func (m *Mirror[T]) Reset() {
	var zero T
	m.mu.Lock()
	m.data = zero
	m.err = ""
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

// ClearError dismisses the last error.
func (m *Mirror[T]) ClearError() {
	m.mu.Lock()
	m.err = ""
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

func (m *Mirror[T]) begin() {
	m.mu.Lock()
	m.loading++
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

func (m *Mirror[T]) end(apply func(T) T, err error) {
	m.mu.Lock()
	m.loading--
	if err != nil {
		m.err = err.Error()
	} else {
		m.err = ""
		if apply != nil {
			m.data = apply(m.data)
		}
	}
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

// Fail records err without touching the data.
func (m *Mirror[T]) Fail(err error) {
	if err == nil {
		return
	}
	m.mu.Lock()
	m.err = err.Error()
	v := m.view()
	m.mu.Unlock()
	m.emit(v)
}

func (m *Mirror[T]) emit(v View[T]) {
	if m.onChange != nil {
		m.onChange(v)
	}
}

// Load runs fetch with the loading flag raised and stores its result.
func Load[T any](ctx context.Context, m *Mirror[T], fetch func(context.Context) (T, error)) (T, error) {
	return Do(ctx, m, fetch, func(_ T, v T) T { return v })
}

// Do runs call with the loading flag raised. On success apply folds the
// result into the data; on failure the error is recorded and returned.
func Do[T, R any](ctx context.Context, m *Mirror[T], call func(context.Context) (R, error), apply func(T, R) T) (R, error) {
	m.begin()
	r, err := call(ctx)
	if err != nil {
		m.end(nil, err)
		return r, err
	}
	if apply == nil {
		m.end(nil, nil)
	} else {
		m.end(func(cur T) T { return apply(cur, r) }, nil)
	}
	return r, nil
}
