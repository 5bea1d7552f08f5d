package store

import "sync"

// Observable lets views subscribe to state changes. Listeners run
// synchronously after each state write, outside the container's lock.
type Observable struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// Subscribe registers fn and returns a function that removes it.
func (o *Observable) Subscribe(fn func()) (unsubscribe func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.listeners == nil {
		o.listeners = make(map[int]func())
	}
	id := o.nextID
	o.nextID++
	o.listeners[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.listeners, id)
	}
}

func (o *Observable) notify() {
	o.mu.Lock()
	fns := make([]func(), 0, len(o.listeners))
	for _, fn := range o.listeners {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// errorMessage is the message recorded in a container's error field.
func errorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
