package proxy

import (
	"reflect"
	"sync"
)

// Dispatcher is a typed event bus with deterministic delivery: handlers run in
// registration order, so a gating handler registered first always sees an event
// before default delivery does.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[reflect.Type][]func(any)
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[reflect.Type][]func(any){}}
}

// Subscribe registers a handler for events of type E.
func Subscribe[E any](d *Dispatcher, handler func(E)) {
	eventType := reflect.TypeOf((*E)(nil)).Elem()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], func(event any) {
		handler(event.(E))
	})
}

// Fire delivers the event to every handler synchronously, in registration order.
func (d *Dispatcher) Fire(event any) {
	d.mu.RLock()
	handlers := d.handlers[reflect.TypeOf(event)]
	d.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// FireAndForget delivers the event on its own goroutine. Used where delivery
// must not block or fail the caller, like bridge dispatch.
func (d *Dispatcher) FireAndForget(event any) {
	go d.Fire(event)
}
