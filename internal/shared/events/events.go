// # internal/shared/events/events.go
package events

// Emitter is a minimal synchronous callback registry. Handlers run in
// subscription order on the emitting goroutine. The zero value is usable.
type Emitter[E any] struct {
	handlers []func(E)
}

func (e *Emitter[E]) Subscribe(handler func(E)) {
	e.handlers = append(e.handlers, handler)
}

func (e *Emitter[E]) Emit(event E) {
	for _, h := range e.handlers {
		h(event)
	}
}

func (e *Emitter[E]) HandlerCount() int {
	return len(e.handlers)
}
