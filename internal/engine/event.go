package engine

// EventWithArg is a multi-cast event carrying one value. Listeners run in
// registration order; a listener added while the event is firing first runs
// on the next Invoke.
type EventWithArg[T any] struct {
	listeners []func(T)
}

// AddListener registers callback. Nil callbacks are ignored.
func (e *EventWithArg[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

// Event is an EventWithArg without a value, for signals such as a break or
// a restore.
type Event struct {
	inner EventWithArg[struct{}]
}

func (e *Event) AddListener(callback func()) {
	if callback == nil {
		return
	}
	e.inner.AddListener(func(struct{}) { callback() })
}

func (e *Event) RemoveAllListeners() {
	e.inner.RemoveAllListeners()
}

func (e *Event) Invoke() {
	e.inner.Invoke(struct{}{})
}

func (e *Event) GetListenerCount() int {
	return e.inner.GetListenerCount()
}
