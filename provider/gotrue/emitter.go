package gotrue

import (
	"sync"

	"github.com/viant/authstate/session"
)

type emitter struct {
	mux       sync.RWMutex
	nextID    int
	listeners map[int]session.ChangeListener
	order     []int
}

func (e *emitter) subscribe(listener session.ChangeListener) session.Subscription {
	e.mux.Lock()
	defer e.mux.Unlock()
	if e.listeners == nil {
		e.listeners = map[int]session.ChangeListener{}
	}
	e.nextID++
	id := e.nextID
	e.listeners[id] = listener
	e.order = append(e.order, id)
	return session.SubscriptionFunc(func() {
		e.mux.Lock()
		defer e.mux.Unlock()
		delete(e.listeners, id)
		for i, candidate := range e.order {
			if candidate == id {
				e.order = append(e.order[:i:i], e.order[i+1:]...)
				break
			}
		}
	})
}

func (e *emitter) emit(event session.Event, s *session.Session) {
	e.mux.RLock()
	listeners := make([]session.ChangeListener, 0, len(e.listeners))
	for _, id := range e.order {
		if listener, ok := e.listeners[id]; ok {
			listeners = append(listeners, listener)
		}
	}
	e.mux.RUnlock()
	for _, listener := range listeners {
		listener(event, s)
	}
}
