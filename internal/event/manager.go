package event

import (
	"go.uber.org/zap"
)

var listeners = make([]*Listener, 0)

type Listener struct {
	eventTypes []Type
	channel    chan interface{}
}

func (l *Listener) listensTo(eventType Type) bool {
	for _, t := range l.eventTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// AddEventListener registers callback for the given event types. All of them
// share one channel and one consumer goroutine, so a listener observes events
// in the order they were emitted.
func AddEventListener(callback func(msg interface{}), eventTypes ...Type) {
	zap.L().With(zap.Int("types", len(eventTypes))).Debug("EventManager: AddListener")

	listener := Listener{
		eventTypes: eventTypes,
		channel:    make(chan interface{}, 64),
	}

	listeners = append(listeners, &listener)

	go func() {
		for msg := range listener.channel {
			callback(msg)
		}
	}()
}

// EmitEvent enqueues in the emitting goroutine. Two sequential emissions
// reach every matching listener in emission order.
func EmitEvent(eventType Type, msg interface{}) {
	for _, listener := range listeners {
		if listener.listensTo(eventType) {
			zap.L().With(zap.String("type", string(eventType))).Debug("EventManager: Emitting event")
			listener.channel <- msg
		}
	}
}
