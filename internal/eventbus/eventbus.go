package eventbus

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/go-logr/logr"

	"jselect/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events synchronously, in publish order, on the publisher's goroutine
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	log      logr.Logger
}

// New creates a new event bus
func New(log logr.Logger) EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
		log:      log.WithName("eventbus"),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	if event == nil {
		return
	}
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	if event.Type() != domain.EventRender {
		b.log.V(2).Info("publishing event", "type", event.Type(), "subscribers", len(subs))
	}
	for _, s := range subs {
		b.deliver(s.handler, event)
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error(fmt.Errorf("%v", r), "event handler panic", "type", event.Type(), "stack", string(debug.Stack()))
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// nullBus drops every event
type nullBus struct{}

// Null returns a bus that discards all events
func Null() EventBus { return nullBus{} }

func (nullBus) Publish(DomainEvent) {}

func (nullBus) Subscribe(EventType, EventHandler) func() { return func() {} }
