package eventbus

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jselect/internal/domain"
)

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(logr.Discard())
	var got []uint64
	b.Subscribe(domain.EventRender, func(e DomainEvent) {
		got = append(got, e.(domain.RenderEvent).Revision)
	})

	for i := uint64(1); i <= 3; i++ {
		b.Publish(domain.RenderEvent{Revision: i})
	}

	assert.Equal(t, []uint64{1, 2, 3}, got)
}

func TestPublishOnlyMatchingType(t *testing.T) {
	b := New(logr.Discard())
	calls := 0
	b.Subscribe(domain.EventChange, func(DomainEvent) { calls++ })

	b.Publish(domain.RenderEvent{})
	b.Publish(domain.ChangeEvent{Value: "a"})

	assert.Equal(t, 1, calls)
}

func TestUnsubscribe(t *testing.T) {
	b := New(logr.Discard())
	first, second := 0, 0
	unsub := b.Subscribe(domain.EventChange, func(DomainEvent) { first++ })
	b.Subscribe(domain.EventChange, func(DomainEvent) { second++ })

	b.Publish(domain.ChangeEvent{})
	unsub()
	b.Publish(domain.ChangeEvent{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	b := New(logr.Discard())
	delivered := false
	b.Subscribe(domain.EventChange, func(DomainEvent) { panic("boom") })
	b.Subscribe(domain.EventChange, func(DomainEvent) { delivered = true })

	require.NotPanics(t, func() { b.Publish(domain.ChangeEvent{}) })
	assert.True(t, delivered)
}

func TestNullBus(t *testing.T) {
	b := Null()
	unsub := b.Subscribe(domain.EventChange, func(DomainEvent) { t.Fatal("unexpected delivery") })
	b.Publish(domain.ChangeEvent{})
	unsub()
}
