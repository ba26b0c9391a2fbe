package eventbus

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	bus := New(zerolog.Nop())

	var count int32
	done := make(chan struct{}, 2)
	for i := 0; i < 2; i++ {
		bus.Subscribe(EventDocOpened, func(e DomainEvent) {
			atomic.AddInt32(&count, 1)
			done <- struct{}{}
		})
	}

	bus.Publish(DocOpenedEvent{Path: "/books/a.txt"})

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("event was not delivered")
		}
	}
	assert.EqualValues(t, 2, atomic.LoadInt32(&count))
}

func TestSubscribersOnlyReceiveTheirType(t *testing.T) {
	bus := New(zerolog.Nop())

	var opened int32
	done := make(chan struct{}, 1)
	bus.Subscribe(EventDocOpened, func(e DomainEvent) {
		atomic.AddInt32(&opened, 1)
	})
	bus.Subscribe(EventDocClosed, func(e DomainEvent) {
		done <- struct{}{}
	})

	bus.Publish(DocClosedEvent{Path: "/books/a.txt"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
	assert.Zero(t, atomic.LoadInt32(&opened))
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New(zerolog.Nop())

	var count int32
	got := make(chan struct{}, 4)
	unsubscribe := bus.Subscribe(EventDocOpened, func(e DomainEvent) {
		atomic.AddInt32(&count, 1)
		got <- struct{}{}
	})

	bus.Publish(DocOpenedEvent{Path: "/books/a.txt"})
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered before unsubscribe")
	}

	unsubscribe()
	bus.Publish(DocOpenedEvent{Path: "/books/b.txt"})

	// A sentinel subscription proves the second event was dispatched
	// before we assert the dropped handler stayed silent.
	sentinel := make(chan struct{}, 1)
	bus.Subscribe(EventDocClosed, func(e DomainEvent) {
		sentinel <- struct{}{}
	})
	bus.Publish(DocClosedEvent{Path: "/books/b.txt"})
	select {
	case <-sentinel:
	case <-time.After(time.Second):
		t.Fatal("sentinel event was not delivered")
	}

	assert.EqualValues(t, 1, atomic.LoadInt32(&count))
}

func TestUnsubscribeTwiceIsHarmless(t *testing.T) {
	bus := New(zerolog.Nop())

	unsubA := bus.Subscribe(EventDocOpened, func(e DomainEvent) {})
	got := make(chan struct{}, 1)
	bus.Subscribe(EventDocOpened, func(e DomainEvent) {
		got <- struct{}{}
	})

	unsubA()
	unsubA()

	// The surviving subscription still receives events.
	bus.Publish(DocOpenedEvent{Path: "/books/a.txt"})
	select {
	case <-got:
	case <-time.After(time.Second):
		t.Fatal("surviving subscription lost its events")
	}
}
