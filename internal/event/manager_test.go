package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitEventDeliversToListener(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(func(msg interface{}) {
		received <- msg
	}, ItemListedEvent)

	EmitEvent(ItemListedEvent, "payload")

	select {
	case msg := <-received:
		assert.Equal(t, "payload", msg)
	case <-time.After(time.Second):
		t.Fatal("listener did not receive event")
	}
}

func TestEmitEventSkipsOtherTypes(t *testing.T) {
	received := make(chan interface{}, 1)
	AddEventListener(func(msg interface{}) {
		received <- msg
	}, ItemBoughtEvent)

	EmitEvent(ItemCanceledEvent, "payload")

	select {
	case <-received:
		t.Fatal("listener received an event of another type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestListenerObservesEmissionOrder(t *testing.T) {
	received := make(chan interface{}, 8)
	AddEventListener(func(msg interface{}) {
		received <- msg
	}, ListingUpdatedEvent, ProceedsWithdrawnEvent)

	EmitEvent(ListingUpdatedEvent, "first")
	EmitEvent(ProceedsWithdrawnEvent, "second")
	EmitEvent(ListingUpdatedEvent, "third")

	for _, want := range []string{"first", "second", "third"} {
		select {
		case msg := <-received:
			assert.Equal(t, want, msg)
		case <-time.After(time.Second):
			t.Fatalf("listener did not receive %q", want)
		}
	}
}
