package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishFansOut(t *testing.T) {
	bus := NewEventBus[any]()
	first := bus.Subscribe()
	second := bus.Subscribe()

	bus.Publish(ProductAdded{ProductID: "a"})

	assert.Equal(t, ProductAdded{ProductID: "a"}, <-first)
	assert.Equal(t, ProductAdded{ProductID: "a"}, <-second)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus[any]()
	sub := bus.Subscribe()
	assert.Equal(t, 1, bus.SubscriberCount())

	bus.Unsubscribe(sub)
	bus.Unsubscribe(sub)

	_, open := <-sub
	assert.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount())

	// publishing without subscribers must not block or panic
	bus.Publish(ProductDeleted{ProductID: "a"})
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := NewEventBus[int]()
	sub := bus.Subscribe()

	for i := 0; i < subscriberBuffer+10; i++ {
		bus.Publish(i)
	}

	assert.Len(t, sub, subscriberBuffer)
	assert.Equal(t, 0, <-sub)
}
