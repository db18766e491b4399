// Package events delivers state-change notifications for the portal core.
//
// Publish only queues the event. A single dispatcher goroutine hands events
// to EventBus one at a time, in publish order, so a handler never runs on
// the publisher's goroutine or under the publisher's locks. A handler may
// call back into any component, including one that publishes on the same
// topic. It must not call Subscribe, Flush or Close.
package events

import (
	"fmt"
	"sync"

	"item-portal/internal/logger"

	evbus "github.com/asaskevich/EventBus"
)

type event struct {
	topic string
	args  []any
}

type Bus struct {
	bus evbus.Bus

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []event
	busy    bool
	closed  bool
	stopped chan struct{}
}

// New starts the dispatcher. Close stops it.
func New() *Bus {
	b := &Bus{
		bus:     evbus.New(),
		stopped: make(chan struct{}),
	}
	b.cond = sync.NewCond(&b.mu)

	go b.run()
	return b
}

// Subscribe registers fn, a func taking the topic's payload, for topic.
func (b *Bus) Subscribe(topic string, fn any) error {
	return b.bus.Subscribe(topic, fn)
}

// Publish queues an event and returns immediately. Events published after
// Close are dropped.
func (b *Bus) Publish(topic string, args ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.queue = append(b.queue, event{topic: topic, args: args})
	b.cond.Broadcast()
}

// Flush blocks until every event queued before the call has been handled.
func (b *Bus) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.queue) > 0 || b.busy {
		b.cond.Wait()
	}
}

// Close delivers what is already queued and stops the dispatcher.
func (b *Bus) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		b.cond.Broadcast()
	}
	b.mu.Unlock()

	<-b.stopped
}

func (b *Bus) run() {
	defer close(b.stopped)

	for {
		b.mu.Lock()
		for len(b.queue) == 0 && !b.closed {
			b.cond.Wait()
		}
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}

		ev := b.queue[0]
		b.queue[0] = event{}
		b.queue = b.queue[1:]
		b.busy = true
		b.mu.Unlock()

		b.deliver(ev)

		b.mu.Lock()
		b.busy = false
		b.cond.Broadcast()
		b.mu.Unlock()
	}
}

func (b *Bus) deliver(ev event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event handler panicked", map[string]any{
				"topic": ev.topic,
				"panic": fmt.Sprint(r),
			})
		}
	}()

	b.bus.Publish(ev.topic, ev.args...)
}
