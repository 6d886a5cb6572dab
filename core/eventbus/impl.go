package eventbus

import (
	"strconv"
	"sync"
	"sync/atomic"

	"herdly-go/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id       string
	handler  EventHandler
	herdName string // Empty string means subscribe to all events
}

// channelEventBus is a channel-based implementation of EventBus.
// mu also orders Publish against Close: senders hold the read lock for
// the duration of the send, so eventChan is never closed mid-send.
type channelEventBus struct {
	eventChan     chan event.Event
	subscriptions map[string]*subscription
	mu            sync.RWMutex
	closed        bool // guarded by mu
	wg            sync.WaitGroup
	nextID        atomic.Uint64
}

// New creates a new EventBus with the specified buffer size.
func New(bufferSize int) EventBus {
	if bufferSize <= 0 {
		bufferSize = 100
	}

	bus := &channelEventBus{
		eventChan:     make(chan event.Event, bufferSize),
		subscriptions: make(map[string]*subscription),
	}

	bus.wg.Add(1)
	go bus.dispatch()

	return bus
}

// Publish publishes an event to all subscribers.
func (b *channelEventBus) Publish(e event.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	// Non-blocking send with select to avoid blocking if buffer is full
	select {
	case b.eventChan <- e:
	default:
		// Buffer full, event dropped
	}
}

// Subscribe subscribes to all events.
func (b *channelEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe("", handler)
}

// SubscribeHerd subscribes to events concerning a specific herd.
func (b *channelEventBus) SubscribeHerd(herdName string, handler EventHandler) string {
	return b.subscribe(herdName, handler)
}

func (b *channelEventBus) subscribe(herdName string, handler EventHandler) string {
	id := strconv.FormatUint(b.nextID.Add(1), 10)

	b.mu.Lock()
	b.subscriptions[id] = &subscription{
		id:       id,
		handler:  handler,
		herdName: herdName,
	}
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *channelEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	delete(b.subscriptions, subscriptionID)
	b.mu.Unlock()
}

// Close shuts down the event bus.
func (b *channelEventBus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return // Already closed
	}
	b.closed = true
	close(b.eventChan)
	b.mu.Unlock()

	b.wg.Wait()
}

// dispatch is the main event dispatch loop.
func (b *channelEventBus) dispatch() {
	defer b.wg.Done()

	for e := range b.eventChan {
		b.deliverEvent(e)
	}
}

// deliverEvent delivers an event to all matching subscribers.
func (b *channelEventBus) deliverEvent(e event.Event) {
	b.mu.RLock()
	// Copy subscriptions to avoid holding lock during handler execution
	subs := make([]*subscription, 0, len(b.subscriptions))
	for _, sub := range b.subscriptions {
		subs = append(subs, sub)
	}
	b.mu.RUnlock()

	// Get herd name if this is a herd event
	var eventHerd string
	if he, ok := e.(event.HerdEvent); ok {
		eventHerd = he.HerdName()
	}

	for _, sub := range subs {
		// Filter by herd name if subscription is herd-specific
		if sub.herdName != "" {
			if eventHerd == "" || sub.herdName != eventHerd {
				continue
			}
		}

		// Call handler (catch panics to prevent one bad handler from affecting others)
		func() {
			defer func() {
				if r := recover(); r != nil {
					_ = r
				}
			}()
			sub.handler(e)
		}()
	}
}
