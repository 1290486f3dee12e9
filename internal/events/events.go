// Package events fans workflow events out to live subscribers and external brokers.
package events

import (
	"log/slog"
	"sync"
	"time"
)

// Type identifies a workflow event
type Type string

// Event types
const (
	ViewChanged     Type = "view_changed"
	Notification    Type = "notification"
	Busy            Type = "busy"
	Idle            Type = "idle"
	AnalysisLoading Type = "analysis_loading"
	AnalysisReady   Type = "analysis_ready"
	AnalysisFailed  Type = "analysis_failed"
	ChatMessage     Type = "chat_message"
)

// Event is one state change of a workflow session
type Event struct {
	Type      Type      `json:"type"`
	SessionID string    `json:"session_id"`
	View      string    `json:"view,omitempty"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher receives workflow events. Publish must not block.
type Publisher interface {
	Publish(ev Event)
}

// Discard drops every event
type Discard struct{}

// Publish does nothing
func (Discard) Publish(Event) {}

// Multi publishes to every publisher in order
type Multi []Publisher

// Publish forwards ev to each publisher
func (m Multi) Publish(ev Event) {
	for _, p := range m {
		if p != nil {
			p.Publish(ev)
		}
	}
}

// Broker delivers events to per-session subscribers.
// A subscriber whose buffer is full misses the event.
type Broker struct {
	buffer int

	mu      sync.Mutex
	subs    map[string]map[chan Event]struct{}
	dropped uint64
}

// NewBroker creates a broker with the given per-subscriber buffer
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broker{
		buffer: buffer,
		subs:   make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for a session. The returned cancel func
// unregisters it and closes the channel.
func (b *Broker) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, b.buffer)

	b.mu.Lock()
	if b.subs[sessionID] == nil {
		b.subs[sessionID] = make(map[chan Event]struct{})
	}
	b.subs[sessionID][ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { b.remove(sessionID, ch) })
	}
}

func (b *Broker) remove(sessionID string, ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	set, ok := b.subs[sessionID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	close(ch)
	if len(set) == 0 {
		delete(b.subs, sessionID)
	}
}

// Publish delivers ev to the subscribers of its session
func (b *Broker) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
			b.dropped++
			slog.Debug("event dropped for slow subscriber", "session_id", ev.SessionID, "type", ev.Type)
		}
	}
}

// CloseSession closes every subscriber of a session
func (b *Broker) CloseSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs[sessionID] {
		close(ch)
	}
	delete(b.subs, sessionID)
}

// Subscribers returns the number of live subscribers for a session
func (b *Broker) Subscribers(sessionID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[sessionID])
}

// Dropped returns the number of events dropped for slow subscribers
func (b *Broker) Dropped() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
