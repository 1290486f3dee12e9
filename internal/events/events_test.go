package events

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ events []Event }

func (r *recorder) Publish(ev Event) { r.events = append(r.events, ev) }

func TestBroker_DeliversPerSession(t *testing.T) {
	b := NewBroker(4)
	a, cancelA := b.Subscribe("a")
	defer cancelA()
	other, cancelOther := b.Subscribe("b")
	defer cancelOther()

	b.Publish(Event{Type: ViewChanged, SessionID: "a", View: "assessment"})

	select {
	case ev := <-a:
		assert.Equal(t, ViewChanged, ev.Type)
		assert.Equal(t, "assessment", ev.View)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Empty(t, other)
}

func TestBroker_DropsForSlowSubscriber(t *testing.T) {
	b := NewBroker(1)
	ch, cancel := b.Subscribe("a")
	defer cancel()

	b.Publish(Event{Type: Busy, SessionID: "a"})
	b.Publish(Event{Type: Idle, SessionID: "a"})

	assert.Equal(t, uint64(1), b.Dropped())
	assert.Equal(t, Busy, (<-ch).Type)
}

func TestBroker_CancelAndCloseSession(t *testing.T) {
	b := NewBroker(1)
	ch1, cancel1 := b.Subscribe("a")
	ch2, _ := b.Subscribe("a")
	require.Equal(t, 2, b.Subscribers("a"))

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, b.Subscribers("a"))

	b.CloseSession("a")
	_, open = <-ch2
	assert.False(t, open)
	assert.Zero(t, b.Subscribers("a"))
}

func TestMulti(t *testing.T) {
	r1, r2 := &recorder{}, &recorder{}
	m := Multi{r1, nil, Discard{}, r2}

	m.Publish(Event{Type: Notification, SessionID: "a"})

	assert.Len(t, r1.events, 1)
	assert.Len(t, r2.events, 1)
}

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{exchange: DefaultExchange, ch: ch}

	p.Publish(Event{Type: AnalysisReady, SessionID: "s-1", Message: "Data Scientist"})

	assert.Equal(t, "session_updates", ch.exchange)
	assert.Equal(t, "session.s-1", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "analysis_ready", ch.msg.Type)

	var decoded Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, "Data Scientist", decoded.Message)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
	p.Publish(Event{Type: Idle, SessionID: "s-1"})
}

func TestAMQPPublisher_PublishErrorIsLogged(t *testing.T) {
	p := &AMQPPublisher{exchange: DefaultExchange, ch: &fakeChannel{err: errors.New("channel closed")}}

	assert.NotPanics(t, func() { p.Publish(Event{Type: Idle, SessionID: "s-1"}) })
}
