package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_MarshalsPayload(t *testing.T) {
	evt, err := New("order.created", map[string]string{"id": "abc"})
	require.NoError(t, err)
	assert.Equal(t, "order.created", evt.Type)
	assert.JSONEq(t, `{"id":"abc"}`, string(evt.Payload))
}

func TestNew_UnmarshalablePayload(t *testing.T) {
	_, err := New("order.created", make(chan int))
	assert.Error(t, err)
}

func TestFanout_DeliversToEverySinkInOrder(t *testing.T) {
	var got []string
	record := func(name string) Notifier {
		return NotifierFunc(func(_ context.Context, evt Event) {
			got = append(got, name+":"+evt.Type)
		})
	}

	f := Fanout{record("a"), nil, record("b")}
	f.Notify(context.Background(), Event{Type: "order.status_changed"})

	assert.Equal(t, []string{"a:order.status_changed", "b:order.status_changed"}, got)
}

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange = exchange
	f.key = key
	f.msg = msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_RoutesByEventType(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch, exchange: "bakery.orders"}

	evt, err := New("order.created", map[string]string{"id": "abc"})
	require.NoError(t, err)
	p.Notify(context.Background(), evt)

	assert.Equal(t, "bakery.orders", ch.exchange)
	assert.Equal(t, "order.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.NotEmpty(t, ch.msg.MessageId)

	var body Event
	require.NoError(t, json.Unmarshal(ch.msg.Body, &body))
	assert.Equal(t, "order.created", body.Type)
	assert.JSONEq(t, `{"id":"abc"}`, string(body.Payload))
}

func TestPublisher_PublishErrorIsSwallowed(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &Publisher{ch: ch, exchange: "bakery.orders"}

	assert.NotPanics(t, func() {
		p.Notify(context.Background(), Event{Type: "order.created", Payload: json.RawMessage(`{}`)})
	})
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &Publisher{ch: ch}
	p.Close()
	assert.True(t, ch.closed)
}
