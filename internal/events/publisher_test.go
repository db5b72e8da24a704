package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_EventEncoding(t *testing.T) {
	t.Parallel()

	fw := &fakeWriter{}
	p := &Publisher{writer: fw, log: zap.NewNop()}
	ctx := context.Background()

	p.UserRegistered(ctx, "64f1c0ffee0000000000aaaa", "ann@x.com")
	p.UserDeleted(ctx, "64f1c0ffee0000000000aaaa", "ann@x.com")

	require.Len(t, fw.msgs, 2)
	require.Equal(t, []byte("64f1c0ffee0000000000aaaa"), fw.msgs[0].Key)

	var ev UserEvent
	require.NoError(t, json.Unmarshal(fw.msgs[0].Value, &ev))
	require.Equal(t, TypeUserRegistered, ev.Type)
	require.Equal(t, "64f1c0ffee0000000000aaaa", ev.UserID)
	require.Equal(t, "ann@x.com", ev.Email)
	require.False(t, ev.At.IsZero())

	require.NoError(t, json.Unmarshal(fw.msgs[1].Value, &ev))
	require.Equal(t, TypeUserDeleted, ev.Type)
}

func TestPublisher_WriteFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	fw := &fakeWriter{err: errors.New("broker down")}
	p := &Publisher{writer: fw, log: zap.NewNop()}

	// best-effort: a broker failure never reaches the caller
	p.UserRegistered(context.Background(), "u1", "a@x.com")
	require.Empty(t, fw.msgs)
}

func TestPublisher_NilIsNoOp(t *testing.T) {
	t.Parallel()

	var p *Publisher
	p.UserRegistered(context.Background(), "u1", "a@x.com")
	p.UserDeleted(context.Background(), "u1", "a@x.com")
	require.NoError(t, p.Close())
}

func TestPublisher_Close(t *testing.T) {
	t.Parallel()

	fw := &fakeWriter{}
	p := &Publisher{writer: fw, log: zap.NewNop()}
	require.NoError(t, p.Close())
	require.True(t, fw.closed)
}

func TestNewPublisher_DisabledWithoutBrokers(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewPublisher(nil, "account-events", zap.NewNop()))
}
