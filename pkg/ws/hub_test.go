package ws

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHub(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register("channel", "client-1")
	require.NoError(t, err)
	c2, err := hub.Register("channel", "client-2")
	require.NoError(t, err)
	other, err := hub.Register("other", "client-1")
	require.NoError(t, err)

	// A client id registers at most once per channel.
	_, err = hub.Register("channel", "client-1")
	require.Error(t, err)

	hub.Broadcast("channel", []byte("hello"))
	require.Equal(t, []byte("hello"), <-c1)
	require.Equal(t, []byte("hello"), <-c2)

	select {
	case msg := <-other:
		t.Fatalf("unexpected message on other channel: %s", msg)
	default:
	}

	require.NoError(t, hub.Unregister("channel", "client-1"))
	require.Error(t, hub.Unregister("channel", "client-1"))

	// The channel of an unregistered client is closed.
	_, ok := <-c1
	require.False(t, ok)

	hub.Broadcast("channel", []byte("again"))
	require.Equal(t, []byte("again"), <-c2)

	// Broadcasting to a channel nobody subscribed is a no-op.
	hub.Broadcast("empty", []byte("void"))
}
