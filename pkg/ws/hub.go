package ws

import (
	"errors"

	"github.com/puzpuzpuz/xsync"
)

const maxMsgSize = 1 << 8

// Hub fans messages out to clients grouped by channel. A channel is a
// topic string such as "event:<id>" or "challenge:<id>".
type Hub struct {
	channels *xsync.MapOf[string, *xsync.MapOf[string, chan<- []byte]]
}

func NewHub() *Hub {
	return &Hub{
		channels: xsync.NewMapOf[*xsync.MapOf[string, chan<- []byte]](),
	}
}

// Register subscribes a client to a channel. All messages broadcast to the
// channel are sent to the returned chan after this point of time.
func (h *Hub) Register(channel, clientID string) (<-chan []byte, error) {
	clients, _ := h.channels.LoadOrStore(channel, xsync.NewMapOf[chan<- []byte]())

	// To avoid blocking when broadcasting, the client channel is buffered.
	c := make(chan []byte, maxMsgSize)
	_, existed := clients.LoadOrStore(clientID, c)
	if existed {
		close(c)
		return nil, errors.New("the client has already registered")
	}

	return c, nil
}

// Unregister removes the client from the channel.
func (h *Hub) Unregister(channel, clientID string) error {
	clients, ok := h.channels.Load(channel)
	if !ok {
		return errors.New("the channel has no client")
	}

	c, existed := clients.LoadAndDelete(clientID)
	if !existed {
		return errors.New("the client has not registered yet")
	}

	close(c)
	return nil
}

// Broadcast sends the message to every client of the channel. Clients whose
// buffer is full are skipped rather than blocking the caller.
func (h *Hub) Broadcast(channel string, msg []byte) {
	clients, ok := h.channels.Load(channel)
	if !ok {
		return
	}

	clients.Range(func(clientID string, c chan<- []byte) bool {
		select {
		case c <- msg:
		default:
		}
		return true
	})
}
