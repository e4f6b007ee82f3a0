package service

import (
	"sync"

	"myfabric/domain"
)

// DefaultInboxBuffer is the capacity used by Inbox when buffer is not positive.
const DefaultInboxBuffer = 64

// Inbox is a pull handle over inbound envelopes. A full inbox holds back delivery to every
// other handler of the router until it is drained or closed.
type Inbox struct {
	ch     chan domain.Envelope
	closed chan struct{}
	cancel func()
	once   sync.Once
}

// Inbox registers a pull handle on the router. Envelopes are yielded in delivery order.
func (r *Router) Inbox(buffer int) *Inbox {
	if buffer <= 0 {
		buffer = DefaultInboxBuffer
	}
	in := &Inbox{
		ch:     make(chan domain.Envelope, buffer),
		closed: make(chan struct{}),
	}
	in.cancel = r.OnMessage(func(env domain.Envelope) {
		select {
		case in.ch <- env:
		case <-in.closed:
		}
	})
	return in
}

// C returns the channel of envelopes. It is closed by Close.
func (in *Inbox) C() <-chan domain.Envelope {
	return in.ch
}

// Close detaches the inbox from the router and closes C; idempotent.
// Must not be called from a MessageHandler.
func (in *Inbox) Close() {
	in.once.Do(func() {
		close(in.closed)
		in.cancel()
		close(in.ch)
	})
}
