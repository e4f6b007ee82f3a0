package service

import (
	"context"
	"fmt"
	"sync"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"
	"myfabric/metrics"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// MessageHandler receives inbound envelopes. Handlers run on the subscription goroutine and must
// not block for long; slow consumers should use an Inbox.
type MessageHandler func(domain.Envelope)

// Router builds UMF envelopes, publishes them on the channel selected by the "to" address and
// hands inbound envelopes of this instance to local handlers.
type Router struct {
	store   interfaces.Store
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  log.Logger
	keys    keyspace
	self    domain.Address // instance address used as default "from"

	mu       sync.RWMutex
	handlers map[uint64]MessageHandler
	nextID   uint64

	subMu sync.Mutex
	sub   interfaces.Subscription
	done  chan struct{}
}

// NewRouter creates a Router for the instance self. Panics on nil store, clock, metrics or logger.
func NewRouter(
	store interfaces.Store,
	clk clock.Clock,
	m *metrics.Metrics,
	namespace string,
	self domain.Address,
	logger log.Logger,
) *Router {
	const component = "service.NewRouter"
	return &Router{
		store:    helpers.Required(store, component, "store"),
		clock:    helpers.Required(clk, component, "clock"),
		metrics:  helpers.Required(m, component, "metrics"),
		logger:   log.WithPrefix(helpers.Required(logger, component, "logger"), "component", "Router"),
		keys:     newKeyspace(namespace),
		self:     self,
		handlers: make(map[uint64]MessageHandler),
	}
}

// CreateMessage returns a new envelope. Caller fields take precedence except mid, timestamp and
// version, which are generated on every call; "from" defaults to this instance's address.
func (r *Router) CreateMessage(fields domain.Envelope) domain.Envelope {
	env := fields
	env.MID = uuid.NewString()
	env.Timestamp = r.clock.Now().UTC()
	env.Version = domain.UMFVersion
	if env.From == "" && r.self.ServiceName != "" {
		env.From = r.self.String()
	}
	return env
}

// CreateReply returns an envelope answering original: addressed to its sender and correlated by rmid.
func (r *Router) CreateReply(original domain.Envelope, fields domain.Envelope) domain.Envelope {
	fields.To = original.From
	fields.RMID = original.MID
	fields.From = ""
	return r.CreateMessage(fields)
}

// SendMessage publishes env. A direct address publishes on the instance channel only, a service
// address publishes on the service channel and reaches every current subscriber.
// Returns:
// 1) (result, nil) on publish; result.Receivers may be 0 for a service-wide send;
// 2) (zero, invalid_address) when "to" is malformed, nothing is published;
// 3) (result, unreachable_instance) when a direct send had no subscriber;
// 4) (zero, internal_server_error) on transport failure.
func (r *Router) SendMessage(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
	to, err := domain.ParseAddress(env.To)
	if err != nil {
		return domain.SendResult{}, NewInvalidAddressError(fmt.Sprintf("invalid to address '%s'", env.To), err)
	}

	result, err := r.publish(ctx, to, env)
	r.metrics.ObserveSend(to.IsDirect(), err)
	return result, err
}

func (r *Router) publish(ctx context.Context, to domain.Address, env domain.Envelope) (domain.SendResult, error) {
	payload, err := domain.MarshalEnvelope(env)
	if err != nil {
		return domain.SendResult{}, NewInternalServerError("Envelope marshal error", err)
	}

	result := domain.SendResult{MID: env.MID, Direct: to.IsDirect()}
	if to.IsDirect() {
		result.Channel = r.keys.instanceChannel(to.InstanceID)
	} else {
		result.Channel = r.keys.serviceChannel(to.ServiceName)
	}

	receivers, err := r.store.Publish(ctx, result.Channel, payload)
	if err != nil {
		return domain.SendResult{}, fmt.Errorf("sendMessage failed to publish (to='%s'), err: %w", env.To, err)
	}
	result.Receivers = receivers

	if result.Direct && receivers == 0 {
		return result, NewUnreachableInstanceError(fmt.Sprintf("instance %s has no active subscriber", to.InstanceID), nil)
	}
	return result, nil
}

// OnMessage registers handler for inbound envelopes and returns a func removing it.
// After the returned func returns, handler is not called again. The func must not be called
// from inside a handler.
func (r *Router) OnMessage(handler MessageHandler) (cancel func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.handlers[id] = handler
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			delete(r.handlers, id)
			r.mu.Unlock()
		})
	}
}

// Listen subscribes to the instance channel and the service channel of this instance and starts
// delivering inbound envelopes. Calling Listen while listening does nothing.
func (r *Router) Listen(ctx context.Context) error {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	if r.sub != nil {
		return nil
	}

	if r.self.InstanceID == "" || r.self.ServiceName == "" {
		return NewConfigurationError("router has no instance address to listen on", nil)
	}

	instanceCh := r.keys.instanceChannel(r.self.InstanceID)
	serviceCh := r.keys.serviceChannel(r.self.ServiceName)
	sub, err := r.store.Subscribe(ctx, instanceCh, serviceCh)
	if err != nil {
		return fmt.Errorf("listen failed to subscribe (instance='%s'), err: %w", r.self.InstanceID, err)
	}

	r.sub = sub
	r.done = make(chan struct{})
	go r.pump(sub, instanceCh, r.done)

	level.Info(r.logger).Log("msg", "Listening", "instance_channel", instanceCh, "service_channel", serviceCh)
	return nil
}

// pump decodes payloads in delivery order and dispatches them until the subscription closes.
func (r *Router) pump(sub interfaces.Subscription, instanceCh string, done chan struct{}) {
	defer close(done)
	for msg := range sub.Messages() {
		kind := "service"
		if msg.Channel == instanceCh {
			kind = "instance"
		}

		env, err := domain.UnmarshalEnvelope(msg.Payload)
		r.metrics.ObserveReceive(kind, err)
		if err != nil && env.MID == "" {
			level.Warn(r.logger).Log("msg", "Dropping undecodable message", "channel", msg.Channel, "err", err)
			continue
		}
		if err != nil {
			level.Warn(r.logger).Log("msg", "Delivering message with undecodable body", "channel", msg.Channel, "mid", env.MID, "err", err)
		}
		r.dispatch(env)
	}
}

func (r *Router) dispatch(env domain.Envelope) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, handler := range r.handlers {
		handler(env)
	}
}

// Close unsubscribes from both channels and waits for in-flight deliveries; idempotent.
func (r *Router) Close() error {
	r.subMu.Lock()
	sub, done := r.sub, r.done
	r.sub, r.done = nil, nil
	r.subMu.Unlock()

	if sub == nil {
		return nil
	}
	err := sub.Close()
	<-done
	if err != nil {
		return fmt.Errorf("close failed to unsubscribe (instance='%s'), err: %w", r.self.InstanceID, err)
	}
	return nil
}
