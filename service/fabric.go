package service

import (
	"context"
	"sync"
	"time"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"
	"myfabric/metrics"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go.uber.org/multierr"
)

// FabricConfig configures one fabric instance.
type FabricConfig struct {
	Descriptor           domain.ServiceDescriptor
	Namespace            string
	HeartbeatInterval    time.Duration
	PresenceTTL          time.Duration
	DegradedThreshold    int
	DeregisterOnShutdown bool
}

// Fabric ties registry, discovery and router of one instance together behind Init and Shutdown.
// It is the explicit context object of the instance: nothing is held in package state, so several
// fabrics can share a process.
type Fabric struct {
	cfg        FabricConfig
	instanceID domain.InstanceID
	registry   *Registry
	discovery  *Discovery
	router     *Router
	logger     log.Logger

	livenessMu sync.RWMutex
	liveness   map[uint64]func(domain.LivenessEvent)
	nextID     uint64

	shutdownOnce sync.Once
	shutdownErr  error
}

var _ interfaces.Fabric = (*Fabric)(nil)

// NewFabric creates the components of one instance. Nothing touches the store before Init.
// Panics on nil store, stats, clock, metrics or logger.
func NewFabric(
	cfg FabricConfig,
	store interfaces.Store,
	stats interfaces.ProcessStats,
	clk clock.Clock,
	m *metrics.Metrics,
	logger log.Logger,
) *Fabric {
	logger = helpers.Required(logger, "service.NewFabric", "logger")
	cfg.Descriptor = normalizeDescriptor(cfg.Descriptor)
	id := domain.DeriveInstanceID(cfg.Descriptor)

	f := &Fabric{
		cfg:        cfg,
		instanceID: id,
		logger:     log.WithPrefix(logger, "component", "Fabric", "instance_id", id),
		liveness:   make(map[uint64]func(domain.LivenessEvent)),
	}
	f.registry = NewRegistry(store, stats, clk, m, RegistryConfig{
		Namespace:         cfg.Namespace,
		HeartbeatInterval: cfg.HeartbeatInterval,
		PresenceTTL:       cfg.PresenceTTL,
		DegradedThreshold: cfg.DegradedThreshold,
		OnLiveness:        f.emitLiveness,
	}, logger)
	f.discovery = NewDiscovery(store, cfg.Namespace, logger)
	f.router = NewRouter(store, clk, m, cfg.Namespace, f.Address(), logger)
	return f
}

// Init registers the instance and subscribes to its channels. When subscribing fails the
// registration is rolled back, so a failed Init leaves no heartbeat and no presence behind.
func (f *Fabric) Init(ctx context.Context) error {
	if _, err := f.registry.Register(ctx, f.cfg.Descriptor); err != nil {
		return err
	}
	err := f.router.Listen(ctx)
	if err == nil {
		return nil
	}

	level.Error(f.logger).Log("msg", "Failed to listen, rolling back registration", "err", err)
	if derr := f.registry.Deregister(ctx, f.instanceID); derr != nil {
		level.Error(f.logger).Log("msg", "Failed to deregister", "err", derr)
		err = multierr.Append(err, derr)
	}
	return err
}

// InstanceID returns the identifier derived from the descriptor.
func (f *Fabric) InstanceID() domain.InstanceID {
	return f.instanceID
}

// Descriptor returns the normalized descriptor of this instance.
func (f *Fabric) Descriptor() domain.ServiceDescriptor {
	return f.cfg.Descriptor
}

// Address returns the direct address of this instance, e.g. "<id>@<service>".
func (f *Fabric) Address() domain.Address {
	return domain.Address{InstanceID: f.instanceID, ServiceName: f.cfg.Descriptor.ServiceName}
}

func (f *Fabric) Register(ctx context.Context, d domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
	return f.registry.Register(ctx, d)
}

func (f *Fabric) Deregister(ctx context.Context, id domain.InstanceID) error {
	return f.registry.Deregister(ctx, id)
}

func (f *Fabric) FindService(ctx context.Context, name string) (domain.ServiceEntry, error) {
	return f.discovery.FindService(ctx, name)
}

func (f *Fabric) GetServices(ctx context.Context) ([]domain.ServiceEntry, error) {
	return f.discovery.GetServices(ctx)
}

func (f *Fabric) GetServicePresence(ctx context.Context, name string) ([]domain.PresenceRecord, error) {
	return f.discovery.GetServicePresence(ctx, name)
}

// GetServiceNodes prunes records of expired instances, then lists the live ones. A failed prune
// does not fail the listing.
func (f *Fabric) GetServiceNodes(ctx context.Context) ([]domain.PresenceRecord, error) {
	if _, err := f.registry.PruneNodes(ctx); err != nil {
		level.Warn(f.logger).Log("msg", "Failed to prune node records", "err", err)
	}
	return f.discovery.GetServiceNodes(ctx)
}

func (f *Fabric) CreateMessage(fields domain.Envelope) domain.Envelope {
	return f.router.CreateMessage(fields)
}

func (f *Fabric) CreateReply(original domain.Envelope, fields domain.Envelope) domain.Envelope {
	return f.router.CreateReply(original, fields)
}

func (f *Fabric) SendMessage(ctx context.Context, env domain.Envelope) (domain.SendResult, error) {
	return f.router.SendMessage(ctx, env)
}

// OnMessage registers an inbound handler, see Router.OnMessage.
func (f *Fabric) OnMessage(handler MessageHandler) (cancel func()) {
	return f.router.OnMessage(handler)
}

// Inbox returns a pull handle over inbound envelopes, see Router.Inbox.
func (f *Fabric) Inbox(buffer int) *Inbox {
	return f.router.Inbox(buffer)
}

// OnLiveness registers a listener for degraded/recovered heartbeat events.
func (f *Fabric) OnLiveness(listener func(domain.LivenessEvent)) (cancel func()) {
	f.livenessMu.Lock()
	id := f.nextID
	f.nextID++
	f.liveness[id] = listener
	f.livenessMu.Unlock()

	return func() {
		f.livenessMu.Lock()
		delete(f.liveness, id)
		f.livenessMu.Unlock()
	}
}

func (f *Fabric) emitLiveness(ev domain.LivenessEvent) {
	f.livenessMu.RLock()
	defer f.livenessMu.RUnlock()
	for _, listener := range f.liveness {
		listener(ev)
	}
}

// Shutdown stops the heartbeat, unsubscribes and, when configured, deregisters. Every step is
// attempted even if an earlier one failed; failures are logged and returned combined.
// Safe to call more than once, later calls return the first result.
func (f *Fabric) Shutdown(ctx context.Context) error {
	f.shutdownOnce.Do(func() {
		f.registry.StopHeartbeats()

		if err := f.router.Close(); err != nil {
			level.Error(f.logger).Log("msg", "Failed to unsubscribe", "err", err)
			f.shutdownErr = multierr.Append(f.shutdownErr, err)
		}

		if f.cfg.DeregisterOnShutdown {
			if err := f.registry.Deregister(ctx, f.instanceID); err != nil {
				level.Error(f.logger).Log("msg", "Failed to deregister", "err", err)
				f.shutdownErr = multierr.Append(f.shutdownErr, err)
			}
		}

		level.Info(f.logger).Log("msg", "Fabric stopped")
	})
	return f.shutdownErr
}
