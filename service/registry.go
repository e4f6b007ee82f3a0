package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"
	"myfabric/metrics"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registry defaults.
const (
	DefaultHeartbeatInterval = time.Second
	DefaultPresenceTTL       = 3 * time.Second
	DefaultDegradedThreshold = 3
)

// meta hash fields.
const (
	metaServiceName  = "service_name"
	metaDescription  = "description"
	metaServiceType  = "service_type"
	metaVersion      = "version"
	metaRegisteredOn = "registered_on"
)

// RegistryConfig tunes presence and heartbeat. Zero values fall back to the defaults.
type RegistryConfig struct {
	Namespace         string
	HeartbeatInterval time.Duration
	PresenceTTL       time.Duration
	DegradedThreshold int
	// OnLiveness receives degraded/recovered events from heartbeat loops. Optional.
	OnLiveness func(domain.LivenessEvent)
}

func (c RegistryConfig) withDefaults() RegistryConfig {
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.PresenceTTL <= 0 {
		c.PresenceTTL = DefaultPresenceTTL
	}
	if c.DegradedThreshold <= 0 {
		c.DegradedThreshold = DefaultDegradedThreshold
	}
	if c.OnLiveness == nil {
		c.OnLiveness = func(domain.LivenessEvent) {}
	}
	return c
}

// Registry owns writes of service metadata and presence records and runs one heartbeat per
// instance registered through it.
type Registry struct {
	store   interfaces.Store
	stats   interfaces.ProcessStats
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  log.Logger
	keys    keyspace
	cfg     RegistryConfig

	mu         sync.Mutex
	heartbeats map[domain.InstanceID]*heartbeat
	lastPrune  time.Time
}

// NewRegistry creates a Registry. Panics on nil store, stats, clock, metrics or logger.
func NewRegistry(
	store interfaces.Store,
	stats interfaces.ProcessStats,
	clk clock.Clock,
	m *metrics.Metrics,
	cfg RegistryConfig,
	logger log.Logger,
) *Registry {
	const component = "service.NewRegistry"
	cfg = cfg.withDefaults()
	r := &Registry{
		store:      helpers.Required(store, component, "store"),
		stats:      helpers.Required(stats, component, "process stats"),
		clock:      helpers.Required(clk, component, "clock"),
		metrics:    helpers.Required(m, component, "metrics"),
		logger:     log.WithPrefix(helpers.Required(logger, component, "logger"), "component", "Registry"),
		keys:       newKeyspace(cfg.Namespace),
		cfg:        cfg,
		heartbeats: make(map[domain.InstanceID]*heartbeat),
	}
	r.lastPrune = r.clock.Now()
	return r
}

// Register records the service metadata (first registration wins), writes the presence of the
// instance and starts its heartbeat. Registering the same descriptor again is a no-op apart from
// refreshing presence; a descriptor conflicting with stored metadata fails with registration_error.
func (r *Registry) Register(ctx context.Context, d domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
	d, err := r.register(ctx, d)
	r.metrics.ObserveRegistration(err)
	return d, err
}

func (r *Registry) register(ctx context.Context, d domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
	d = normalizeDescriptor(d)
	if err := validateDescriptor(d); err != nil {
		return d, err
	}

	id := domain.DeriveInstanceID(d)
	now := r.clock.Now().UTC()
	metaKey := r.keys.serviceMeta(d.ServiceName)

	results, err := r.store.Atomic(ctx,
		domain.HashSetIfAbsent(metaKey, metaServiceName, d.ServiceName),
		domain.HashSetIfAbsent(metaKey, metaDescription, d.Description),
		domain.HashSetIfAbsent(metaKey, metaServiceType, d.ServiceType),
		domain.HashSetIfAbsent(metaKey, metaVersion, d.Version),
		domain.HashSetIfAbsent(metaKey, metaRegisteredOn, now.Format(time.RFC3339Nano)),
		domain.HashGetAll(metaKey),
	)
	if err != nil {
		return d, fmt.Errorf("register failed to write service metadata (service='%s'), err: %w", d.ServiceName, err)
	}
	if len(results) != 6 {
		return d, NewInternalServerError("Store batch reply error", fmt.Errorf("expected 6 results, got %d", len(results)))
	}
	if conflict := metaConflict(results[len(results)-1].Hash, d); conflict != "" {
		return d, NewRegistrationError(
			fmt.Sprintf("service %s is already registered with a different %s", d.ServiceName, conflict), nil)
	}

	hb := r.heartbeatFor(d, id)
	if err := hb.beat(ctx); err != nil {
		return d, fmt.Errorf("register failed to write presence (instance='%s'), err: %w", id, err)
	}
	hb.start(ctx)

	level.Info(r.logger).Log("msg", "Instance registered", "service", d.ServiceName, "instance_id", id)
	return d, nil
}

// heartbeatFor returns the heartbeat of id, creating it when the instance is new to this registry.
func (r *Registry) heartbeatFor(d domain.ServiceDescriptor, id domain.InstanceID) *heartbeat {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hb, ok := r.heartbeats[id]; ok {
		return hb
	}
	hb := newHeartbeat(id, r.cfg.HeartbeatInterval, r.cfg.DegradedThreshold, r.clock, r.metrics, r.logger, r.cfg.OnLiveness,
		func(ctx context.Context) error {
			if err := r.writePresence(ctx, d, id); err != nil {
				return err
			}
			r.maybePruneNodes(ctx)
			return nil
		})
	r.heartbeats[id] = hb
	return hb
}

// writePresence refreshes the presence key expiry and the node record in one batch.
func (r *Registry) writePresence(ctx context.Context, d domain.ServiceDescriptor, id domain.InstanceID) error {
	now := r.clock.Now().UTC()
	snap := r.stats.Snapshot()
	record := domain.PresenceRecord{
		InstanceID:    id,
		ServiceName:   d.ServiceName,
		Host:          d.Host,
		Port:          d.Port,
		ProcessID:     snap.ProcessID,
		UpdatedOn:     now,
		UptimeSeconds: snap.UptimeSeconds,
		Load1:         snap.Load1,
		MemoryRSS:     snap.MemoryRSS,
	}
	bytes, err := json.Marshal(record)
	if err != nil {
		return NewInternalServerError("Presence marshal error", fmt.Errorf("can't marshal presence record (instance='%s'), err: %w", id, err))
	}

	_, err = r.store.Atomic(ctx,
		domain.SetWithExpiry(r.keys.presence(d.ServiceName, id), now.Format(time.RFC3339Nano), r.cfg.PresenceTTL),
		domain.HashSet(r.keys.nodes(), map[string]string{string(id): string(bytes)}),
	)
	return err
}

// maybePruneNodes runs PruneNodes at most once per presence TTL across the heartbeats of this
// registry. A failed prune is logged and retried on a later beat.
func (r *Registry) maybePruneNodes(ctx context.Context) {
	now := r.clock.Now()
	r.mu.Lock()
	due := now.Sub(r.lastPrune) >= r.cfg.PresenceTTL
	if due {
		r.lastPrune = now
	}
	r.mu.Unlock()
	if !due {
		return
	}

	if _, err := r.PruneNodes(ctx); err != nil {
		level.Warn(r.logger).Log("msg", "Failed to prune node records", "err", err)
	}
}

// PruneNodes removes the node records of instances whose presence key has expired, and records
// that can't be decoded. It returns the number of records removed.
// A record written again by an instance racing the prune is restored by that instance's next beat.
func (r *Registry) PruneNodes(ctx context.Context) (int, error) {
	all, err := r.store.HashGetAll(ctx, r.keys.nodes())
	if err != nil {
		return 0, fmt.Errorf("pruneNodes failed to read nodes, err: %w", err)
	}

	var stale []string
	for field, raw := range all {
		var record domain.PresenceRecord
		if err := json.Unmarshal([]byte(raw), &record); err != nil || record.ServiceName == "" {
			stale = append(stale, field)
			continue
		}
		n, err := r.store.Exists(ctx, r.keys.presence(record.ServiceName, domain.InstanceID(field)))
		if err != nil {
			return 0, fmt.Errorf("pruneNodes failed to check presence (instance='%s'), err: %w", field, err)
		}
		if n == 0 {
			stale = append(stale, field)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}

	sort.Strings(stale)
	ops := make([]domain.StoreOp, 0, len(stale))
	for _, field := range stale {
		ops = append(ops, domain.HashDelete(r.keys.nodes(), field))
	}
	if _, err := r.store.Atomic(ctx, ops...); err != nil {
		return 0, fmt.Errorf("pruneNodes failed to remove stale records, err: %w", err)
	}

	level.Info(r.logger).Log("msg", "Pruned stale node records", "count", len(stale), "instance_ids", strings.Join(stale, ","))
	return len(stale), nil
}

// Deregister stops the heartbeat of id (when run by this registry) and removes its presence and
// node record. Service metadata is kept; the service stays undiscoverable until an instance is live again.
func (r *Registry) Deregister(ctx context.Context, id domain.InstanceID) error {
	r.mu.Lock()
	hb, local := r.heartbeats[id]
	delete(r.heartbeats, id)
	r.mu.Unlock()

	if local {
		hb.stop()
	}

	serviceName, err := r.serviceNameOf(ctx, id)
	if err != nil {
		return err
	}

	_, err = r.store.Atomic(ctx,
		domain.Delete(r.keys.presence(serviceName, id)),
		domain.HashDelete(r.keys.nodes(), string(id)),
	)
	if err != nil {
		return fmt.Errorf("deregister failed to remove presence (instance='%s'), err: %w", id, err)
	}

	level.Info(r.logger).Log("msg", "Instance deregistered", "service", serviceName, "instance_id", id)
	return nil
}

// serviceNameOf resolves the service of an instance from its node record.
func (r *Registry) serviceNameOf(ctx context.Context, id domain.InstanceID) (string, error) {
	values, err := r.store.HashGet(ctx, r.keys.nodes(), string(id))
	if err != nil {
		return "", fmt.Errorf("deregister failed to read node record (instance='%s'), err: %w", id, err)
	}
	raw, ok := values[string(id)]
	if !ok {
		return "", NewEntityNotFoundError(fmt.Sprintf("instance %s is not registered", id), nil)
	}
	var record domain.PresenceRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return "", NewInternalServerError("Presence unmarshal error", fmt.Errorf("can't unmarshal node record (instance='%s'), err: %w", id, err))
	}
	return record.ServiceName, nil
}

// StopHeartbeats stops every heartbeat started by this registry without touching the store.
func (r *Registry) StopHeartbeats() {
	r.mu.Lock()
	hbs := make([]*heartbeat, 0, len(r.heartbeats))
	for _, hb := range r.heartbeats {
		hbs = append(hbs, hb)
	}
	r.mu.Unlock()

	for _, hb := range hbs {
		hb.stop()
	}
}

func normalizeDescriptor(d domain.ServiceDescriptor) domain.ServiceDescriptor {
	d.ServiceName = strings.TrimSpace(d.ServiceName)
	d.ServiceType = strings.TrimSpace(d.ServiceType)
	d.Host = strings.TrimSpace(d.Host)
	d.Version = strings.TrimSpace(d.Version)
	if d.Version == "" {
		d.Version = domain.DefaultServiceVersion
	}
	return d
}

// validateDescriptor checks the fields registration depends on.
// Returns registration_error naming the first invalid field.
func validateDescriptor(d domain.ServiceDescriptor) error {
	if d.ServiceName == "" {
		return NewRegistrationError("service_name is required", nil)
	}
	if strings.ContainsAny(d.ServiceName, " \t\r\n@:*?[]") {
		return NewRegistrationError("service_name must not contain whitespace or any of @:*?[]", nil)
	}
	if d.ServiceType == "" {
		return NewRegistrationError("service_type is required", nil)
	}
	if d.Host == "" {
		return NewRegistrationError("host is required", nil)
	}
	if d.Port <= 0 || d.Port > 65535 {
		return NewRegistrationError("port must be 1-65535", nil)
	}
	return nil
}

// metaConflict returns the name of the first stored field that differs from d, or "".
func metaConflict(stored map[string]string, d domain.ServiceDescriptor) string {
	switch {
	case stored[metaServiceType] != d.ServiceType:
		return metaServiceType
	case stored[metaDescription] != d.Description:
		return metaDescription
	case stored[metaVersion] != d.Version:
		return metaVersion
	}
	return ""
}

// serviceEntryFromMeta converts a meta hash into a ServiceEntry.
func serviceEntryFromMeta(name string, meta map[string]string) domain.ServiceEntry {
	entry := domain.ServiceEntry{
		ServiceName: name,
		Description: meta[metaDescription],
		ServiceType: meta[metaServiceType],
		Version:     meta[metaVersion],
	}
	if ts, err := time.Parse(time.RFC3339Nano, meta[metaRegisteredOn]); err == nil {
		entry.RegisteredOn = ts
	}
	return entry
}
