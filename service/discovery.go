package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"myfabric/domain"
	"myfabric/helpers"
	"myfabric/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Discovery answers read-only queries over registry state. A service is found only while at
// least one of its presence keys is live.
type Discovery struct {
	store  interfaces.Store
	keys   keyspace
	logger log.Logger
}

// NewDiscovery creates a Discovery over the keys of namespace. Panics on nil store or logger.
func NewDiscovery(store interfaces.Store, namespace string, logger log.Logger) *Discovery {
	const component = "service.NewDiscovery"
	return &Discovery{
		store:  helpers.Required(store, component, "store"),
		keys:   newKeyspace(namespace),
		logger: log.WithPrefix(helpers.Required(logger, component, "logger"), "component", "Discovery"),
	}
}

// FindService returns the metadata of name.
// Returns:
// 1) (entry, nil) when the service is registered and has a live instance;
// 2) (zero, entity_not_found "Can't find <name> service") otherwise;
// 3) (zero, internal_server_error) on store failure.
func (d *Discovery) FindService(ctx context.Context, name string) (domain.ServiceEntry, error) {
	meta, err := d.store.HashGetAll(ctx, d.keys.serviceMeta(name))
	if err != nil {
		return domain.ServiceEntry{}, fmt.Errorf("findService failed to read metadata (service='%s'), err: %w", name, err)
	}
	if len(meta) == 0 {
		return domain.ServiceEntry{}, NewServiceNotFoundError(name)
	}

	live, err := d.liveInstances(ctx, name)
	if err != nil {
		return domain.ServiceEntry{}, err
	}
	if len(live) == 0 {
		return domain.ServiceEntry{}, NewServiceNotFoundError(name)
	}

	return serviceEntryFromMeta(name, meta), nil
}

// GetServices returns one entry per registered service that has a live instance, ordered by name.
func (d *Discovery) GetServices(ctx context.Context) ([]domain.ServiceEntry, error) {
	metaKeys, err := d.store.ScanKeys(ctx, d.keys.serviceMetaPattern())
	if err != nil {
		return nil, fmt.Errorf("getServices failed to list services, err: %w", err)
	}

	names := make([]string, 0, len(metaKeys))
	for _, key := range metaKeys {
		if name := d.keys.serviceNameFromMeta(key); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]domain.ServiceEntry, 0, len(names))
	for _, name := range names {
		entry, err := d.FindService(ctx, name)
		if IsEntityNotFoundError(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// GetServicePresence returns the presence records of the live instances of name, ordered by instance id.
// Returns:
// 1) (records, nil), possibly empty when no instance is live;
// 2) (nil, entity_not_found) when the service was never registered;
// 3) (nil, internal_server_error) on store failure.
func (d *Discovery) GetServicePresence(ctx context.Context, name string) ([]domain.PresenceRecord, error) {
	meta, err := d.store.HashGetAll(ctx, d.keys.serviceMeta(name))
	if err != nil {
		return nil, fmt.Errorf("getServicePresence failed to read metadata (service='%s'), err: %w", name, err)
	}
	if len(meta) == 0 {
		return nil, NewServiceNotFoundError(name)
	}

	live, err := d.liveInstances(ctx, name)
	if err != nil {
		return nil, err
	}
	return d.records(ctx, live)
}

// GetServiceNodes returns the node records of every live instance across all services.
func (d *Discovery) GetServiceNodes(ctx context.Context) ([]domain.PresenceRecord, error) {
	all, err := d.store.HashGetAll(ctx, d.keys.nodes())
	if err != nil {
		return nil, fmt.Errorf("getServiceNodes failed to read nodes, err: %w", err)
	}

	records := make([]domain.PresenceRecord, 0, len(all))
	presenceKeys := make([]string, 0, len(all))
	for id, raw := range all {
		record, ok := d.decodeRecord(id, raw)
		if !ok {
			continue
		}
		records = append(records, record)
		presenceKeys = append(presenceKeys, d.keys.presence(record.ServiceName, record.InstanceID))
	}

	out := make([]domain.PresenceRecord, 0, len(records))
	for i, record := range records {
		n, err := d.store.Exists(ctx, presenceKeys[i])
		if err != nil {
			return nil, fmt.Errorf("getServiceNodes failed to check presence (instance='%s'), err: %w", record.InstanceID, err)
		}
		if n > 0 {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceName != out[j].ServiceName {
			return out[i].ServiceName < out[j].ServiceName
		}
		return out[i].InstanceID < out[j].InstanceID
	})
	return out, nil
}

// liveInstances returns the ids of instances of name whose presence key has not expired, sorted.
func (d *Discovery) liveInstances(ctx context.Context, name string) ([]domain.InstanceID, error) {
	keys, err := d.store.ScanKeys(ctx, d.keys.presencePattern(name))
	if err != nil {
		return nil, fmt.Errorf("failed to list presence (service='%s'), err: %w", name, err)
	}

	ids := make([]domain.InstanceID, 0, len(keys))
	for _, key := range keys {
		if id := d.keys.instanceFromPresence(name, key); id != "" {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// records reads the node records of ids; instances without a readable record are skipped.
func (d *Discovery) records(ctx context.Context, ids []domain.InstanceID) ([]domain.PresenceRecord, error) {
	out := make([]domain.PresenceRecord, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	fields := make([]string, 0, len(ids))
	for _, id := range ids {
		fields = append(fields, string(id))
	}
	values, err := d.store.HashGet(ctx, d.keys.nodes(), fields...)
	if err != nil {
		return nil, fmt.Errorf("failed to read node records, err: %w", err)
	}

	for _, id := range ids {
		raw, ok := values[string(id)]
		if !ok {
			continue
		}
		if record, ok := d.decodeRecord(string(id), raw); ok {
			out = append(out, record)
		}
	}
	return out, nil
}

func (d *Discovery) decodeRecord(id, raw string) (domain.PresenceRecord, bool) {
	var record domain.PresenceRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		level.Warn(d.logger).Log("msg", "Skipping unreadable node record", "instance_id", id, "err", err)
		return domain.PresenceRecord{}, false
	}
	return record, true
}
