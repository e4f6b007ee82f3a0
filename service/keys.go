package service

import (
	"strings"

	"myfabric/domain"
)

// DefaultNamespace prefixes every key and channel when no namespace is configured.
const DefaultNamespace = "registry"

// keyspace builds the key and channel names shared by all instances of one deployment.
//
//	<ns>:service:<name>:meta                    hash, one per service
//	<ns>:service:nodes                          hash, instance id -> presence record JSON
//	<ns>:service:<name>:<instance_id>:presence  string with TTL, liveness
//	<ns>:service:<name>:channel                 pub/sub, service-wide delivery
//	<ns>:instance:<instance_id>:channel         pub/sub, direct delivery
type keyspace struct {
	ns string
}

func newKeyspace(ns string) keyspace {
	if ns == "" {
		ns = DefaultNamespace
	}
	return keyspace{ns: ns}
}

func (k keyspace) serviceMeta(name string) string {
	return k.ns + ":service:" + name + ":meta"
}

func (k keyspace) serviceMetaPattern() string {
	return k.ns + ":service:*:meta"
}

// serviceNameFromMeta extracts the service name from a meta key; "" when key is not a meta key.
func (k keyspace) serviceNameFromMeta(key string) string {
	prefix := k.ns + ":service:"
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, ":meta") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(key, prefix), ":meta")
}

func (k keyspace) nodes() string {
	return k.ns + ":service:nodes"
}

func (k keyspace) presence(name string, id domain.InstanceID) string {
	return k.ns + ":service:" + name + ":" + string(id) + ":presence"
}

func (k keyspace) presencePattern(name string) string {
	return k.ns + ":service:" + name + ":*:presence"
}

// instanceFromPresence extracts the instance id from a presence key of service name.
func (k keyspace) instanceFromPresence(name, key string) domain.InstanceID {
	prefix := k.ns + ":service:" + name + ":"
	if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, ":presence") {
		return ""
	}
	return domain.InstanceID(strings.TrimSuffix(strings.TrimPrefix(key, prefix), ":presence"))
}

func (k keyspace) serviceChannel(name string) string {
	return k.ns + ":service:" + name + ":channel"
}

func (k keyspace) instanceChannel(id domain.InstanceID) string {
	return k.ns + ":instance:" + string(id) + ":channel"
}
