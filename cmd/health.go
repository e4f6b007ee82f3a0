package main

import (
	"myfabric/domain"

	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// livenessSource is implemented by *service.Fabric.
type livenessSource interface {
	OnLiveness(listener func(domain.LivenessEvent)) (cancel func())
}

// bindHealth reports SERVING for the server ("") and serviceName, switching to NOT_SERVING while
// the heartbeat of this instance is degraded. The returned func detaches the listener.
func bindHealth(src livenessSource, hs *health.Server, serviceName string) (cancel func()) {
	set := func(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
		hs.SetServingStatus("", status)
		hs.SetServingStatus(serviceName, status)
	}
	set(grpc_health_v1.HealthCheckResponse_SERVING)

	return src.OnLiveness(func(ev domain.LivenessEvent) {
		switch ev.State {
		case domain.LivenessDegraded:
			set(grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		case domain.LivenessRecovered:
			set(grpc_health_v1.HealthCheckResponse_SERVING)
		}
	})
}
