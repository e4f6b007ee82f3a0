package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"myfabric/adapters/myredis"
	"myfabric/domain"
	"myfabric/service"

	"gopkg.in/yaml.v3"
)

// Env variable names.
const (
	envRedisAddr            = "REDIS_ADDR"
	envHTTPPort             = "SERVICE_PORT_HTTP"
	envGRPCPort             = "SERVICE_PORT_GRPC"
	envConfigPath           = "CONFIG_PATH"
	envNamespace            = "REGISTRY_NAMESPACE"
	envHeartbeatIntervalMs  = "HEARTBEAT_INTERVAL_MS"
	envPresenceTTLMs        = "PRESENCE_TTL_MS"
	envDegradedThreshold    = "DEGRADED_THRESHOLD"
	envDeregisterOnShutdown = "DEREGISTER_ON_SHUTDOWN"
)

const defaultGRPCPort = 5001

// Config holds the configuration of one fabric instance, loaded by LoadConfig from environment
// variables and the YAML service descriptor at CONFIG_PATH.
type Config struct {
	Redis    myredis.RedisConfig
	HTTPPort int
	GRPCPort int
	Fabric   service.FabricConfig
}

// loadDescriptor reads the YAML service descriptor at path.
func loadDescriptor(path string) (domain.ServiceDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ServiceDescriptor{}, err
	}
	var out domain.ServiceDescriptor
	if err := yaml.Unmarshal(data, &out); err != nil {
		return domain.ServiceDescriptor{}, err
	}
	return out, nil
}

// LoadConfig loads configuration from environment variables.
// REDIS_ADDR, SERVICE_PORT_HTTP and CONFIG_PATH are required; the rest fall back to defaults.
// Every failure is a service.ConfigurationError.
func LoadConfig() (*Config, error) {
	redisAddr := strings.TrimSpace(os.Getenv(envRedisAddr))
	if redisAddr == "" {
		return nil, service.NewConfigurationError(envRedisAddr+" is required", nil)
	}

	httpPort, err := portEnv(envHTTPPort, 0)
	if err != nil {
		return nil, err
	}
	grpcPort, err := portEnv(envGRPCPort, defaultGRPCPort)
	if err != nil {
		return nil, err
	}

	configPath := strings.TrimSpace(os.Getenv(envConfigPath))
	if configPath == "" {
		return nil, service.NewConfigurationError(envConfigPath+" is required", nil)
	}
	if !filepath.IsAbs(configPath) {
		abs, absErr := filepath.Abs(configPath)
		if absErr != nil {
			return nil, service.NewConfigurationError("invalid "+envConfigPath, absErr)
		}
		configPath = abs
	}
	descriptor, err := loadDescriptor(configPath)
	if err != nil {
		return nil, service.NewConfigurationError(fmt.Sprintf("load config %s", configPath), err)
	}
	if strings.TrimSpace(descriptor.ServiceName) == "" {
		return nil, service.NewConfigurationError(fmt.Sprintf("config %s: service_name is required", configPath), nil)
	}

	namespace := strings.TrimSpace(os.Getenv(envNamespace))
	if namespace == "" {
		namespace = service.DefaultNamespace
	}

	intervalMs, err := positiveIntEnv(envHeartbeatIntervalMs, int(service.DefaultHeartbeatInterval/time.Millisecond))
	if err != nil {
		return nil, err
	}
	ttlMs, err := positiveIntEnv(envPresenceTTLMs, int(service.DefaultPresenceTTL/time.Millisecond))
	if err != nil {
		return nil, err
	}
	if ttlMs <= intervalMs {
		return nil, service.NewConfigurationError(
			fmt.Sprintf("%s (%d) must exceed %s (%d)", envPresenceTTLMs, ttlMs, envHeartbeatIntervalMs, intervalMs), nil)
	}
	threshold, err := positiveIntEnv(envDegradedThreshold, service.DefaultDegradedThreshold)
	if err != nil {
		return nil, err
	}

	deregister := true
	if s := strings.TrimSpace(os.Getenv(envDeregisterOnShutdown)); s != "" {
		deregister, err = strconv.ParseBool(s)
		if err != nil {
			return nil, service.NewConfigurationError("invalid "+envDeregisterOnShutdown, err)
		}
	}

	return &Config{
		Redis: myredis.RedisConfig{
			Addr: redisAddr,
		},
		HTTPPort: httpPort,
		GRPCPort: grpcPort,
		Fabric: service.FabricConfig{
			Descriptor:           descriptor,
			Namespace:            namespace,
			HeartbeatInterval:    time.Duration(intervalMs) * time.Millisecond,
			PresenceTTL:          time.Duration(ttlMs) * time.Millisecond,
			DegradedThreshold:    threshold,
			DeregisterOnShutdown: deregister,
		},
	}, nil
}

// portEnv parses a port (1-65535). A zero def makes the variable required.
func portEnv(name string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		if def == 0 {
			return 0, service.NewConfigurationError(name+" is required", nil)
		}
		return def, nil
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return 0, service.NewConfigurationError("invalid "+name, err)
	}
	if port <= 0 || port > 65535 {
		return 0, service.NewConfigurationError(fmt.Sprintf("%s must be 1-65535, got %d", name, port), nil)
	}
	return port, nil
}

func positiveIntEnv(name string, def int) (int, error) {
	s := strings.TrimSpace(os.Getenv(name))
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, service.NewConfigurationError(fmt.Sprintf("%s must be a positive integer, got %q", name, s), err)
	}
	return v, nil
}
