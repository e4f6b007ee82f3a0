package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myfabric/adapters/myredis"
	"myfabric/adapters/procstat"
	"myfabric/api"
	"myfabric/handlers"
	"myfabric/interfaces"
	"myfabric/metrics"
	"myfabric/service"

	"github.com/benbjohnson/clock"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyFabric instance")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_name", config.Fabric.Descriptor.ServiceName,
		"service_port_http", config.HTTPPort,
		"service_port_grpc", config.GRPCPort,
		"redis_addr", config.Redis.Addr,
		"namespace", config.Fabric.Namespace,
		"heartbeat_interval", config.Fabric.HeartbeatInterval,
		"presence_ttl", config.Fabric.PresenceTTL,
	)

	var store interfaces.Store
	{
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		store = myredis.NewStore(redisClient)
	}

	clk := clock.New()
	m := metrics.New()

	var fabric *service.Fabric
	{
		stats := procstat.NewProcessStats(clk, logger)
		fabric = service.NewFabric(config.Fabric, store, stats, clk, m, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fabric.Init(ctx); err != nil {
			level.Error(logger).Log("msg", "Failed to initialize fabric", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Registered", "instance_id", fabric.InstanceID(), "address", fabric.Address())
	}

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		validator, err := handlers.NewRequestValidator(api.Document)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to load OpenAPI document", "err", err)
			os.Exit(1)
		}

		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(fabric, logger), validator)
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	var grpcServer *grpc.Server
	var stopHealth func()
	{
		grpcServer = grpc.NewServer()

		// Register health check service
		healthServer := health.NewServer()
		stopHealth = bindHealth(fabric, healthServer, fabric.Descriptor().ServiceName)
		grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", config.GRPCPort))
	if err != nil {
		level.Error(logger).Log("msg", "Failed to listen", "err", err)
		os.Exit(1)
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	go func() {
		level.Info(logger).Log("msg", "Starting gRPC server", "addr", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			level.Error(logger).Log("msg", "gRPC server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during HTTP server shutdown", "err", err)
	}
	stopHealth()
	grpcServer.GracefulStop()

	if err := fabric.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during fabric shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
