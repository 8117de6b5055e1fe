package main

import (
	"fmt"
	"net"

	"stock-lens/src/config"
	pb "stock-lens/src/grpc_control"
	"stock-lens/src/interfaces"
	"stock-lens/src/logger"

	"google.golang.org/grpc"
)

// defaultGrpcPort is used when grpc_port is unset.
const defaultGrpcPort = 50051

// -----------------------------------------------------------------------------

// startServers starts the HTTP API and the gRPC control server. The returned
// gRPC server is nil when it failed to listen.
func startServers(
	srv interfaces.IDataExchanger,
	lookups interfaces.ILookupService,
	watchlist pb.WatchlistController,
	config *config.Config,
	configPath string,
	appLogger *logger.Logger,
) *grpc.Server {

	// 1. HTTP API
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// 2. gRPC Control Server
	port := config.GrpcPort
	if port == 0 {
		port = defaultGrpcPort
	}
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", config.GrpcHost, port))
	if err != nil {
		appLogger.Critical("failed to listen for gRPC: %v", err)
		return nil
	}

	grpcServer := grpc.NewServer()
	controlService := pb.NewControlService(config, configPath, lookups, watchlist, logger.NewLogger(config.MConfig, "ControlService"))
	pb.RegisterControlServer(grpcServer, controlService)

	go func() {
		appLogger.Info("Starting gRPC Control Server on %s", lis.Addr())
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Critical("failed to serve gRPC: %v", err)
		}
	}()
	return grpcServer
}
