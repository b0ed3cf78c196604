// Package grpc exposes the LedgerService over gRPC: handlers, the auth
// interceptor and the server lifecycle.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/homeledger/internal/logging"
	"github.com/dmitrijs2005/homeledger/internal/rpc"
	"github.com/dmitrijs2005/homeledger/internal/server/realtime"
	"github.com/dmitrijs2005/homeledger/internal/server/services"
	"google.golang.org/grpc"
)

type GRPCServer struct {
	address   string
	users     *services.UserService
	ledger    *services.LedgerService
	receipts  *services.ReceiptService
	hub       *realtime.Hub
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us *services.UserService, ls *services.LedgerService,
	rs *services.ReceiptService, hub *realtime.Hub, secretKey string) (*GRPCServer, error) {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		ledger:    ls,
		receipts:  rs,
		hub:       hub,
		jwtSecret: []byte(secretKey),
	}, nil
}

func (s *GRPCServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.accessTokenInterceptor),
		grpc.ChainStreamInterceptor(s.streamAccessTokenInterceptor),
	)

	rpc.RegisterLedgerServiceServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
