package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophslides/internal/logging"
	pb "github.com/dmitrijs2005/gophslides/internal/proto"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/dmitrijs2005/gophslides/internal/server/services"
	"google.golang.org/grpc"
)

// presentationService is what the transport needs from
// services.PresentationService.
type presentationService interface {
	Create(ctx context.Context, initialContent string) (*services.CreateResult, error)
	Get(ctx context.Context, publicID string) (*models.Presentation, error)
	VerifyEditSecret(ctx context.Context, publicID, secret string) (bool, error)
	Update(ctx context.Context, publicID, secret string, slides []models.SlideInput, theme string) error
	Export(ctx context.Context, publicID, secret string) (string, error)
}

type GRPCServer struct {
	pb.UnimplementedPresentationServiceServer
	address       string
	presentations presentationService
	logger        logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ps presentationService) *GRPCServer {
	return &GRPCServer{
		address:       a,
		logger:        l.With("module", "grpc_server"),
		presentations: ps,
	}
}

// buildServer builds the grpc.Server with interceptors and the service
// registered. Run and the in-process tests share it.
func (s *GRPCServer) buildServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	pb.RegisterPresentationServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled,
// then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := s.buildServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
