package grpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// requestID returns the caller's x-request-id or a fresh uuid.
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.RequestIDHeader); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}

// loggingInterceptor logs one line per call with method, code and duration.
// The request id is echoed back in the response header and travels in ctx,
// so records logged by the handler carry it too.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	rid := requestID(ctx)
	_ = grpc.SetHeader(ctx, metadata.Pairs(common.RequestIDHeader, rid))
	ctx = logging.ContextWithRequestID(ctx, rid)

	start := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	log := s.logger.With("method", info.FullMethod)
	if code == codes.Internal {
		log.Error(ctx, "rpc", "code", code.String(), "duration", time.Since(start))
	} else {
		log.Info(ctx, "rpc", "code", code.String(), "duration", time.Since(start))
	}

	return resp, err
}
