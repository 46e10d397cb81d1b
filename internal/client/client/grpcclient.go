package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/dmitrijs2005/gophslides/internal/common"
	pb "github.com/dmitrijs2005/gophslides/internal/proto"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      pb.PresentationServiceClient
}

// withRequestID tags the outgoing call with a correlation id unless the
// caller already set one.
func withRequestID(ctx context.Context) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	if len(md.Get(common.RequestIDHeader)) > 0 {
		return ctx
	}
	md = md.Copy()
	md.Set(common.RequestIDHeader, uuid.NewString())
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) requestIDInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	return invoker(withRequestID(ctx), method, req, reply, cc, opts...)
}

// NewPresentationClient dials endpointURL lazily. Every call is bounded by
// timeout when it is positive.
func NewPresentationClient(endpointURL string, timeout time.Duration) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL, grpc.WithTransportCredentials(insecure.NewCredentials()), grpc.WithUnaryInterceptor(s.requestIDInterceptor))
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPresentationServiceClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) CreatePresentation(ctx context.Context, initialContent string) (*models.Created, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CreatePresentation(ctx, &pb.CreatePresentationRequest{InitialEncryptedContent: initialContent})
	if err != nil {
		return nil, s.mapError(err)
	}
	if resp.PublicID == "" || resp.EditSecret == "" {
		return nil, ErrBadResponse
	}

	return &models.Created{PublicID: resp.PublicID, EditSecret: resp.EditSecret}, nil
}

func (s *GRPCClient) GetPresentation(ctx context.Context, publicID string) (*models.Presentation, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetPresentation(ctx, &pb.GetPresentationRequest{PublicID: publicID})
	if err != nil {
		return nil, s.mapError(err)
	}

	p := resp.GetPresentation()
	if p == nil {
		return nil, ErrBadResponse
	}

	out := &models.Presentation{
		PublicID: p.PublicID,
		Theme:    p.Theme,
		Slides:   make([]models.Slide, 0, len(p.Slides)),
	}
	if p.CreatedAt != nil {
		out.CreatedAt = p.CreatedAt.AsTime()
	}
	for _, sl := range p.Slides {
		if sl == nil {
			continue
		}
		out.Slides = append(out.Slides, models.Slide{ID: sl.ID, Content: sl.Content, Order: sl.Order})
	}

	return out, nil
}

func (s *GRPCClient) VerifyEditSecret(ctx context.Context, publicID, editSecret string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.VerifyEditSecret(ctx, &pb.VerifyEditSecretRequest{PublicID: publicID, EditSecret: editSecret})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Valid, nil
}

func (s *GRPCClient) UpdatePresentation(ctx context.Context, publicID, editSecret string, slides []models.SlideInput, theme string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	in := make([]*pb.SlideInput, 0, len(slides))
	for _, sl := range slides {
		in = append(in, &pb.SlideInput{ID: sl.ID, Content: sl.Content, Order: sl.Order})
	}

	req := &pb.UpdatePresentationRequest{PublicID: publicID, EditSecret: editSecret, Slides: in, Theme: theme}
	if _, err := s.client.UpdatePresentation(ctx, req); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) ExportPresentation(ctx context.Context, publicID, editSecret string) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.ExportPresentation(ctx, &pb.ExportPresentationRequest{PublicID: publicID, EditSecret: editSecret})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.URL, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.Unauthenticated, codes.PermissionDenied:
		return common.ErrorUnauthorized
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrInvalidArgument, st.Message())
	case codes.Unimplemented:
		return common.ErrExportDisabled
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
