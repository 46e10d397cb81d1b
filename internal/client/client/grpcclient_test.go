package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/dmitrijs2005/gophslides/internal/common"
	pb "github.com/dmitrijs2005/gophslides/internal/proto"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

/*************
 * Fake pb client
 *************/

type fakePB struct {
	// inputs captured
	lastPingReq   *pb.PingRequest
	lastCreateReq *pb.CreatePresentationRequest
	lastGetReq    *pb.GetPresentationRequest
	lastVerifyReq *pb.VerifyEditSecretRequest
	lastUpdateReq *pb.UpdatePresentationRequest
	lastExportReq *pb.ExportPresentationRequest
	lastDeadline  bool

	// outputs preset
	pingResp *pb.PingResponse
	pingErr  error

	createResp *pb.CreatePresentationResponse
	createErr  error

	getResp *pb.GetPresentationResponse
	getErr  error

	verifyResp *pb.VerifyEditSecretResponse
	verifyErr  error

	updateErr error

	exportResp *pb.ExportPresentationResponse
	exportErr  error
}

func (f *fakePB) Ping(ctx context.Context, in *pb.PingRequest, opts ...grpc.CallOption) (*pb.PingResponse, error) {
	f.lastPingReq = in
	_, f.lastDeadline = ctx.Deadline()
	return f.pingResp, f.pingErr
}
func (f *fakePB) CreatePresentation(ctx context.Context, in *pb.CreatePresentationRequest, opts ...grpc.CallOption) (*pb.CreatePresentationResponse, error) {
	f.lastCreateReq = in
	return f.createResp, f.createErr
}
func (f *fakePB) GetPresentation(ctx context.Context, in *pb.GetPresentationRequest, opts ...grpc.CallOption) (*pb.GetPresentationResponse, error) {
	f.lastGetReq = in
	return f.getResp, f.getErr
}
func (f *fakePB) VerifyEditSecret(ctx context.Context, in *pb.VerifyEditSecretRequest, opts ...grpc.CallOption) (*pb.VerifyEditSecretResponse, error) {
	f.lastVerifyReq = in
	return f.verifyResp, f.verifyErr
}
func (f *fakePB) UpdatePresentation(ctx context.Context, in *pb.UpdatePresentationRequest, opts ...grpc.CallOption) (*pb.UpdatePresentationResponse, error) {
	f.lastUpdateReq = in
	return &pb.UpdatePresentationResponse{}, f.updateErr
}
func (f *fakePB) ExportPresentation(ctx context.Context, in *pb.ExportPresentationRequest, opts ...grpc.CallOption) (*pb.ExportPresentationResponse, error) {
	f.lastExportReq = in
	return f.exportResp, f.exportErr
}

/*************
 * requestIDInterceptor tests
 *************/

func TestInterceptor_AddsRequestID(t *testing.T) {
	c := &GRPCClient{}

	var got []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		got = md.Get(common.RequestIDHeader)
		return nil
	}

	require.NoError(t, c.requestIDInterceptor(context.Background(), "/svc/Method", nil, nil, nil, invoker))
	require.Len(t, got, 1)
	require.NotEmpty(t, got[0])
}

func TestInterceptor_KeepsCallerRequestID(t *testing.T) {
	c := &GRPCClient{}
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.RequestIDHeader, "rid-1")

	var got []string
	invoker := func(ctx context.Context, method string, req, reply interface{}, cc *grpc.ClientConn, opts ...grpc.CallOption) error {
		md, _ := metadata.FromOutgoingContext(ctx)
		got = md.Get(common.RequestIDHeader)
		return status.Error(codes.Internal, "boom")
	}

	err := c.requestIDInterceptor(ctx, "/svc/Method", nil, nil, nil, invoker)
	require.Error(t, err)
	require.Equal(t, []string{"rid-1"}, got)
}

/*************
 * mapError tests
 *************/

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	require.Equal(t, common.ErrorNotFound, c.mapError(status.Error(codes.NotFound, "x")))
	require.Equal(t, common.ErrorUnauthorized, c.mapError(status.Error(codes.Unauthenticated, "x")))
	require.Equal(t, common.ErrorUnauthorized, c.mapError(status.Error(codes.PermissionDenied, "x")))
	require.Equal(t, common.ErrExportDisabled, c.mapError(status.Error(codes.Unimplemented, "x")))
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.Unavailable, "x")))
	require.Equal(t, ErrUnavailable, c.mapError(status.Error(codes.DeadlineExceeded, "x")))

	err := c.mapError(status.Error(codes.InvalidArgument, "too many slides"))
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	require.ErrorContains(t, err, "too many slides")

	e := errors.New("plain")
	require.ErrorContains(t, c.mapError(e), "rpc error:")
	require.NoError(t, c.mapError(nil))
}

/*************
 * Ping tests
 *************/

func TestPing_OK(t *testing.T) {
	f := &fakePB{pingResp: &pb.PingResponse{Status: "OK"}}
	c := &GRPCClient{client: f}
	require.NoError(t, c.Ping(context.Background()))
	require.False(t, f.lastDeadline, "no timeout configured")
}

func TestPing_AppliesTimeout(t *testing.T) {
	f := &fakePB{pingResp: &pb.PingResponse{Status: "OK"}}
	c := &GRPCClient{client: f, timeout: time.Second}
	require.NoError(t, c.Ping(context.Background()))
	require.True(t, f.lastDeadline)
}

func TestPing_NotOK_ReturnsUnavailable(t *testing.T) {
	f := &fakePB{pingResp: &pb.PingResponse{Status: "NOT_OK"}}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_MapsRPCError(t *testing.T) {
	f := &fakePB{pingErr: status.Error(codes.Unavailable, "down")}
	c := &GRPCClient{client: f}
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

/*************
 * Presentation calls
 *************/

func TestCreatePresentation_Success(t *testing.T) {
	f := &fakePB{createResp: &pb.CreatePresentationResponse{PublicID: "abcd1234", EditSecret: "s3cr3t"}}
	c := &GRPCClient{client: f}

	got, err := c.CreatePresentation(context.Background(), "blob")
	require.NoError(t, err)
	require.Equal(t, &models.Created{PublicID: "abcd1234", EditSecret: "s3cr3t"}, got)
	require.Equal(t, "blob", f.lastCreateReq.InitialEncryptedContent)
}

func TestCreatePresentation_EmptyResponse(t *testing.T) {
	f := &fakePB{createResp: &pb.CreatePresentationResponse{}}
	c := &GRPCClient{client: f}
	_, err := c.CreatePresentation(context.Background(), "blob")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestGetPresentation_MapsResponse(t *testing.T) {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := &fakePB{getResp: &pb.GetPresentationResponse{Presentation: &pb.Presentation{
		PublicID:  "abcd1234",
		Theme:     "white.css",
		CreatedAt: timestamppb.New(created),
		Slides: []*pb.Slide{
			{ID: 7, Content: "c1", Order: 1},
			nil,
			{ID: 9, Content: "c2", Order: 2},
		},
	}}}
	c := &GRPCClient{client: f}

	p, err := c.GetPresentation(context.Background(), "abcd1234")
	require.NoError(t, err)
	require.Equal(t, "abcd1234", f.lastGetReq.PublicID)
	require.Equal(t, "white.css", p.Theme)
	require.True(t, created.Equal(p.CreatedAt))
	require.Equal(t, []models.Slide{{ID: 7, Content: "c1", Order: 1}, {ID: 9, Content: "c2", Order: 2}}, p.Slides)
}

func TestGetPresentation_NotFound(t *testing.T) {
	f := &fakePB{getErr: status.Error(codes.NotFound, "not found")}
	c := &GRPCClient{client: f}
	_, err := c.GetPresentation(context.Background(), "nope")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetPresentation_NilPresentation(t *testing.T) {
	f := &fakePB{getResp: &pb.GetPresentationResponse{}}
	c := &GRPCClient{client: f}
	_, err := c.GetPresentation(context.Background(), "x")
	require.ErrorIs(t, err, ErrBadResponse)
}

func TestVerifyEditSecret(t *testing.T) {
	f := &fakePB{verifyResp: &pb.VerifyEditSecretResponse{Valid: true}}
	c := &GRPCClient{client: f}

	ok, err := c.VerifyEditSecret(context.Background(), "p", "s")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "p", f.lastVerifyReq.PublicID)
	require.Equal(t, "s", f.lastVerifyReq.EditSecret)
}

func TestUpdatePresentation_MapsRequest(t *testing.T) {
	f := &fakePB{}
	c := &GRPCClient{client: f}

	id := int64(5)
	slides := []models.SlideInput{
		{ID: &id, Content: "c1", Order: 1},
		{Content: "c2", Order: 2},
	}
	require.NoError(t, c.UpdatePresentation(context.Background(), "p", "s", slides, "moon.css"))

	req := f.lastUpdateReq
	require.Equal(t, "p", req.PublicID)
	require.Equal(t, "s", req.EditSecret)
	require.Equal(t, "moon.css", req.Theme)
	require.Len(t, req.Slides, 2)
	require.Equal(t, int64(5), *req.Slides[0].ID)
	require.Nil(t, req.Slides[1].ID)
	require.Equal(t, int32(2), req.Slides[1].Order)
}

func TestUpdatePresentation_WrongSecret(t *testing.T) {
	f := &fakePB{updateErr: status.Error(codes.PermissionDenied, "unauthorized")}
	c := &GRPCClient{client: f}
	err := c.UpdatePresentation(context.Background(), "p", "bad", nil, "")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestExportPresentation(t *testing.T) {
	f := &fakePB{exportResp: &pb.ExportPresentationResponse{URL: "https://dl"}}
	c := &GRPCClient{client: f}

	url, err := c.ExportPresentation(context.Background(), "p", "s")
	require.NoError(t, err)
	require.Equal(t, "https://dl", url)
	require.Equal(t, "p", f.lastExportReq.PublicID)
}

func TestExportPresentation_Disabled(t *testing.T) {
	f := &fakePB{exportErr: status.Error(codes.Unimplemented, "export is not configured")}
	c := &GRPCClient{client: f}
	_, err := c.ExportPresentation(context.Background(), "p", "s")
	require.ErrorIs(t, err, common.ErrExportDisabled)
}

func TestNewPresentationClient_LazyDial(t *testing.T) {
	c, err := NewPresentationClient("127.0.0.1:1", time.Second)
	require.NoError(t, err)
	require.NotNil(t, c.client)
	require.NoError(t, c.Close())
}
