package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "gophslides.v1.PresentationService"

const (
	PresentationService_CreatePresentation_FullMethodName = "/" + ServiceName + "/CreatePresentation"
	PresentationService_GetPresentation_FullMethodName    = "/" + ServiceName + "/GetPresentation"
	PresentationService_VerifyEditSecret_FullMethodName   = "/" + ServiceName + "/VerifyEditSecret"
	PresentationService_UpdatePresentation_FullMethodName = "/" + ServiceName + "/UpdatePresentation"
	PresentationService_ExportPresentation_FullMethodName = "/" + ServiceName + "/ExportPresentation"
	PresentationService_Ping_FullMethodName               = "/" + ServiceName + "/Ping"
)

// PresentationServiceServer is the server API for PresentationService.
// Implementations should embed UnimplementedPresentationServiceServer.
type PresentationServiceServer interface {
	CreatePresentation(context.Context, *CreatePresentationRequest) (*CreatePresentationResponse, error)
	GetPresentation(context.Context, *GetPresentationRequest) (*GetPresentationResponse, error)
	VerifyEditSecret(context.Context, *VerifyEditSecretRequest) (*VerifyEditSecretResponse, error)
	UpdatePresentation(context.Context, *UpdatePresentationRequest) (*UpdatePresentationResponse, error)
	ExportPresentation(context.Context, *ExportPresentationRequest) (*ExportPresentationResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

type UnimplementedPresentationServiceServer struct{}

func (UnimplementedPresentationServiceServer) CreatePresentation(context.Context, *CreatePresentationRequest) (*CreatePresentationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreatePresentation not implemented")
}
func (UnimplementedPresentationServiceServer) GetPresentation(context.Context, *GetPresentationRequest) (*GetPresentationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetPresentation not implemented")
}
func (UnimplementedPresentationServiceServer) VerifyEditSecret(context.Context, *VerifyEditSecretRequest) (*VerifyEditSecretResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method VerifyEditSecret not implemented")
}
func (UnimplementedPresentationServiceServer) UpdatePresentation(context.Context, *UpdatePresentationRequest) (*UpdatePresentationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method UpdatePresentation not implemented")
}
func (UnimplementedPresentationServiceServer) ExportPresentation(context.Context, *ExportPresentationRequest) (*ExportPresentationResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ExportPresentation not implemented")
}
func (UnimplementedPresentationServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Ping not implemented")
}

func RegisterPresentationServiceServer(s grpc.ServiceRegistrar, srv PresentationServiceServer) {
	s.RegisterService(&PresentationService_ServiceDesc, srv)
}

// unaryHandler adapts one typed server method to grpc.MethodHandler,
// routing through the interceptor chain when one is installed.
func unaryHandler[Req, Resp any](fullMethod string, call func(PresentationServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PresentationServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PresentationServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PresentationService_ServiceDesc is the grpc.ServiceDesc for PresentationService.
var PresentationService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PresentationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreatePresentation",
			Handler:    unaryHandler(PresentationService_CreatePresentation_FullMethodName, PresentationServiceServer.CreatePresentation),
		},
		{
			MethodName: "GetPresentation",
			Handler:    unaryHandler(PresentationService_GetPresentation_FullMethodName, PresentationServiceServer.GetPresentation),
		},
		{
			MethodName: "VerifyEditSecret",
			Handler:    unaryHandler(PresentationService_VerifyEditSecret_FullMethodName, PresentationServiceServer.VerifyEditSecret),
		},
		{
			MethodName: "UpdatePresentation",
			Handler:    unaryHandler(PresentationService_UpdatePresentation_FullMethodName, PresentationServiceServer.UpdatePresentation),
		},
		{
			MethodName: "ExportPresentation",
			Handler:    unaryHandler(PresentationService_ExportPresentation_FullMethodName, PresentationServiceServer.ExportPresentation),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(PresentationService_Ping_FullMethodName, PresentationServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophslides/v1/presentation.proto",
}

// PresentationServiceClient is the client API for PresentationService.
type PresentationServiceClient interface {
	CreatePresentation(ctx context.Context, in *CreatePresentationRequest, opts ...grpc.CallOption) (*CreatePresentationResponse, error)
	GetPresentation(ctx context.Context, in *GetPresentationRequest, opts ...grpc.CallOption) (*GetPresentationResponse, error)
	VerifyEditSecret(ctx context.Context, in *VerifyEditSecretRequest, opts ...grpc.CallOption) (*VerifyEditSecretResponse, error)
	UpdatePresentation(ctx context.Context, in *UpdatePresentationRequest, opts ...grpc.CallOption) (*UpdatePresentationResponse, error)
	ExportPresentation(ctx context.Context, in *ExportPresentationRequest, opts ...grpc.CallOption) (*ExportPresentationResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type presentationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPresentationServiceClient returns a stub whose calls always use the
// JSON codec.
func NewPresentationServiceClient(cc grpc.ClientConnInterface) PresentationServiceClient {
	return &presentationServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *presentationServiceClient) CreatePresentation(ctx context.Context, in *CreatePresentationRequest, opts ...grpc.CallOption) (*CreatePresentationResponse, error) {
	return invoke[CreatePresentationResponse](ctx, c.cc, PresentationService_CreatePresentation_FullMethodName, in, opts)
}

func (c *presentationServiceClient) GetPresentation(ctx context.Context, in *GetPresentationRequest, opts ...grpc.CallOption) (*GetPresentationResponse, error) {
	return invoke[GetPresentationResponse](ctx, c.cc, PresentationService_GetPresentation_FullMethodName, in, opts)
}

func (c *presentationServiceClient) VerifyEditSecret(ctx context.Context, in *VerifyEditSecretRequest, opts ...grpc.CallOption) (*VerifyEditSecretResponse, error) {
	return invoke[VerifyEditSecretResponse](ctx, c.cc, PresentationService_VerifyEditSecret_FullMethodName, in, opts)
}

func (c *presentationServiceClient) UpdatePresentation(ctx context.Context, in *UpdatePresentationRequest, opts ...grpc.CallOption) (*UpdatePresentationResponse, error) {
	return invoke[UpdatePresentationResponse](ctx, c.cc, PresentationService_UpdatePresentation_FullMethodName, in, opts)
}

func (c *presentationServiceClient) ExportPresentation(ctx context.Context, in *ExportPresentationRequest, opts ...grpc.CallOption) (*ExportPresentationResponse, error) {
	return invoke[ExportPresentationResponse](ctx, c.cc, PresentationService_ExportPresentation_FullMethodName, in, opts)
}

func (c *presentationServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PresentationService_Ping_FullMethodName, in, opts)
}
