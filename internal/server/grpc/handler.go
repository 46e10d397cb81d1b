package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophslides/internal/common"
	pb "github.com/dmitrijs2005/gophslides/internal/proto"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// toStatus maps service errors to gRPC codes. Anything unexpected is logged
// and reported as a bare internal error.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "presentation not found")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.PermissionDenied, "invalid edit secret")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrExportDisabled):
		return status.Error(codes.Unimplemented, "export is disabled")
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, common.ErrorInternal.Error())
	}
}

func (s *GRPCServer) CreatePresentation(ctx context.Context, req *pb.CreatePresentationRequest) (*pb.CreatePresentationResponse, error) {

	res, err := s.presentations.Create(ctx, req.InitialEncryptedContent)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.CreatePresentationResponse{PublicID: res.PublicID, EditSecret: res.EditSecret}, nil
}

func (s *GRPCServer) GetPresentation(ctx context.Context, req *pb.GetPresentationRequest) (*pb.GetPresentationResponse, error) {

	p, err := s.presentations.Get(ctx, req.PublicID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.GetPresentationResponse{Presentation: presentationToPB(p)}, nil
}

func (s *GRPCServer) VerifyEditSecret(ctx context.Context, req *pb.VerifyEditSecretRequest) (*pb.VerifyEditSecretResponse, error) {

	ok, err := s.presentations.VerifyEditSecret(ctx, req.PublicID, req.EditSecret)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.VerifyEditSecretResponse{Valid: ok}, nil
}

func (s *GRPCServer) UpdatePresentation(ctx context.Context, req *pb.UpdatePresentationRequest) (*pb.UpdatePresentationResponse, error) {

	slides := make([]models.SlideInput, 0, len(req.Slides))
	for _, in := range req.Slides {
		if in == nil {
			continue
		}
		slides = append(slides, models.SlideInput{ID: in.ID, Content: in.Content, Order: int(in.Order)})
	}

	if err := s.presentations.Update(ctx, req.PublicID, req.EditSecret, slides, req.Theme); err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.UpdatePresentationResponse{}, nil
}

func (s *GRPCServer) ExportPresentation(ctx context.Context, req *pb.ExportPresentationRequest) (*pb.ExportPresentationResponse, error) {

	url, err := s.presentations.Export(ctx, req.PublicID, req.EditSecret)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.ExportPresentationResponse{URL: url}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil

}

func presentationToPB(p *models.Presentation) *pb.Presentation {
	out := &pb.Presentation{
		PublicID: p.PublicID,
		Theme:    p.Theme,
		Slides:   make([]*pb.Slide, 0, len(p.Slides)),
	}
	if !p.CreatedAt.IsZero() {
		out.CreatedAt = timestamppb.New(p.CreatedAt)
	}
	for _, sl := range p.Slides {
		out.Slides = append(out.Slides, &pb.Slide{ID: sl.ID, Content: sl.Content, Order: int32(sl.Order)})
	}
	return out
}
