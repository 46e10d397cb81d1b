package proto

import "google.golang.org/protobuf/types/known/timestamppb"

type Slide struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Order   int32  `json:"order"`
}

// SlideInput is one element of an update. ID is omitted for new slides.
type SlideInput struct {
	ID      *int64 `json:"id,omitempty"`
	Content string `json:"content"`
	Order   int32  `json:"order"`
}

type Presentation struct {
	PublicID  string                 `json:"public_id"`
	Theme     string                 `json:"theme"`
	CreatedAt *timestamppb.Timestamp `json:"created_at,omitempty"`
	Slides    []*Slide               `json:"slides"`
}

type CreatePresentationRequest struct {
	InitialEncryptedContent string `json:"initial_encrypted_content"`
}

type CreatePresentationResponse struct {
	PublicID   string `json:"public_id"`
	EditSecret string `json:"edit_secret"`
}

type GetPresentationRequest struct {
	PublicID string `json:"public_id"`
}

type GetPresentationResponse struct {
	Presentation *Presentation `json:"presentation"`
}

type VerifyEditSecretRequest struct {
	PublicID   string `json:"public_id"`
	EditSecret string `json:"edit_secret"`
}

type VerifyEditSecretResponse struct {
	Valid bool `json:"valid"`
}

type UpdatePresentationRequest struct {
	PublicID   string        `json:"public_id"`
	EditSecret string        `json:"edit_secret"`
	Slides     []*SlideInput `json:"slides"`
	Theme      string        `json:"theme"`
}

type UpdatePresentationResponse struct{}

type ExportPresentationRequest struct {
	PublicID   string `json:"public_id"`
	EditSecret string `json:"edit_secret"`
}

type ExportPresentationResponse struct {
	URL string `json:"url"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

func (x *PingResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

func (x *GetPresentationResponse) GetPresentation() *Presentation {
	if x != nil {
		return x.Presentation
	}
	return nil
}
