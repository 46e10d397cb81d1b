package client

import (
	"context"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
)

// Client is the transport-agnostic contract the client services depend on.
// All payloads are ciphertext; the client never sends a plaintext slide.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	CreatePresentation(ctx context.Context, initialContent string) (*models.Created, error)
	GetPresentation(ctx context.Context, publicID string) (*models.Presentation, error)
	VerifyEditSecret(ctx context.Context, publicID, editSecret string) (bool, error)
	UpdatePresentation(ctx context.Context, publicID, editSecret string, slides []models.SlideInput, theme string) error
	ExportPresentation(ctx context.Context, publicID, editSecret string) (string, error)
}
