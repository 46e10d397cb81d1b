package presentations

import (
	"context"

	"github.com/dmitrijs2005/gophslides/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Presentation) error
	GetByPublicID(ctx context.Context, publicID string) (*models.Presentation, error)
	UpdateTheme(ctx context.Context, id int64, theme string) error
}
