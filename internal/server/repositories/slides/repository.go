package slides

import (
	"context"

	"github.com/dmitrijs2005/gophslides/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.Slide) error
	ListByPresentation(ctx context.Context, presentationID int64) ([]*models.Slide, error)
	DeleteExcept(ctx context.Context, presentationID int64, keepIDs []int64) (int64, error)
	Update(ctx context.Context, s *models.Slide) (bool, error)
}
