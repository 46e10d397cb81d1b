package decks

import (
	"context"

	"github.com/dmitrijs2005/gophslides/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, d *models.SavedDeck) error
	Get(ctx context.Context, publicID string) (*models.SavedDeck, error)
	List(ctx context.Context) ([]*models.SavedDeck, error)
	Delete(ctx context.Context, publicID string) error
}
