// Package cache provides a read-through cache of public presentation views
// keyed by public id.
package cache

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/server/models"
)

// Cache stores presentations without their edit-secret hash.
//
// Every presentation has a generation counter. A reader takes the
// generation before loading from the database and hands it to Set, which
// stores the view only while the generation is unchanged. Writers call
// Invalidate before and after their transaction, so a view loaded before a
// commit can never be stored after it.
//
// Get, Generation and Set never fail the caller: backend errors are misses.
type Cache interface {
	Get(ctx context.Context, publicID string) (*models.Presentation, bool)
	// Generation returns the current generation of publicID. ok is false
	// when it cannot be read, and the caller must then skip Set.
	Generation(ctx context.Context, publicID string) (gen int64, ok bool)
	Set(ctx context.Context, p *models.Presentation, gen int64)
	// Invalidate advances the generation and drops the stored view.
	Invalidate(ctx context.Context, publicID string) error
}

// Nop is a Cache that stores nothing.
type Nop struct{}

func (Nop) Get(context.Context, string) (*models.Presentation, bool) { return nil, false }
func (Nop) Generation(context.Context, string) (int64, bool)         { return 0, false }
func (Nop) Set(context.Context, *models.Presentation, int64)         {}
func (Nop) Invalidate(context.Context, string) error                 { return nil }

type entry struct {
	ID        int64         `json:"id"`
	PublicID  string        `json:"public_id"`
	Theme     string        `json:"theme"`
	CreatedAt time.Time     `json:"created_at"`
	Slides    []*slideEntry `json:"slides"`
}

type slideEntry struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

func toEntry(p *models.Presentation) *entry {
	e := &entry{
		ID:        p.ID,
		PublicID:  p.PublicID,
		Theme:     p.Theme,
		CreatedAt: p.CreatedAt,
		Slides:    make([]*slideEntry, 0, len(p.Slides)),
	}
	for _, s := range p.Slides {
		e.Slides = append(e.Slides, &slideEntry{ID: s.ID, Content: s.Content, Order: s.Order})
	}
	return e
}

func (e *entry) toModel() *models.Presentation {
	p := &models.Presentation{
		ID:        e.ID,
		PublicID:  e.PublicID,
		Theme:     e.Theme,
		CreatedAt: e.CreatedAt,
		Slides:    make([]*models.Slide, 0, len(e.Slides)),
	}
	for _, s := range e.Slides {
		p.Slides = append(p.Slides, &models.Slide{ID: s.ID, PresentationID: e.ID, Content: s.Content, Order: s.Order})
	}
	return p
}
