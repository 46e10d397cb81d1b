package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/google/uuid"
)

// ExportURLValidity is how long a presigned snapshot link stays usable.
const ExportURLValidity = 15 * time.Minute

// Snapshot is the exported document. Slide content stays ciphertext; only
// holders of the link key can read it.
type Snapshot struct {
	PublicID   string          `json:"public_id"`
	Theme      string          `json:"theme"`
	CreatedAt  time.Time       `json:"created_at"`
	ExportedAt time.Time       `json:"exported_at"`
	Slides     []SnapshotSlide `json:"slides"`
}

type SnapshotSlide struct {
	Content string `json:"content"`
	Order   int    `json:"order"`
}

// SnapshotKey returns a fresh object key for a snapshot taken at t.
func SnapshotKey(publicID string, t time.Time) string {
	return fmt.Sprintf("presentations/%04d/%02d/%02d/%s-%s.json", t.Year(), t.Month(), t.Day(), publicID, uuid.New())
}

// Export writes a ciphertext snapshot of the presentation to object storage
// and returns a presigned download URL. Like Update it requires the edit
// secret.
func (s *PresentationService) Export(ctx context.Context, publicID, secret string) (string, error) {
	if s.store == nil {
		return "", common.ErrExportDisabled
	}

	p, err := s.authorize(ctx, publicID, secret)
	if err != nil {
		return "", err
	}

	slides, err := s.repomanager.Slides(s.db).ListByPresentation(ctx, p.ID)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	snap := Snapshot{
		PublicID:   p.PublicID,
		Theme:      p.Theme,
		CreatedAt:  p.CreatedAt,
		ExportedAt: now,
		Slides:     make([]SnapshotSlide, 0, len(slides)),
	}
	for _, sl := range slides {
		snap.Slides = append(snap.Slides, SnapshotSlide{Content: sl.Content, Order: sl.Order})
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := SnapshotKey(p.PublicID, now)
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		return "", err
	}

	url, err := s.store.PresignGet(ctx, key, ExportURLValidity)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "presentation exported", "public_id", publicID, "key", key)
	return url, nil
}
