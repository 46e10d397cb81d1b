package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/client/client"
	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/stretchr/testify/require"
)

type fakePresentation struct {
	secret string
	theme  string
	slides []models.Slide
}

// fakeAPI keeps presentations in memory and applies updates the way the
// server does: known ids keep their row, the rest are inserted.
type fakeAPI struct {
	presentations map[string]*fakePresentation
	nextID        int64
	calls         []string

	createErr error
	exportURL string

	lastUpdate []models.SlideInput
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{presentations: map[string]*fakePresentation{}, exportURL: "https://s3.local/snap.json"}
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) Ping(ctx context.Context) error {
	f.calls = append(f.calls, "ping")
	return nil
}

func (f *fakeAPI) CreatePresentation(ctx context.Context, initialContent string) (*models.Created, error) {
	f.calls = append(f.calls, "create")
	if f.createErr != nil {
		return nil, f.createErr
	}
	id := "pub" + string(rune('A'+len(f.presentations)))
	f.nextID++
	f.presentations[id] = &fakePresentation{
		secret: "secret-" + id,
		theme:  common.DefaultTheme,
		slides: []models.Slide{{ID: f.nextID, Content: initialContent, Order: 1}},
	}
	return &models.Created{PublicID: id, EditSecret: "secret-" + id}, nil
}

func (f *fakeAPI) GetPresentation(ctx context.Context, publicID string) (*models.Presentation, error) {
	f.calls = append(f.calls, "get")
	p, ok := f.presentations[publicID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Presentation{
		PublicID:  publicID,
		Theme:     p.theme,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Slides:    append([]models.Slide(nil), p.slides...),
	}, nil
}

func (f *fakeAPI) VerifyEditSecret(ctx context.Context, publicID, editSecret string) (bool, error) {
	f.calls = append(f.calls, "verify")
	p, ok := f.presentations[publicID]
	return ok && p.secret == editSecret, nil
}

func (f *fakeAPI) UpdatePresentation(ctx context.Context, publicID, editSecret string, slides []models.SlideInput, theme string) error {
	f.calls = append(f.calls, "update")
	f.lastUpdate = slides

	p, ok := f.presentations[publicID]
	if !ok {
		return common.ErrorNotFound
	}
	if p.secret != editSecret {
		return common.ErrorUnauthorized
	}

	next := make([]models.Slide, 0, len(slides))
	for _, in := range slides {
		if in.ID != nil {
			next = append(next, models.Slide{ID: *in.ID, Content: in.Content, Order: in.Order})
			continue
		}
		f.nextID++
		next = append(next, models.Slide{ID: f.nextID, Content: in.Content, Order: in.Order})
	}
	p.slides = next
	if theme != "" {
		p.theme = theme
	}
	return nil
}

func (f *fakeAPI) ExportPresentation(ctx context.Context, publicID, editSecret string) (string, error) {
	f.calls = append(f.calls, "export")
	p, ok := f.presentations[publicID]
	if !ok {
		return "", common.ErrorNotFound
	}
	if p.secret != editSecret {
		return "", common.ErrorUnauthorized
	}
	return f.exportURL, nil
}

var _ client.Client = (*fakeAPI)(nil)

func newTestService(t *testing.T) (*deckService, *fakeAPI) {
	t.Helper()

	repos, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	api := newFakeAPI()
	svc := NewDeckService(api, repos.Decks, "http://localhost:3000/", logging.Discard()).(*deckService)
	return svc, api
}
