package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/client/client"
	"github.com/dmitrijs2005/gophslides/internal/client/deck"
	"github.com/dmitrijs2005/gophslides/internal/client/models"
	"github.com/dmitrijs2005/gophslides/internal/client/repositories/decks"
	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/cryptox"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/netx"
)

// OpenedDeck is a decrypted presentation.
type OpenedDeck struct {
	Link      *deck.Link
	Theme     string
	CreatedAt time.Time
	Slides    []string
}

// Markdown renders the slides as a deck file.
func (d *OpenedDeck) Markdown() string {
	return deck.Join(d.Slides)
}

// PushResult summarises what an update did to the slide set.
type PushResult struct {
	Updated int
	Created int
	Deleted int
	Theme   string
}

type DeckService interface {
	Ping(ctx context.Context) error
	Create(ctx context.Context, markdown string) (*deck.Link, error)
	Open(ctx context.Context, ref string) (*OpenedDeck, error)
	Push(ctx context.Context, ref, markdown, theme string) (*PushResult, error)
	SetTheme(ctx context.Context, ref, theme string) error
	Verify(ctx context.Context, ref string) (bool, error)
	Export(ctx context.Context, ref string) (string, error)
	DownloadSnapshot(ctx context.Context, ref, url string, decrypt bool) ([]byte, error)
	Resolve(ctx context.Context, ref string) (*deck.Link, error)
	Library(ctx context.Context) ([]*models.SavedDeck, error)
	Forget(ctx context.Context, publicID string) error
}

type deckService struct {
	client   client.Client
	decks    decks.Repository
	origin   string
	log      logging.Logger
	download func(ctx context.Context, url string) ([]byte, error)
}

// NewDeckService wires the API client and the local library. origin is used
// to build share links for new decks and library entries.
func NewDeckService(c client.Client, repo decks.Repository, origin string, log logging.Logger) DeckService {
	return &deckService{
		client:   c,
		decks:    repo,
		origin:   strings.TrimRight(origin, "/"),
		log:      log.With("module", "decks"),
		download: netx.Download,
	}
}

func (s *deckService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

// Resolve turns a share link or the public id of a remembered deck into a
// Link.
func (s *deckService) Resolve(ctx context.Context, ref string) (*deck.Link, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, common.ErrInvalidLink
	}
	if strings.Contains(ref, "/") || strings.Contains(ref, "#") {
		return deck.ParseLink(ref)
	}

	saved, err := s.decks.Get(ctx, ref)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: %q is neither a link nor a saved deck", common.ErrInvalidLink, ref)
	}
	if err != nil {
		return nil, err
	}
	return &deck.Link{Origin: s.origin, PublicID: saved.PublicID, EditSecret: saved.EditSecret, KeyToken: saved.KeyToken}, nil
}

// resolveEditable resolves ref and imports its key. Both checks happen
// before any network call.
func (s *deckService) resolveEditable(ctx context.Context, ref string) (*deck.Link, cryptox.Key, error) {
	link, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, cryptox.Key{}, err
	}
	if !link.CanEdit() {
		return nil, cryptox.Key{}, ErrEditLinkRequired
	}
	key, err := cryptox.ImportKey(link.KeyToken)
	if err != nil {
		return nil, cryptox.Key{}, err
	}
	return link, key, nil
}

// Create makes a new presentation from markdown. An empty deck is seeded
// with the welcome slide. The first slide travels with the create call; the
// rest follow in one update.
func (s *deckService) Create(ctx context.Context, markdown string) (*deck.Link, error) {
	slides := deck.Split(markdown)
	if len(slides) == 0 {
		slides = []string{common.WelcomeSlide}
	}

	token, err := cryptox.GenerateKey()
	if err != nil {
		return nil, err
	}
	key, err := cryptox.ImportKey(token)
	if err != nil {
		return nil, err
	}

	first, err := cryptox.Encrypt(slides[0], key)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	created, err := s.client.CreatePresentation(ctx, first)
	if err != nil {
		return nil, err
	}

	link := &deck.Link{Origin: s.origin, PublicID: created.PublicID, EditSecret: created.EditSecret, KeyToken: token}
	s.remember(ctx, link, deck.Title(slides[0]))

	if len(slides) > 1 {
		if _, err := s.push(ctx, link, key, slides, ""); err != nil {
			return link, fmt.Errorf("presentation created but slides were not uploaded: %w", err)
		}
	}

	s.log.Info(ctx, "presentation created", "public_id", link.PublicID, "slides", len(slides))
	return link, nil
}

// Open fetches and decrypts a presentation. Decryption is all or nothing.
func (s *deckService) Open(ctx context.Context, ref string) (*OpenedDeck, error) {
	link, err := s.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	key, err := cryptox.ImportKey(link.KeyToken)
	if err != nil {
		return nil, err
	}

	p, err := s.client.GetPresentation(ctx, link.PublicID)
	if err != nil {
		return nil, err
	}

	plain, err := cryptox.DecryptAll(ctx, p.Contents(), key)
	if err != nil {
		return nil, err
	}

	title := ""
	if len(plain) > 0 {
		title = deck.Title(plain[0])
	}
	s.remember(ctx, link, title)

	return &OpenedDeck{Link: link, Theme: p.Theme, CreatedAt: p.CreatedAt, Slides: plain}, nil
}

// Push replaces the slides of a presentation with the slides of markdown.
// Slides are matched to the stored ones by position: the i-th slide keeps
// the id of the i-th stored slide, extra slides are created and missing ones
// are deleted. An empty theme keeps the current one.
func (s *deckService) Push(ctx context.Context, ref, markdown, theme string) (*PushResult, error) {
	link, key, err := s.resolveEditable(ctx, ref)
	if err != nil {
		return nil, err
	}

	slides := deck.Split(markdown)
	if len(slides) == 0 {
		return nil, ErrEmptyDeck
	}

	res, err := s.push(ctx, link, key, slides, theme)
	if err != nil {
		return nil, err
	}
	s.remember(ctx, link, deck.Title(slides[0]))
	return res, nil
}

func (s *deckService) push(ctx context.Context, link *deck.Link, key cryptox.Key, slides []string, theme string) (*PushResult, error) {
	current, err := s.client.GetPresentation(ctx, link.PublicID)
	if err != nil {
		return nil, err
	}

	blobs, err := cryptox.EncryptAll(ctx, slides, key)
	if err != nil {
		return nil, fmt.Errorf("encryption error: %w", err)
	}

	if theme == "" {
		theme = current.Theme
	}

	in := make([]models.SlideInput, len(blobs))
	res := &PushResult{Theme: theme}
	for i, b := range blobs {
		in[i] = models.SlideInput{Content: b, Order: int32(i + 1)}
		if i < len(current.Slides) {
			id := current.Slides[i].ID
			in[i].ID = &id
			res.Updated++
		} else {
			res.Created++
		}
	}
	if len(current.Slides) > len(blobs) {
		res.Deleted = len(current.Slides) - len(blobs)
	}

	if err := s.client.UpdatePresentation(ctx, link.PublicID, link.EditSecret, in, theme); err != nil {
		return nil, err
	}
	return res, nil
}

// SetTheme changes the theme and resubmits the stored ciphertext untouched.
func (s *deckService) SetTheme(ctx context.Context, ref, theme string) error {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return ErrEmptyTheme
	}

	link, _, err := s.resolveEditable(ctx, ref)
	if err != nil {
		return err
	}

	current, err := s.client.GetPresentation(ctx, link.PublicID)
	if err != nil {
		return err
	}

	in := make([]models.SlideInput, len(current.Slides))
	for i, sl := range current.Slides {
		id := sl.ID
		in[i] = models.SlideInput{ID: &id, Content: sl.Content, Order: sl.Order}
	}

	return s.client.UpdatePresentation(ctx, link.PublicID, link.EditSecret, in, theme)
}

func (s *deckService) Verify(ctx context.Context, ref string) (bool, error) {
	link, err := s.Resolve(ctx, ref)
	if err != nil {
		return false, err
	}
	if !link.CanEdit() {
		return false, ErrEditLinkRequired
	}
	return s.client.VerifyEditSecret(ctx, link.PublicID, link.EditSecret)
}

func (s *deckService) Export(ctx context.Context, ref string) (string, error) {
	link, _, err := s.resolveEditable(ctx, ref)
	if err != nil {
		return "", err
	}
	return s.client.ExportPresentation(ctx, link.PublicID, link.EditSecret)
}

// snapshot mirrors the document the server exports.
type snapshot struct {
	PublicID string `json:"public_id"`
	Theme    string `json:"theme"`
	Slides   []struct {
		Content string `json:"content"`
		Order   int    `json:"order"`
	} `json:"slides"`
}

// DownloadSnapshot fetches an exported snapshot. With decrypt set the slides
// are decrypted locally and returned as a markdown deck.
func (s *deckService) DownloadSnapshot(ctx context.Context, ref, url string, decrypt bool) ([]byte, error) {
	var key cryptox.Key
	if decrypt {
		link, err := s.Resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if key, err = cryptox.ImportKey(link.KeyToken); err != nil {
			return nil, err
		}
	}

	body, err := s.download(ctx, url)
	if err != nil {
		return nil, err
	}
	if !decrypt {
		return body, nil
	}

	var snap snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	sort.SliceStable(snap.Slides, func(i, j int) bool { return snap.Slides[i].Order < snap.Slides[j].Order })

	blobs := make([]string, len(snap.Slides))
	for i, sl := range snap.Slides {
		blobs[i] = sl.Content
	}
	plain, err := cryptox.DecryptAll(ctx, blobs, key)
	if err != nil {
		return nil, err
	}
	return []byte(deck.Join(plain)), nil
}

func (s *deckService) Library(ctx context.Context) ([]*models.SavedDeck, error) {
	return s.decks.List(ctx)
}

func (s *deckService) Forget(ctx context.Context, publicID string) error {
	return s.decks.Delete(ctx, publicID)
}

// remember records the deck in the local library. Failures only cost the
// shortcut, so they are logged.
func (s *deckService) remember(ctx context.Context, link *deck.Link, title string) {
	err := s.decks.Save(ctx, &models.SavedDeck{
		PublicID:   link.PublicID,
		EditSecret: link.EditSecret,
		KeyToken:   link.KeyToken,
		Title:      title,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		s.log.Warn(ctx, "failed to remember deck", "public_id", link.PublicID, "error", err)
	}
}
