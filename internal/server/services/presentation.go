// Package services holds the server-side business logic: creating, reading,
// authorising and reconciling presentations.
package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/idgen"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/server/auth"
	"github.com/dmitrijs2005/gophslides/internal/server/cache"
	"github.com/dmitrijs2005/gophslides/internal/server/config"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophslides/internal/server/storage"
	"github.com/jmoiron/sqlx"
)

// createAttempts bounds retries after a public id collision.
const createAttempts = 3

// invalidateAttempts bounds retries of the post-commit cache invalidation.
const invalidateAttempts = 3

// CreateResult is returned once per presentation. EditSecret is never
// stored in plaintext and cannot be recovered later.
type CreateResult struct {
	PublicID   string
	EditSecret string
}

type PresentationService struct {
	db           *sqlx.DB
	repomanager  repomanager.RepositoryManager
	hasher       *auth.SecretHasher
	ids          idgen.Generator
	cache        cache.Cache
	store        storage.ObjectStore
	log          logging.Logger
	defaultTheme string
	maxSlides    int
	now          func() time.Time
}

type Option func(*PresentationService)

// WithCache enables read-through caching of Get.
func WithCache(c cache.Cache) Option {
	return func(s *PresentationService) { s.cache = c }
}

// WithObjectStore enables Export.
func WithObjectStore(st storage.ObjectStore) Option {
	return func(s *PresentationService) { s.store = st }
}

// WithIDGenerator replaces the nanoid token source.
func WithIDGenerator(g idgen.Generator) Option {
	return func(s *PresentationService) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *PresentationService) { s.now = now }
}

func NewPresentationService(db *sqlx.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger, opts ...Option) *PresentationService {
	s := &PresentationService{
		db:           db,
		repomanager:  m,
		hasher:       auth.NewSecretHasher(cfg.BcryptCost),
		ids:          idgen.NanoID{},
		cache:        cache.Nop{},
		log:          log.With("module", "presentations"),
		defaultTheme: cfg.DefaultTheme,
		maxSlides:    cfg.MaxSlides,
		now:          time.Now,
	}
	if s.defaultTheme == "" {
		s.defaultTheme = common.DefaultTheme
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Create stores a new presentation holding one slide (order 1) with the
// given ciphertext, and returns its public id and edit secret.
// The presentation row and its first slide are written in one transaction.
func (s *PresentationService) Create(ctx context.Context, initialContent string) (*CreateResult, error) {
	for attempt := 1; attempt <= createAttempts; attempt++ {
		res, err := s.create(ctx, initialContent)
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.log.Warn(ctx, "public id collision", "attempt", attempt)
			continue
		}
		if err != nil {
			return nil, err
		}
		s.log.Info(ctx, "presentation created", "public_id", res.PublicID)
		return res, nil
	}
	return nil, common.ErrCreationFailed
}

func (s *PresentationService) create(ctx context.Context, initialContent string) (*CreateResult, error) {
	publicID, err := s.ids.Generate(common.TokenAlphabet, common.PublicIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate public id: %w", err)
	}
	secret, err := s.ids.Generate(common.TokenAlphabet, common.EditSecretLength)
	if err != nil {
		return nil, fmt.Errorf("generate edit secret: %w", err)
	}
	hashed, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		p := &models.Presentation{PublicID: publicID, HashedEditKey: hashed, Theme: s.defaultTheme}
		if err := s.repomanager.Presentations(tx).Create(ctx, p); err != nil {
			return err
		}
		return s.repomanager.Slides(tx).Create(ctx, &models.Slide{
			PresentationID: p.ID,
			Content:        initialContent,
			Order:          1,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}

	return &CreateResult{PublicID: publicID, EditSecret: secret}, nil
}

// Get returns the presentation with its slides in display order. The edit
// secret hash is never part of the result.
func (s *PresentationService) Get(ctx context.Context, publicID string) (*models.Presentation, error) {
	if publicID == "" {
		return nil, fmt.Errorf("%w: empty public id", common.ErrInvalidArgument)
	}

	if p, ok := s.cache.Get(ctx, publicID); ok {
		s.log.Debug(ctx, "cache hit", "public_id", publicID)
		return p, nil
	}

	// taken before the read, so a view older than a concurrent commit is
	// never stored
	gen, cacheable := s.cache.Generation(ctx, publicID)

	p, err := s.repomanager.Presentations(s.db).GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	slides, err := s.repomanager.Slides(s.db).ListByPresentation(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	p.HashedEditKey = ""
	p.Slides = slides

	if cacheable {
		s.cache.Set(ctx, p, gen)
	}
	return p, nil
}

// VerifyEditSecret reports whether secret opens the presentation for
// editing. An unknown presentation is reported as false, not as an error.
func (s *PresentationService) VerifyEditSecret(ctx context.Context, publicID, secret string) (bool, error) {
	_, err := s.authorize(ctx, publicID, secret)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		return false, nil
	default:
		return false, err
	}
}

// Update replaces the slide set of the presentation with slides and sets
// its theme, after verifying secret. Nothing is written when the
// presentation does not exist or the secret does not verify.
func (s *PresentationService) Update(ctx context.Context, publicID, secret string, slides []models.SlideInput, theme string) error {
	if publicID == "" {
		return fmt.Errorf("%w: empty public id", common.ErrInvalidArgument)
	}
	if len(slides) > s.maxSlides {
		return fmt.Errorf("%w: %d slides, at most %d allowed", common.ErrInvalidArgument, len(slides), s.maxSlides)
	}
	for i, sl := range slides {
		if sl.Order < math.MinInt32 || sl.Order > math.MaxInt32 {
			return fmt.Errorf("%w: slide %d: order %d out of range", common.ErrInvalidArgument, i, sl.Order)
		}
	}
	if theme == "" {
		theme = s.defaultTheme
	}

	p, err := s.authorize(ctx, publicID, secret)
	if err != nil {
		return err
	}

	// readers that loaded before this point can no longer populate the cache
	if err := s.cache.Invalidate(ctx, publicID); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	plan := planReconcile(p.ID, slides)

	var st reconcileStats
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		st, err = s.applyReconcile(ctx, tx, p.ID, plan, theme)
		return err
	})
	if err != nil {
		return fmt.Errorf("update presentation: %w", err)
	}

	s.invalidateAfterCommit(ctx, publicID)
	s.log.Info(ctx, "presentation updated",
		"public_id", publicID,
		"deleted", st.deleted,
		"updated", st.updated,
		"inserted", st.inserted,
		"ignored", st.ignored,
	)
	return nil
}

// invalidateAfterCommit fences off readers that loaded while the
// transaction was open.
func (s *PresentationService) invalidateAfterCommit(ctx context.Context, publicID string) {
	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		if err = s.cache.Invalidate(ctx, publicID); err == nil {
			return
		}
	}
	s.log.Error(ctx, "cache invalidation after update failed", "public_id", publicID, "error", err)
}

func (s *PresentationService) authorize(ctx context.Context, publicID, secret string) (*models.Presentation, error) {
	if publicID == "" {
		return nil, common.ErrorNotFound
	}
	p, err := s.repomanager.Presentations(s.db).GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(secret, p.HashedEditKey) {
		return nil, common.ErrorUnauthorized
	}
	return p, nil
}
