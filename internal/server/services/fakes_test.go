package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/dbx"
	"github.com/dmitrijs2005/gophslides/internal/idgen"
	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/server/config"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/presentations"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophslides/internal/server/repositories/slides"
	"github.com/jmoiron/sqlx"
)

// --- in-memory store shared by the fake repositories ---

type memStore struct {
	mu sync.Mutex

	nextPresentation int64
	nextSlide        int64
	presentations    map[string]*models.Presentation
	slides           map[int64]*models.Slide

	writes int

	// createErrs are returned by successive presentation inserts.
	createErrs []error
	// slideCreateErr fails every slide insert when set.
	slideCreateErr error

	// beforeList runs at the start of every slide listing, outside the lock.
	beforeList func()
}

func newMemStore() *memStore {
	return &memStore{
		presentations: map[string]*models.Presentation{},
		slides:        map[int64]*models.Slide{},
	}
}

// slidesOf returns a copy of the persisted slides of publicID in read order.
func (s *memStore) slidesOf(publicID string) []models.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.presentations[publicID]
	if !ok {
		return nil
	}
	return s.listLocked(p.ID)
}

func (s *memStore) listLocked(presentationID int64) []models.Slide {
	var out []models.Slide
	for _, sl := range s.slides {
		if sl.PresentationID == presentationID {
			out = append(out, *sl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *memStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type memPresentations struct{ s *memStore }

func (r memPresentations) Create(_ context.Context, p *models.Presentation) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.createErrs) > 0 {
		err := s.createErrs[0]
		s.createErrs = s.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, ok := s.presentations[p.PublicID]; ok {
		return common.ErrorAlreadyExists
	}

	s.nextPresentation++
	p.ID = s.nextPresentation
	p.CreatedAt = time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	cp := *p
	s.presentations[p.PublicID] = &cp
	s.writes++
	return nil
}

func (r memPresentations) GetByPublicID(_ context.Context, publicID string) (*models.Presentation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.presentations[publicID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memPresentations) UpdateTheme(_ context.Context, id int64, theme string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.presentations {
		if p.ID == id {
			p.Theme = theme
			r.s.writes++
			return nil
		}
	}
	return common.ErrorNotFound
}

type memSlides struct{ s *memStore }

func (r memSlides) Create(_ context.Context, sl *models.Slide) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slideCreateErr != nil {
		return s.slideCreateErr
	}
	s.nextSlide++
	sl.ID = s.nextSlide
	cp := *sl
	s.slides[sl.ID] = &cp
	s.writes++
	return nil
}

func (r memSlides) ListByPresentation(_ context.Context, presentationID int64) ([]*models.Slide, error) {
	if r.s.beforeList != nil {
		r.s.beforeList()
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Slide
	for _, sl := range r.s.listLocked(presentationID) {
		out = append(out, &sl)
	}
	return out, nil
}

func (r memSlides) DeleteExcept(_ context.Context, presentationID int64, keepIDs []int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	keep := map[int64]bool{}
	for _, id := range keepIDs {
		keep[id] = true
	}
	var n int64
	for id, sl := range r.s.slides {
		if sl.PresentationID == presentationID && !keep[id] {
			delete(r.s.slides, id)
			n++
		}
	}
	r.s.writes++
	return n, nil
}

func (r memSlides) Update(_ context.Context, sl *models.Slide) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.slides[sl.ID]
	if !ok || cur.PresentationID != sl.PresentationID {
		return false, nil
	}
	cur.Content = sl.Content
	cur.Order = sl.Order
	r.s.writes++
	return true, nil
}

type memManager struct{ s *memStore }

func (m memManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m memManager) Presentations(dbx.DBTX) presentations.Repository {
	return memPresentations{s: m.s}
}
func (m memManager) Slides(dbx.DBTX) slides.Repository { return memSlides{s: m.s} }

var _ repomanager.RepositoryManager = memManager{}

// --- recording cache ---

// recordingCache follows the generation rules of cache.RedisCache in memory.
type recordingCache struct {
	mu            sync.Mutex
	entries       map[string]*models.Presentation
	gens          map[string]int64
	invalidations []string

	// invalidateErrs are returned by successive Invalidate calls.
	invalidateErrs []error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{
		entries: map[string]*models.Presentation{},
		gens:    map[string]int64{},
	}
}

func (c *recordingCache) Get(_ context.Context, id string) (*models.Presentation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[id]
	return p, ok
}

func (c *recordingCache) Generation(_ context.Context, id string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[id], true
}

func (c *recordingCache) Set(_ context.Context, p *models.Presentation, gen int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[p.PublicID] != gen {
		return
	}
	c.entries[p.PublicID] = p
}

func (c *recordingCache) Invalidate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.invalidateErrs) > 0 {
		err := c.invalidateErrs[0]
		c.invalidateErrs = c.invalidateErrs[1:]
		if err != nil {
			return err
		}
	}
	c.gens[id]++
	delete(c.entries, id)
	c.invalidations = append(c.invalidations, id)
	return nil
}

func (c *recordingCache) cached(id string) (*models.Presentation, bool) {
	return c.Get(context.Background(), id)
}

// --- helpers ---

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BcryptCost = 4
	cfg.MaxSlides = 5
	return cfg
}

func newSQLMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "pgx"), mock
}

// newMemService wires a service to the in-memory store. Transactions still
// go through sqlmock, so tests declare their Begin/Commit/Rollback.
func newMemService(t *testing.T, store *memStore, opts ...Option) (*PresentationService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	return NewPresentationService(db, memManager{s: store}, testConfig(), logging.Discard(), opts...), mock
}

func expectCommittedTx(mock sqlmock.Sqlmock, n int) {
	for i := 0; i < n; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func seq(tokens ...string) Option {
	return WithIDGenerator(idgen.NewSequence(tokens...))
}

func id(v int64) *int64 { return &v }
