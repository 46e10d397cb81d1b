package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// maxBodyBytes bounds request bodies; a full deck of ciphertext fits easily.
const maxBodyBytes = 8 << 20

// Routes returns the API router.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/presentations", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{publicID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Post("/verify", s.handleVerify)
			r.Post("/export", s.handleExport)
		})
	})

	return r
}

const requestIDHeader = "X-Request-Id"

// requestLogger tags every request with an id and logs one line when it
// completes.
func (s *HTTPServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, rid)
		r = r.WithContext(logging.ContextWithRequestID(r.Context(), rid))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
