// Package httpapi exposes the presentation service as a JSON API over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/logging"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/dmitrijs2005/gophslides/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type presentationService interface {
	Create(ctx context.Context, initialContent string) (*services.CreateResult, error)
	Get(ctx context.Context, publicID string) (*models.Presentation, error)
	VerifyEditSecret(ctx context.Context, publicID, secret string) (bool, error)
	Update(ctx context.Context, publicID, secret string, slides []models.SlideInput, theme string) error
	Export(ctx context.Context, publicID, secret string) (string, error)
}

type HTTPServer struct {
	address       string
	presentations presentationService
	logger        logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, ps presentationService) *HTTPServer {
	return &HTTPServer{
		address:       a,
		presentations: ps,
		logger:        l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then shuts down and waits for
// in-flight requests up to shutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
