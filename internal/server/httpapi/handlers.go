package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophslides/internal/common"
	"github.com/dmitrijs2005/gophslides/internal/server/models"
	"github.com/go-chi/chi/v5"
)

type createRequest struct {
	InitialEncryptedContent string `json:"initial_encrypted_content"`
}

type createResponse struct {
	PublicID   string `json:"public_id"`
	EditSecret string `json:"edit_secret"`
}

type secretRequest struct {
	EditSecret string `json:"edit_secret"`
}

// slideInput.Order is int32 like slide_order, so an out-of-range value is a
// malformed body rather than a database error.
type slideInput struct {
	ID      *int64 `json:"id,omitempty"`
	Content string `json:"content"`
	Order   int32  `json:"order"`
}

type updateRequest struct {
	EditSecret string       `json:"edit_secret"`
	Slides     []slideInput `json:"slides"`
	Theme      string       `json:"theme"`
}

type slideView struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Order   int    `json:"order"`
}

type presentationView struct {
	PublicID  string      `json:"public_id"`
	Theme     string      `json:"theme"`
	CreatedAt time.Time   `json:"created_at"`
	Slides    []slideView `json:"slides"`
}

func toView(p *models.Presentation) presentationView {
	v := presentationView{
		PublicID:  p.PublicID,
		Theme:     p.Theme,
		CreatedAt: p.CreatedAt,
		Slides:    make([]slideView, 0, len(p.Slides)),
	}
	for _, sl := range p.Slides {
		v.Slides = append(v.Slides, slideView{ID: sl.ID, Content: sl.Content, Order: sl.Order})
	}
	return v
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// fail maps a service error onto an HTTP status. Unexpected errors are
// logged and reported without detail.
func (s *HTTPServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "presentation not found")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusForbidden, "invalid edit secret")
	case errors.Is(err, common.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrExportDisabled):
		writeError(w, http.StatusNotImplemented, "export is disabled")
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body: %v", common.ErrInvalidArgument, err)
	}
	return nil
}

func (s *HTTPServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	res, err := s.presentations.Create(r.Context(), req.InitialEncryptedContent)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{PublicID: res.PublicID, EditSecret: res.EditSecret})
}

func (s *HTTPServer) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.presentations.Get(r.Context(), chi.URLParam(r, "publicID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toView(p))
}

func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req secretRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	ok, err := s.presentations.VerifyEditSecret(r.Context(), chi.URLParam(r, "publicID"), req.EditSecret)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

func (s *HTTPServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	slides := make([]models.SlideInput, 0, len(req.Slides))
	for _, in := range req.Slides {
		slides = append(slides, models.SlideInput{ID: in.ID, Content: in.Content, Order: int(in.Order)})
	}

	if err := s.presentations.Update(r.Context(), chi.URLParam(r, "publicID"), req.EditSecret, slides, req.Theme); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleExport(w http.ResponseWriter, r *http.Request) {
	var req secretRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	url, err := s.presentations.Export(r.Context(), chi.URLParam(r, "publicID"), req.EditSecret)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
