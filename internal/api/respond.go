package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/moviecatalog/internal/catalog"
	"github.com/JakeFAU/moviecatalog/internal/views"
)

// statusFor maps a handler error onto the page status and the message shown
// to the user.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, catalog.ErrBadRequest):
		return http.StatusBadRequest, "Bad request: the form is missing fields."
	case errors.Is(err, catalog.ErrMalformedID), errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, "Not found."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusFor(err)
	logger := s.requestLogger(r).With(zap.String("path", r.URL.Path), zap.Int("status", status))
	data := views.ErrorData{Status: status, Message: message}
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		if s.cfg.Development() {
			data.Detail = err.Error()
		}
	} else {
		logger.Debug("request rejected", zap.Error(err))
	}
	s.render(w, r, status, views.PageError, data)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.views.Render(&buf, page, data); err != nil {
		s.requestLogger(r).Error("render page failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "Internal server error.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
