package api

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/moviecatalog/internal/metrics"
	"github.com/JakeFAU/moviecatalog/internal/webhook"
)

const maxWebhookBody = 1 << 20

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		metrics.ObserveWebhookSync("error")
		http.Error(w, "unreadable body", http.StatusBadRequest)
		return
	}
	if err := webhook.VerifySignature([]byte(s.cfg.Webhook.Secret), body, r.Header.Get(webhook.SignatureHeader)); err != nil {
		metrics.ObserveWebhookSync("unauthorized")
		logger.Warn("webhook signature rejected", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	out, err := s.syncer.Sync(r.Context())
	switch {
	case errors.Is(err, webhook.ErrThrottled):
		metrics.ObserveWebhookSync("throttled")
		http.Error(w, "sync throttled", http.StatusTooManyRequests)
		return
	case err != nil:
		metrics.ObserveWebhookSync("error")
		logger.Error("webhook sync failed", zap.Error(err))
	default:
		metrics.ObserveWebhookSync("ok")
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("output: " + string(out)))
}
