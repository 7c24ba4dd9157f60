package webhook

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrThrottled is returned when the context expires before the next sync slot.
var ErrThrottled = errors.New("webhook: sync throttled")

// SyncerConfig configures GitSyncer.
type SyncerConfig struct {
	RepoDir     string
	Executable  string
	MinInterval time.Duration
}

// GitSyncer pulls the checkout and restores the executable bit. Calls are
// serialized and at most one sync starts per MinInterval.
type GitSyncer struct {
	cfg     SyncerConfig
	runner  CommandRunner
	limiter *rate.Limiter
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewGitSyncer builds a syncer. A nil runner uses ExecRunner and a nil
// logger discards output.
func NewGitSyncer(cfg SyncerConfig, runner CommandRunner, logger *zap.Logger) *GitSyncer {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RepoDir == "" {
		cfg.RepoDir = "."
	}
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &GitSyncer{
		cfg:     cfg,
		runner:  runner,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Sync runs git pull and then chmod a+x on the executable. Both commands run
// regardless of the other's outcome; their errors are joined and the pull
// output is always returned.
func (s *GitSyncer) Sync(ctx context.Context) ([]byte, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThrottled, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var errs []error
	pullOut, err := s.runner.Run(ctx, s.cfg.RepoDir, "git", "pull")
	if err != nil {
		s.logger.Error("git pull failed", zap.String("dir", s.cfg.RepoDir), zap.ByteString("output", pullOut), zap.Error(err))
		errs = append(errs, fmt.Errorf("git pull: %w", err))
	}
	if s.cfg.Executable != "" {
		chmodOut, err := s.runner.Run(ctx, s.cfg.RepoDir, "chmod", "a+x", s.cfg.Executable)
		if err != nil {
			s.logger.Error("chmod failed", zap.String("executable", s.cfg.Executable), zap.ByteString("output", chmodOut), zap.Error(err))
			errs = append(errs, fmt.Errorf("chmod executable: %w", err))
		}
	}
	if len(errs) > 0 {
		return pullOut, errors.Join(errs...)
	}
	s.logger.Info("repository synced", zap.String("dir", s.cfg.RepoDir), zap.Duration("took", time.Since(start)))
	return pullOut, nil
}
