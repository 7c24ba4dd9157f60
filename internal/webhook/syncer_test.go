package webhook

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	mu    sync.Mutex
	calls []call
	out   map[string][]byte
	errs  map[string]error
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	return f.out[name], f.errs[name]
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, strings.TrimSpace(c.name+" "+strings.Join(c.args, " ")))
	}
	return out
}

func TestGitSyncerRunsPullThenChmod(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{out: map[string][]byte{"git": []byte("Already up to date.\n")}}
	syncer := NewGitSyncer(SyncerConfig{RepoDir: "/srv/movies", Executable: "moviecatalog"}, runner, nil)

	out, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Already up to date.\n", string(out))
	require.Equal(t, []string{"git pull", "chmod a+x moviecatalog"}, runner.commands())
	require.Equal(t, "/srv/movies", runner.calls[0].dir)
}

func TestGitSyncerPullFailureStillRunsChmod(t *testing.T) {
	t.Parallel()

	pullErr := errors.New("exit status 128")
	runner := &fakeRunner{
		out:  map[string][]byte{"git": []byte("fatal: not a git repository")},
		errs: map[string]error{"git": pullErr},
	}
	syncer := NewGitSyncer(SyncerConfig{Executable: "moviecatalog"}, runner, nil)

	out, err := syncer.Sync(context.Background())
	require.ErrorIs(t, err, pullErr)
	require.Equal(t, "fatal: not a git repository", string(out))
	require.Equal(t, []string{"git pull", "chmod a+x moviecatalog"}, runner.commands())
	require.Equal(t, ".", runner.calls[0].dir)
}

func TestGitSyncerJoinsBothFailures(t *testing.T) {
	t.Parallel()

	pullErr, chmodErr := errors.New("exit status 1"), errors.New("no such file")
	runner := &fakeRunner{errs: map[string]error{"git": pullErr, "chmod": chmodErr}}
	syncer := NewGitSyncer(SyncerConfig{Executable: "missing"}, runner, nil)

	_, err := syncer.Sync(context.Background())
	require.ErrorIs(t, err, pullErr)
	require.ErrorIs(t, err, chmodErr)
	require.Len(t, runner.commands(), 2)
}

func TestGitSyncerChmodFailureKeepsPullOutput(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{
		out:  map[string][]byte{"git": []byte("Fast-forward")},
		errs: map[string]error{"chmod": errors.New("no such file")},
	}
	syncer := NewGitSyncer(SyncerConfig{Executable: "missing"}, runner, nil)

	out, err := syncer.Sync(context.Background())
	require.Error(t, err)
	require.Equal(t, "Fast-forward", string(out))
}

func TestGitSyncerThrottles(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	syncer := NewGitSyncer(SyncerConfig{MinInterval: time.Hour}, runner, nil)

	_, err := syncer.Sync(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = syncer.Sync(ctx)
	require.ErrorIs(t, err, ErrThrottled)
	require.Len(t, runner.commands(), 1)
}
