package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type recordingInvalidator struct {
	mu       sync.Mutex
	prefixes []string
}

func (r *recordingInvalidator) Invalidate(prefix string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefixes = append(r.prefixes, prefix)
}

func (r *recordingInvalidator) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prefixes...)
}

func TestWatcher_InvalidatesChangedPrefix(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	inv := &recordingInvalidator{}
	w, err := New(root, inv, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "new.py"), []byte("x"), 0o644))

	require.Eventually(t, func() bool {
		for _, p := range inv.seen() {
			if p == "src" {
				return true
			}
		}
		return false
	}, 5*time.Second, 20*time.Millisecond)
}

func TestPrefixFor(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, &recordingInvalidator{}, nil)
	require.NoError(t, err)
	defer w.watcher.Close()

	prefix, ok := w.prefixFor(filepath.Join(root, "src", "deep", "file.py"))
	require.True(t, ok)
	require.Equal(t, "src", prefix)

	prefix, ok = w.prefixFor(filepath.Join(root, "top.txt"))
	require.True(t, ok)
	require.Equal(t, "top.txt", prefix)

	_, ok = w.prefixFor(filepath.Dir(root))
	require.False(t, ok)

	_, ok = w.prefixFor(root)
	require.False(t, ok)
}
