package httpserver

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportlink/internal/annotate"
	"git.home.luguber.info/inful/reportlink/internal/browse"
	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/config"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/metrics"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.py"), []byte("print()\n"), 0o644))

	cfg := config.Default()
	cfg.Root = root
	cfg.Monitoring.Metrics.Enabled = true

	registry := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(registry)

	tree := projecttree.NewFSTree(root)
	engine := linkify.NewEngine(
		linkify.NewResolver(tree, buildfile.NewFSFinder(tree.Root())).WithLinkPrefix(cfg.Server.LinkPrefix),
		linkify.NewMemoryCache(),
	).WithRecorder(recorder)

	return New(cfg,
		annotate.NewService(engine),
		browse.NewHandler(tree, cfg.Server.LinkPrefix).WithRecorder(recorder),
		registry)
}

func TestAnnotateEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/annotate",
		strings.NewReader("compiled src/main.py and missing/x.txt")))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t,
		`compiled <a target="_blank" href="/browse/src/main.py">src/main.py</a> and missing/x.txt`,
		rec.Body.String())
}

func TestAnnotateEndpoint_NoMatchesPassesThrough(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader("plain text only")))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "plain text only", rec.Body.String())
}

func TestBrowseEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/browse/src/main.py", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "print()\n", rec.Body.String())
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok\n", rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	// Generate some activity first.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/annotate", strings.NewReader("src/main.py ok")))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "reportlink_matches_total")
}

func TestAnnotateEndpoint_RequiresPost(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/annotate", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
