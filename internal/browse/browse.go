// Package browse serves project file content under the link prefix.
package browse

import (
	"fmt"
	"html"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/reportlink/internal/metrics"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

// Handler serves files from the project root. Markdown files are rendered to
// HTML; everything else is served as plain text. Paths escaping the root are
// refused with 404, matching the engine's "unresolvable means nothing" stance.
type Handler struct {
	tree     projecttree.Tree
	prefix   string
	md       goldmark.Markdown
	recorder metrics.Recorder
}

// NewHandler creates a browse handler for the given tree and link prefix.
func NewHandler(tree projecttree.Tree, prefix string) *Handler {
	return &Handler{
		tree:     tree,
		prefix:   strings.TrimSuffix(prefix, "/"),
		md:       goldmark.New(),
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (h *Handler) WithRecorder(r metrics.Recorder) *Handler {
	if r != nil {
		h.recorder = r
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.serve(w, r)
	h.recorder.ObserveBrowseRequest(status)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request) int {
	rel, ok := h.relPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return http.StatusNotFound
	}

	if h.tree.IsDir(rel) {
		return h.serveListing(w, rel)
	}
	if !h.tree.Exists(rel) {
		http.NotFound(w, r)
		return http.StatusNotFound
	}

	data, err := os.ReadFile(filepath.Join(h.tree.Root(), rel))
	if err != nil {
		http.NotFound(w, r)
		return http.StatusNotFound
	}

	if strings.EqualFold(path.Ext(rel), ".md") {
		return h.serveMarkdown(w, rel, data)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write(data)
	return http.StatusOK
}

// relPath maps a request path to a root-relative path, refusing escapes.
func (h *Handler) relPath(urlPath string) (string, bool) {
	if !strings.HasPrefix(urlPath, h.prefix) {
		return "", false
	}
	rel := strings.TrimPrefix(urlPath, h.prefix)
	cleaned := path.Clean("/" + rel)
	if cleaned == "/" {
		return ".", true
	}
	rel = strings.TrimPrefix(cleaned, "/")
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return rel, true
}

func (h *Handler) serveMarkdown(w http.ResponseWriter, rel string, data []byte) int {
	var body strings.Builder
	if err := h.md.Convert(data, &body); err != nil {
		// Fall back to the raw bytes rather than failing the request.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(data)
		return http.StatusOK
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body>\n%s</body></html>\n",
		html.EscapeString(rel), body.String())
	return http.StatusOK
}

func (h *Handler) serveListing(w http.ResponseWriter, rel string) int {
	entries, err := os.ReadDir(filepath.Join(h.tree.Root(), rel))
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return http.StatusNotFound
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><title>%s</title></head><body><ul>\n", html.EscapeString(rel))
	for _, entry := range entries {
		name := entry.Name()
		href := h.prefix + "/" + path.Join(rel, name)
		if rel == "." {
			href = h.prefix + "/" + name
		}
		label := name
		if entry.IsDir() {
			label += "/"
		}
		fmt.Fprintf(w, "<li><a href=\"%s\">%s</a></li>\n", html.EscapeString(href), html.EscapeString(label))
	}
	fmt.Fprint(w, "</ul></body></html>\n")
	return http.StatusOK
}
