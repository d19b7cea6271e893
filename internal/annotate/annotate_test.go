package annotate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/linkify"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

func newService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.py"), []byte("print()\n"), 0o644))

	tree := projecttree.NewFSTree(root)
	engine := linkify.NewEngine(
		linkify.NewResolver(tree, buildfile.NewFSFinder(tree.Root())),
		linkify.NewMemoryCache(),
	)
	return NewService(engine), root
}

func TestAnnotateReader_PreservesLineStructure(t *testing.T) {
	svc, _ := newService(t)

	input := "building src/main.py\nno links here\nlast line without newline"
	var out bytes.Buffer
	require.NoError(t, svc.AnnotateReader(context.Background(), strings.NewReader(input), &out))

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], `href="/browse/src/main.py"`)
	require.Equal(t, "no links here", lines[1])
	require.Equal(t, "last line without newline", lines[2])
	require.False(t, strings.HasSuffix(out.String(), "\n"))
}

func TestAnnotateReader_EmptyInput(t *testing.T) {
	svc, _ := newService(t)
	var out bytes.Buffer
	require.NoError(t, svc.AnnotateReader(context.Background(), strings.NewReader(""), &out))
	require.Empty(t, out.String())
}

func TestAnnotateReader_CanceledContext(t *testing.T) {
	svc, _ := newService(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := svc.AnnotateReader(ctx, strings.NewReader("src/main.py\n"), &out)
	require.ErrorIs(t, err, context.Canceled)
}

func TestAnchors_RecoverEmittedAnchors(t *testing.T) {
	svc, _ := newService(t)

	annotated := svc.AnnotateString(context.Background(), "ok src/main.py and missing/x.txt")
	anchors, err := Anchors(annotated)
	require.NoError(t, err)
	require.Len(t, anchors, 1)
	require.Equal(t, "/browse/src/main.py", anchors[0].Href)
	require.Equal(t, "src/main.py", anchors[0].Text)
}

func TestAnchors_NoneInPlainText(t *testing.T) {
	anchors, err := Anchors("nothing to see here")
	require.NoError(t, err)
	require.Empty(t, anchors)
}
