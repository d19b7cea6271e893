// Package annotate wraps the linkify engine for the CLI and HTTP surfaces.
package annotate

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"git.home.luguber.info/inful/reportlink/internal/linkify"
)

// Service streams text through a linkify engine.
type Service struct {
	engine *linkify.Engine
}

// NewService creates an annotation service around an engine.
func NewService(engine *linkify.Engine) *Service {
	return &Service{engine: engine}
}

// AnnotateString annotates a complete text.
func (s *Service) AnnotateString(ctx context.Context, text string) string {
	return s.engine.Annotate(ctx, text)
}

// AnnotateReader streams r to w line by line, annotating each line. Line
// boundaries and a missing trailing newline are preserved exactly, so piping
// tool output through the service only ever inserts anchors.
func (s *Service) AnnotateReader(ctx context.Context, r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := reader.ReadString('\n')
		if line != "" {
			if _, werr := writer.WriteString(s.engine.Annotate(ctx, line)); werr != nil {
				return fmt.Errorf("write annotated line: %w", werr)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush annotated output: %w", err)
	}
	return nil
}
