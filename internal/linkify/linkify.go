// Package linkify augments free-form tool output by heuristically finding URL
// and file references and turning resolvable ones into links.
//
// The engine is best-effort by contract: anything it cannot classify stays in
// the output byte-for-byte, and no input can make an annotate call fail.
package linkify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/reportlink/internal/buildfile"
	"git.home.luguber.info/inful/reportlink/internal/foundation"
	"git.home.luguber.info/inful/reportlink/internal/logfields"
	"git.home.luguber.info/inful/reportlink/internal/metrics"
	"git.home.luguber.info/inful/reportlink/internal/projecttree"
)

// Publisher emits dead-reference events for downstream tooling. Implementations
// must not block annotate calls on transport problems.
type Publisher interface {
	PublishDeadReference(ctx context.Context, event *DeadReferenceEvent) error
}

// Engine ties the matcher, resolver and a caller-owned cache together.
type Engine struct {
	resolver  *Resolver
	cache     Cache
	recorder  metrics.Recorder
	publisher Publisher
}

// NewEngine creates an engine around a resolver and a caller-owned cache.
// Metrics default to the no-op recorder; events default to none.
func NewEngine(resolver *Resolver, cache Cache) *Engine {
	return &Engine{
		resolver: resolver,
		cache:    cache,
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder attaches a metrics recorder (fluent helper).
func (e *Engine) WithRecorder(r metrics.Recorder) *Engine {
	if r != nil {
		e.recorder = r
	}
	return e
}

// WithPublisher attaches a dead-reference event publisher (fluent helper).
func (e *Engine) WithPublisher(p Publisher) *Engine {
	e.publisher = p
	return e
}

// Annotate rewrites each resolvable reference in s into an anchor opening in a
// new tab, leaving everything else untouched. Repeated scans of similar text
// reuse the cache, so known references cost no filesystem work.
func (e *Engine) Annotate(ctx context.Context, s string) string {
	start := time.Now()
	defer func() { e.recorder.ObserveAnnotateDuration(time.Since(start)) }()

	matches := FindMatches(s)
	if len(matches) == 0 {
		return s
	}
	e.recorder.IncMatches(len(matches))

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		b.WriteString(s[last:m.Start])
		b.WriteString(e.annotated(ctx, m))
		last = m.End
	}
	b.WriteString(s[last:])
	return b.String()
}

// annotated returns the replacement text for one match: an anchor when the
// match classifies as linkable, the original text otherwise.
func (e *Engine) annotated(ctx context.Context, m Match) string {
	target, ok := e.cache.Get(m.Text)
	if ok {
		e.recorder.IncCacheHit()
	} else {
		e.recorder.IncCacheMiss()
		target = e.resolver.Classify(m.Text, m.HasScheme)
		e.cache.Put(m.Text, target)
		e.record(ctx, m, target)
	}
	if target.IsNone() {
		return m.Text
	}
	return fmt.Sprintf(`<a target="_blank" href="%s">%s</a>`, target.Unwrap(), m.Text)
}

func (e *Engine) record(ctx context.Context, m Match, target foundation.Option[string]) {
	switch {
	case m.HasScheme:
		e.recorder.IncResolution(metrics.OutcomeURL)
	case target.IsSome():
		e.recorder.IncResolution(metrics.OutcomeLinkable)
	default:
		e.recorder.IncResolution(metrics.OutcomeNotLinkable)
		if e.publisher != nil {
			event := NewDeadReferenceEvent(m.Text, e.resolver.tree.Root())
			if err := e.publisher.PublishDeadReference(ctx, event); err != nil {
				slog.Debug("Dead reference event not published", logfields.Ref(m.Text), logfields.Error(err))
			}
		}
	}
}

// Linkify is the one-shot entry point: it scans s against the project root and
// returns the annotated text, memoizing classifications in the supplied cache.
// The cache may be reused across calls to amortize filesystem lookups.
func Linkify(root string, s string, cache Cache) string {
	tree := projecttree.NewFSTree(root)
	engine := NewEngine(NewResolver(tree, buildfile.NewFSFinder(tree.Root())), cache)
	return engine.Annotate(context.Background(), s)
}
