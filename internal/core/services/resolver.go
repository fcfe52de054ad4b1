package services

import (
	"context"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// Stage names, in evaluation order.
const (
	StageIntent   = "intent"
	StageSemantic = "semantic"
	StageExternal = "external"
	StageGeneric  = "generic"
)

// Classifier labels input with an intent.
type Classifier interface {
	Classify(text string) (domain.Intent, bool)
}

// SemanticMatcher finds the closest predefined entry.
type SemanticMatcher interface {
	Match(ctx context.Context, query string) (domain.MatchResult, error)
}

// stage is one step of the pipeline. It reports false to defer to the next stage.
type stage struct {
	name string
	run  func(ctx context.Context, query string) (domain.Response, bool)
}

// Resolver answers a query by trying each stage in a fixed order:
// intent, semantic, external, generic. The generic stage always answers,
// so Respond never fails.
type Resolver struct {
	classifier Classifier
	matcher    SemanticMatcher
	fallback   FallbackGenerator
	pools      domain.ResponsePool
	rotator    *Rotator
	stages     []stage
}

// NewResolver wires the pipeline. matcher and fallback may be nil; a nil
// stage is skipped. rotator must belong to the calling session.
func NewResolver(
	classifier Classifier,
	matcher SemanticMatcher,
	fallback FallbackGenerator,
	pools domain.ResponsePool,
	rotator *Rotator,
) *Resolver {
	if rotator == nil {
		rotator = NewRotator(domain.RotationRoundRobin)
	}
	r := &Resolver{
		classifier: classifier,
		matcher:    matcher,
		fallback:   fallback,
		pools:      pools,
		rotator:    rotator,
	}
	r.stages = []stage{
		{name: StageIntent, run: r.intentStage},
		{name: StageSemantic, run: r.semanticStage},
		{name: StageExternal, run: r.externalStage},
		{name: StageGeneric, run: r.genericStage},
	}
	return r
}

// Stages returns the stage names in evaluation order.
func (r *Resolver) Stages() []string {
	names := make([]string, len(r.stages))
	for i, s := range r.stages {
		names[i] = s.name
	}
	return names
}

// ExternalEnabled reports whether the external stage can run.
func (r *Resolver) ExternalEnabled() bool {
	return r.fallback != nil
}

// Respond produces exactly one response for query.
func (r *Resolver) Respond(ctx context.Context, query string) domain.Response {
	logger.Section("Turn")
	for _, s := range r.stages {
		if resp, ok := s.run(ctx, query); ok {
			logger.Stage(s.name, "answered (source=%s confidence=%.2f)", resp.Source, resp.Confidence)
			return resp
		}
	}
	// The generic stage always answers; reaching here means the pools are empty.
	return domain.Response{
		Text:       "I'm not sure how to help with that.",
		Source:     domain.SourceGeneric,
		Intent:     domain.IntentUnknown,
		Confidence: domain.FallbackConfidence,
	}
}

func (r *Resolver) intentStage(_ context.Context, query string) (domain.Response, bool) {
	if r.classifier == nil {
		return domain.Response{}, false
	}
	intent, ok := r.classifier.Classify(query)
	if !ok {
		return domain.Response{}, false
	}
	text := r.rotator.Next(intent, r.pools.Responses(intent))
	if text == "" {
		logger.Warn("intent %s has no replies", intent)
		return domain.Response{}, false
	}
	return domain.Response{
		Text:       text,
		Source:     domain.SourceIntent,
		Intent:     intent,
		Confidence: domain.IntentConfidence,
	}, true
}

func (r *Resolver) semanticStage(ctx context.Context, query string) (domain.Response, bool) {
	if r.matcher == nil {
		return domain.Response{}, false
	}
	result, err := r.matcher.Match(ctx, query)
	if err != nil {
		logger.Stage(StageSemantic, "no match: %v", err)
		return domain.Response{}, false
	}
	if result.Entry == nil {
		return domain.Response{}, false
	}
	logger.Stage(StageSemantic, "best %s score=%.3f facet=%t phrasing=%q",
		result.Entry.ID, result.Score, result.ViaFacet, result.Phrasing)
	if !result.Accepted {
		return domain.Response{}, false
	}
	return domain.Response{
		Text:       result.Entry.Answer,
		Source:     domain.SourcePredefined,
		Confidence: clampConfidence(result.Score),
		EntryID:    result.Entry.ID,
	}, true
}

func (r *Resolver) externalStage(ctx context.Context, query string) (domain.Response, bool) {
	if r.fallback == nil {
		return domain.Response{}, false
	}
	gen := r.fallback.Generate(ctx, query)
	if !gen.OK() {
		logger.Debug("external fallback unavailable: %v", gen.Err)
		return domain.Response{}, false
	}
	return domain.Response{
		Text:       gen.Text,
		Source:     domain.SourceExternal,
		Confidence: domain.FallbackConfidence,
	}, true
}

func (r *Resolver) genericStage(_ context.Context, _ string) (domain.Response, bool) {
	text := r.rotator.Next(domain.IntentUnknown, r.pools.Responses(domain.IntentUnknown))
	if text == "" {
		return domain.Response{}, false
	}
	return domain.Response{
		Text:       text,
		Source:     domain.SourceGeneric,
		Intent:     domain.IntentUnknown,
		Confidence: domain.FallbackConfidence,
	}, true
}

func clampConfidence(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
