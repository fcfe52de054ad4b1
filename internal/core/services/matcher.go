package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// facetMinSharedWords is the number of facet words a query must share
// with a multi-word facet when the facet does not occur as a phrase.
const facetMinSharedWords = 2

// preparedEntry holds the cached vectors and facet tokens for one entry.
type preparedEntry struct {
	entry     *domain.QAEntry
	phrasings []string
	vectors   [][]float32
	facets    [][]string
}

// Matcher scores a query against every knowledge base entry by embedding
// similarity and accepts the best entry if it clears the threshold.
type Matcher struct {
	embedder    driven.EmbeddingService
	entries     []domain.QAEntry
	threshold   float64
	aggregation domain.Aggregation

	mu       sync.RWMutex
	prepared []preparedEntry
}

// NewMatcher creates a matcher. Zero settings fall back to the defaults.
func NewMatcher(embedder driven.EmbeddingService, entries []domain.QAEntry, settings domain.MatchSettings) *Matcher {
	threshold := settings.Threshold
	if threshold <= 0 || threshold > 1 {
		threshold = domain.DefaultThreshold
	}
	aggregation := settings.Aggregation
	if !aggregation.IsValid() {
		aggregation = domain.AggregationMax
	}
	return &Matcher{
		embedder:    embedder,
		entries:     entries,
		threshold:   threshold,
		aggregation: aggregation,
	}
}

// Threshold returns the acceptance threshold in use.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// Aggregation returns the aggregation policy in use.
func (m *Matcher) Aggregation() domain.Aggregation {
	return m.aggregation
}

// Prepare embeds every phrasing of every entry in one batch and caches the vectors.
// Calling Prepare again replaces the cache.
func (m *Matcher) Prepare(ctx context.Context) error {
	if m.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	var texts []string
	prepared := make([]preparedEntry, len(m.entries))
	for i := range m.entries {
		e := &m.entries[i]
		pe := preparedEntry{entry: e, phrasings: e.Phrasings()}
		for _, f := range e.Facets {
			if tokens := domain.Tokens(f); len(tokens) > 0 {
				pe.facets = append(pe.facets, tokens)
			}
		}
		for _, p := range pe.phrasings {
			texts = append(texts, domain.Normalise(p))
		}
		prepared[i] = pe
	}

	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed knowledge base: %w", err)
	}
	if len(vectors) != len(texts) {
		return fmt.Errorf("embed knowledge base: got %d vectors for %d phrasings: %w",
			len(vectors), len(texts), domain.ErrEmbeddingUnavailable)
	}

	next := 0
	for i := range prepared {
		n := len(prepared[i].phrasings)
		prepared[i].vectors = vectors[next : next+n]
		next += n
	}

	m.mu.Lock()
	m.prepared = prepared
	m.mu.Unlock()

	logger.Debug("matcher prepared %d entries, %d phrasings (model=%s)",
		len(prepared), len(texts), m.embedder.ModelName())
	return nil
}

// Match returns the best-scoring entry for query. The result is accepted
// when the score clears the threshold. A facet hit lifts the entry's score
// to at least domain.FacetConfidence. Embedding failures are returned so the
// caller can treat them as no match.
func (m *Matcher) Match(ctx context.Context, query string) (domain.MatchResult, error) {
	m.mu.RLock()
	ready := m.prepared != nil
	m.mu.RUnlock()
	if !ready {
		if err := m.Prepare(ctx); err != nil {
			return domain.MatchResult{}, err
		}
	}

	normalised := domain.Normalise(query)
	if normalised == "" {
		return domain.MatchResult{}, nil
	}

	vec, err := m.embedder.Embed(ctx, normalised)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("embed query: %w", err)
	}
	tokens := strings.Fields(normalised)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var best domain.MatchResult
	found := false
	for i := range m.prepared {
		pe := &m.prepared[i]
		score, phrasing := m.score(vec, pe)
		viaFacet := false
		if score < domain.FacetConfidence && facetHit(tokens, pe.facets) {
			score = domain.FacetConfidence
			viaFacet = true
		}
		// Strictly greater keeps the first declared entry on ties.
		if !found || score > best.Score {
			best = domain.MatchResult{
				Entry:    pe.entry,
				Score:    score,
				Phrasing: phrasing,
				ViaFacet: viaFacet,
			}
			found = true
		}
	}

	best.Accepted = found && best.Score >= m.threshold
	return best, nil
}

// score aggregates the similarity of vec against every phrasing of an entry.
func (m *Matcher) score(vec []float32, pe *preparedEntry) (float64, string) {
	var (
		bestScore    float64
		bestPhrasing string
		sum          float64
	)
	for j, pv := range pe.vectors {
		s, err := CosineSimilarity(vec, pv)
		if err != nil {
			logger.Warn("entry %s phrasing %d: %v", pe.entry.ID, j, err)
		}
		sum += s
		if j == 0 || s > bestScore {
			bestScore = s
			bestPhrasing = pe.phrasings[j]
		}
	}
	if len(pe.vectors) == 0 {
		return 0, ""
	}

	if m.aggregation == domain.AggregationMean {
		return sum / float64(len(pe.vectors)), bestPhrasing
	}
	return bestScore, bestPhrasing
}

// facetHit reports whether any facet occurs in tokens as a phrase, or shares
// at least facetMinSharedWords distinct words with them.
func facetHit(tokens []string, facets [][]string) bool {
	if len(facets) == 0 {
		return false
	}
	present := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		present[t] = struct{}{}
	}
	for _, facet := range facets {
		if domain.ContainsPhrase(tokens, facet) {
			return true
		}
		if len(facet) < facetMinSharedWords {
			continue
		}
		shared := 0
		seen := make(map[string]struct{}, len(facet))
		for _, w := range facet {
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := present[w]; ok {
				shared++
			}
		}
		if shared >= facetMinSharedWords {
			return true
		}
	}
	return false
}

// CosineSimilarity returns the cosine of the angle between a and b, clamped to [-1, 1].
// A zero-norm vector scores 0. Vectors of different length score 0 with
// domain.ErrDimensionMismatch.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, s)), nil
}
