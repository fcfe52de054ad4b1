// Package local provides an offline embedding service based on feature hashing.
//
// Each text is normalised, stripped of question scaffolding ("what", "is",
// "tell me about") and projected into a fixed-size vector from three feature
// families: whole words, adjacent word pairs and character trigrams. The
// projection is deterministic so identical text always yields an identical
// vector, which makes matching reproducible without a network dependency.
package local

import (
	"context"
	"errors"
	"hash/fnv"
	"math"
	"strings"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

const (
	// DefaultModel is the only model this service implements.
	DefaultModel = "hashing-v1"

	wordWeight    = 1.0
	bigramWeight  = 0.5
	trigramWeight = 0.35
)

// stopwords carry no topical signal in support questions.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "be": {},
	"do": {}, "does": {}, "did": {}, "what": {}, "whats": {}, "how": {},
	"me": {}, "about": {}, "tell": {}, "explain": {}, "please": {},
	"of": {}, "to": {}, "for": {}, "in": {}, "on": {}, "and": {}, "or": {},
	"you": {}, "your": {}, "i": {}, "it": {}, "its": {}, "can": {}, "could": {},
	"would": {}, "this": {}, "that": {},
}

// Config holds configuration for the local embedding service.
type Config struct {
	// Dimensions is the vector size. Defaults to domain.DefaultLocalDimensions.
	Dimensions int
}

// EmbeddingService implements driven.EmbeddingService with feature hashing.
type EmbeddingService struct {
	dimensions int
}

// NewEmbeddingService creates a new local embedding service.
func NewEmbeddingService(cfg Config) *EmbeddingService {
	dims := cfg.Dimensions
	if dims <= 0 {
		dims = domain.DefaultLocalDimensions
	}
	return &EmbeddingService{dimensions: dims}
}

// Embed generates a vector for a single text. Text without any usable
// tokens yields a zero vector.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float64, s.dimensions)
	for _, f := range features(text) {
		idx, sign := s.bucket(f.key)
		vec[idx] += sign * f.weight
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, s.dimensions)
	if norm == 0 {
		return out, nil
	}
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// EmbedBatch generates vectors for multiple texts.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the model identifier.
func (s *EmbeddingService) ModelName() string {
	return DefaultModel
}

// Ping always succeeds; there is nothing to reach.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if s.dimensions <= 0 {
		return errors.New("local embedder has no dimensions")
	}
	return ctx.Err()
}

// Close is a no-op.
func (s *EmbeddingService) Close() error {
	return nil
}

// bucket maps a feature key to a vector index and a sign.
// The sign bit comes from the high end of the hash so collisions between
// unrelated features tend to cancel rather than accumulate.
func (s *EmbeddingService) bucket(key string) (int, float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	sum := h.Sum64()
	idx := int(sum % uint64(s.dimensions))
	if sum>>63 == 1 {
		return idx, -1
	}
	return idx, 1
}

type feature struct {
	key    string
	weight float64
}

// features extracts the weighted hashing features for text.
func features(text string) []feature {
	tokens := contentTokens(text)
	if len(tokens) == 0 {
		return nil
	}

	out := make([]feature, 0, len(tokens)*6)
	for i, tok := range tokens {
		out = append(out, feature{key: "w:" + tok, weight: wordWeight})
		if i > 0 {
			out = append(out, feature{key: "b:" + tokens[i-1] + " " + tok, weight: bigramWeight})
		}
		for _, tri := range trigrams(tok) {
			out = append(out, feature{key: "c:" + tri, weight: trigramWeight})
		}
	}
	return out
}

// contentTokens drops stopwords. If nothing is left the full token list is
// kept so short scaffold-only input still embeds to something.
func contentTokens(text string) []string {
	all := domain.Tokens(text)
	kept := make([]string, 0, len(all))
	for _, t := range all {
		if _, stop := stopwords[t]; !stop {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return all
	}
	return kept
}

// trigrams returns the character trigrams of a token with ^ and $ boundary markers.
func trigrams(token string) []string {
	runes := []rune("^" + token + "$")
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, strings.ToLower(string(runes[i:i+3])))
	}
	return out
}
