package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/supportbot/internal/core/domain"
	"github.com/custodia-labs/supportbot/internal/core/ports/driven"
	"github.com/custodia-labs/supportbot/internal/core/ports/driving"
	"github.com/custodia-labs/supportbot/internal/logger"
)

// Verify interface compliance.
var _ driving.SupportAgent = (*Session)(nil)

// summaryAnswerLength caps how much of each answer appears in a summary.
const summaryAnswerLength = 50

// Session is one conversation. It owns its rotation cursors and history.
type Session struct {
	id       string
	kb       *domain.KnowledgeBase
	resolver *Resolver
	now      func() time.Time

	mu      sync.Mutex
	history []domain.ConversationTurn
}

// NewSession creates a session over a resolver.
func NewSession(kb *domain.KnowledgeBase, resolver *Resolver) *Session {
	return &Session{
		id:       uuid.New().String(),
		kb:       kb,
		resolver: resolver,
		now:      time.Now,
	}
}

// SessionDeps holds the collaborators needed to build a Session.
type SessionDeps struct {
	KnowledgeBase *domain.KnowledgeBase
	Embedder      driven.EmbeddingService
	LLM           driven.LLMService
	Prompts       driven.PromptStore
	Settings      domain.AppSettings
}

// BuildSession validates the knowledge base, prepares the matcher and wires
// a fresh resolver with its own rotator. A nil LLM disables the external stage.
func BuildSession(ctx context.Context, deps SessionDeps) (*Session, error) {
	if err := deps.KnowledgeBase.Validate(); err != nil {
		return nil, err
	}

	var matcher SemanticMatcher
	if deps.Embedder != nil {
		m := NewMatcher(deps.Embedder, deps.KnowledgeBase.Entries, deps.Settings.Match)
		if err := m.Prepare(ctx); err != nil {
			return nil, fmt.Errorf("prepare matcher: %w", err)
		}
		matcher = m
	} else {
		logger.Warn("no embedding service, semantic stage disabled")
	}

	var fallback FallbackGenerator
	if deps.LLM != nil {
		fallback = NewGeneratorService(deps.LLM, deps.Prompts, GeneratorConfigFromSettings(deps.Settings.Fallback))
	}

	resolver := NewResolver(
		NewIntentClassifier(deps.KnowledgeBase.Rules),
		matcher,
		fallback,
		deps.KnowledgeBase.Pools,
		NewRotator(deps.Settings.Rotation.Mode),
	)
	return NewSession(deps.KnowledgeBase, resolver), nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Respond resolves query and records the turn.
func (s *Session) Respond(ctx context.Context, query string) domain.Response {
	resp := s.resolver.Respond(ctx, query)

	s.mu.Lock()
	s.history = append(s.history, domain.ConversationTurn{
		Query:    query,
		Response: resp,
		At:       s.now(),
	})
	s.mu.Unlock()

	return resp
}

// History returns a copy of the turns so far.
func (s *Session) History() []domain.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Summary returns the last n lines of the transcript, two lines per turn:
// "Q: <query>" and "A: <answer prefix>...". n <= 0 returns every line.
func (s *Session) Summary(n int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, 2*len(s.history))
	for _, turn := range s.history {
		lines = append(lines,
			"Q: "+turn.Query,
			"A: "+truncate(turn.Response.Text, summaryAnswerLength),
		)
	}
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// ExternalEnabled reports whether the external fallback is configured.
func (s *Session) ExternalEnabled() bool {
	return s.resolver.ExternalEnabled()
}

// Examples returns sample questions.
func (s *Session) Examples() []string {
	if s.kb == nil {
		return nil
	}
	return s.kb.Examples
}

// Entries returns the predefined entries.
func (s *Session) Entries() []domain.QAEntry {
	if s.kb == nil {
		return nil
	}
	return s.kb.Entries
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
