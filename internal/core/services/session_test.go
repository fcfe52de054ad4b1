package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supportbot/internal/adapters/driven/embedding/local"
	"github.com/custodia-labs/supportbot/internal/adapters/driven/knowledge"
	"github.com/custodia-labs/supportbot/internal/core/domain"
)

func builtinDeps(t *testing.T) SessionDeps {
	t.Helper()
	kb, err := knowledge.Default()
	require.NoError(t, err)
	return SessionDeps{
		KnowledgeBase: kb,
		Embedder:      local.NewEmbeddingService(local.Config{}),
		Settings:      domain.DefaultAppSettings(),
	}
}

func TestBuildSession(t *testing.T) {
	s := builtinSession(t, nil)

	assert.NotEmpty(t, s.ID())
	assert.False(t, s.ExternalEnabled())
	assert.Len(t, s.Entries(), 5)
	assert.NotEmpty(t, s.Examples())
	assert.Empty(t, s.History())
}

func TestBuildSession_InvalidKnowledgeBase(t *testing.T) {
	deps := builtinDeps(t)
	deps.KnowledgeBase = &domain.KnowledgeBase{}

	_, err := BuildSession(context.Background(), deps)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestBuildSession_EmbedderFailure(t *testing.T) {
	deps := builtinDeps(t)
	deps.Embedder = &mockEmbedder{batchErr: domain.ErrEmbeddingUnavailable}

	_, err := BuildSession(context.Background(), deps)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestBuildSession_WithoutEmbedder(t *testing.T) {
	deps := builtinDeps(t)
	deps.Embedder = nil

	s, err := BuildSession(context.Background(), deps)
	require.NoError(t, err)

	resp := s.Respond(context.Background(), "What does EVA do?")
	assert.Equal(t, domain.SourceGeneric, resp.Source)
}

func TestBuildSession_UniqueIDs(t *testing.T) {
	a := builtinSession(t, nil)
	b := builtinSession(t, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSession_SessionsDoNotShareRotation(t *testing.T) {
	a := builtinSession(t, nil)
	b := builtinSession(t, nil)

	first := a.Respond(context.Background(), "hi")
	a.Respond(context.Background(), "hi")
	other := b.Respond(context.Background(), "hi")

	assert.Equal(t, first.Text, other.Text)
}

func TestSession_RecordsHistory(t *testing.T) {
	s := builtinSession(t, nil)
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	resp := s.Respond(context.Background(), "What is CAM?")

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "What is CAM?", history[0].Query)
	assert.Equal(t, resp, history[0].Response)
	assert.Equal(t, fixed, history[0].At)
}

func TestSession_HistoryIsACopy(t *testing.T) {
	s := builtinSession(t, nil)
	s.Respond(context.Background(), "hi")

	history := s.History()
	history[0].Query = "changed"

	assert.Equal(t, "hi", s.History()[0].Query)
}

func TestSession_Summary(t *testing.T) {
	s := builtinSession(t, nil)
	s.Respond(context.Background(), "hi")
	s.Respond(context.Background(), "What does EVA do?")
	s.Respond(context.Background(), "thanks")

	all := s.Summary(0)
	require.Len(t, all, 6)
	assert.Equal(t, "Q: hi", all[0])
	assert.True(t, strings.HasPrefix(all[1], "A: "))

	last := s.Summary(5)
	require.Len(t, last, 5)
	assert.Equal(t, all[1:], last)

	// Long answers are truncated.
	assert.Equal(t, "Q: What does EVA do?", all[2])
	assert.True(t, strings.HasSuffix(all[3], "..."))
	assert.LessOrEqual(t, len([]rune(all[3])), len("A: ")+summaryAnswerLength+len("..."))
}

func TestSession_SummaryEmpty(t *testing.T) {
	s := builtinSession(t, nil)
	assert.Empty(t, s.Summary(5))
}

func TestSession_ConcurrentRespond(t *testing.T) {
	s := builtinSession(t, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp := s.Respond(context.Background(), "What is PHIL?")
			assert.NotEmpty(t, resp.Text)
		}()
	}
	wg.Wait()

	assert.Len(t, s.History(), 10)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
	assert.Equal(t, "héllo...", truncate("héllo wörld", 5))
}
