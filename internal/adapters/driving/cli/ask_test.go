package cli

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "ask")
	assert.Error(t, err)
}

func TestAskCmd_PrintsAnswerAndFooter(t *testing.T) {
	agent, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "", "ask", "What does EVA do?")

	require.NoError(t, err)
	assert.Contains(t, out, "EVA automates eligibility verification.")
	assert.Contains(t, out, "Predefined answer (confidence: 0.92)")
	assert.Len(t, agent.turns, 1)
}

func TestAskCmd_JoinsWords(t *testing.T) {
	agent, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "", "ask", "What", "does", "EVA", "do?")

	require.NoError(t, err)
	require.Len(t, agent.turns, 1)
	assert.Equal(t, "What does EVA do?", agent.turns[0].Query)
}

func TestAskCmd_JSONOutput(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer func() { askJSON = false }()

	out, err := execute(t, "", "ask", "--json", "hi")
	require.NoError(t, err)

	var got domain.Response
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.SourceIntent, got.Source)
	assert.Equal(t, domain.IntentGreeting, got.Intent)
	assert.InDelta(t, 1.0, got.Confidence, 1e-9)
	assert.Contains(t, out, `"source": "intent"`)
}

func TestAskCmd_AgentNotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	newAgent = nil

	_, err := execute(t, "", "ask", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "support agent not configured")
}

// captureStdout runs fn with os.Stdout redirected and returns what was written.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stdout
	os.Stdout = w
	useStandardStreams()
	defer func() {
		os.Stdout = orig
		useStandardStreams()
	}()

	fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestAskCmd_JSONWritesToStdout(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	defer func() { askJSON = false }()

	var runErr error
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"ask", "--json", "What does EVA do?"})
		defer rootCmd.SetArgs(nil)
		runErr = rootCmd.Execute()
	})

	require.NoError(t, runErr)
	var got domain.Response
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, domain.SourcePredefined, got.Source)
	assert.Equal(t, "eva", got.EntryID)
}

func TestExamplesCmd_WritesToStdout(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	var runErr error
	out := captureStdout(t, func() {
		rootCmd.SetArgs([]string{"examples"})
		defer rootCmd.SetArgs(nil)
		runErr = rootCmd.Execute()
	})

	require.NoError(t, runErr)
	assert.Contains(t, out, "What does EVA do?")
}
