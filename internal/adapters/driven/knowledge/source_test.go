package knowledge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/supportbot/internal/core/domain"
)

const minimalKB = `
examples = ["What is X?"]

[[entries]]
id = "x"
question = "What is X?"
answer = "X is a thing."

[[rules]]
intent = "greeting"
words = ["hi"]

[pools]
greeting = ["Hello"]
help = ["Help"]
farewell = ["Bye"]
gratitude = ["Welcome"]
acknowledgment = ["Ok"]
confusion = ["Sorry"]
unknown = ["Unknown"]
`

func TestDefault_LoadsBuiltin(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	require.Len(t, kb.Entries, 5)
	ids := make([]string, 0, len(kb.Entries))
	for _, e := range kb.Entries {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"eva", "cam", "phil", "agents", "benefits"}, ids)
	assert.NotEmpty(t, kb.Examples)
	assert.Len(t, kb.Rules, 6)
}

func TestDefault_CanonicalAnswers(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	eva, err := kb.Entry("eva")
	require.NoError(t, err)
	assert.Equal(t, "What does the eligibility verification agent (EVA) do?", eva.Question)
	assert.Contains(t, eva.Answer, "verifying a patient's eligibility")
	assert.NotEmpty(t, eva.Variations)
	assert.NotEmpty(t, eva.Facets)
}

func TestDefault_EveryPoolHasAlternatives(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	for _, intent := range domain.AllIntents() {
		assert.GreaterOrEqual(t, len(kb.Pools.Responses(intent)), 2, "pool %s", intent)
	}
}

func TestDefault_RuleOrder(t *testing.T) {
	kb, err := Default()
	require.NoError(t, err)

	got := make([]domain.Intent, 0, len(kb.Rules))
	for _, r := range kb.Rules {
		got = append(got, r.Intent)
	}
	assert.Equal(t, []domain.Intent{
		domain.IntentHelp,
		domain.IntentGreeting,
		domain.IntentFarewell,
		domain.IntentGratitude,
		domain.IntentAcknowledgment,
		domain.IntentConfusion,
	}, got)
}

func TestSource_Origin(t *testing.T) {
	assert.Equal(t, BuiltinOrigin, NewSource("").Origin())
	assert.Equal(t, "/tmp/kb.toml", NewSource("/tmp/kb.toml").Origin())
}

func TestSource_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalKB), 0o600))

	kb, err := NewSource(path).Load()
	require.NoError(t, err)
	require.Len(t, kb.Entries, 1)
	assert.Equal(t, "x", kb.Entries[0].ID)
	assert.Equal(t, []string{"Hello"}, kb.Pools.Responses(domain.IntentGreeting))
}

func TestSource_LoadMissingFile(t *testing.T) {
	_, err := NewSource(filepath.Join(t.TempDir(), "missing.toml")).Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "read knowledge base", cfgErr.Reason)
}

func TestParse_InvalidTOML(t *testing.T) {
	_, err := Parse([]byte("entries = ["))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(minimalKB + "\nbogus = 1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_UnknownPool(t *testing.T) {
	_, err := Parse([]byte(minimalKB + "\n[pools.extra]\n"))
	require.Error(t, err)
}

func TestParse_MissingPool(t *testing.T) {
	data := `
[[entries]]
id = "x"
question = "What is X?"
answer = "X."

[[rules]]
intent = "greeting"
words = ["hi"]

[pools]
greeting = ["Hello"]
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestParse_DuplicateEntryID(t *testing.T) {
	data := minimalKB + `
[[entries]]
id = "x"
question = "Again?"
answer = "Again."
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}
