package infrastructure

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestLoadKnowledgeBase_MissingFileIsEmpty(t *testing.T) {
	kb := LoadKnowledgeBase(filepath.Join(t.TempDir(), "nope.json"), nopLogger())
	assert.Empty(t, kb)
	assert.NotNil(t, kb)
}

func TestLoadKnowledgeBase_CorruptFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	kb := LoadKnowledgeBase(path, nopLogger())
	assert.Empty(t, kb)
}

func TestLoadKnowledgeBase_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tickets":{"vip_price":"$100","regular_price":"$40"}}`), 0o644))

	kb := LoadKnowledgeBase(path, nopLogger())
	require.Len(t, kb, 1)

	tickets, ok := kb["tickets"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "$100", tickets["vip_price"])
}

func TestBuildSystemInstruction_EmbedsKnowledge(t *testing.T) {
	instruction := BuildSystemInstruction(map[string]any{
		"tickets": map[string]any{"vip_price": "$100"},
	})

	assert.Contains(t, instruction, "vip_price")
	assert.Contains(t, instruction, "$100")
	assert.Contains(t, instruction, "Reference information:")
}

func TestBuildSystemInstruction_EmptyKnowledge(t *testing.T) {
	instruction := BuildSystemInstruction(map[string]any{})
	assert.Contains(t, instruction, "{}")
}
