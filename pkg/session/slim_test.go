package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildlog/pkg/schema"
)

func TestToSlimStripsFullFields(t *testing.T) {
	doc := docV2()
	slim := ToSlim(doc)

	assert.Equal(t, schema.FormatSlim, slim.Format)
	require.Len(t, slim.Steps, 3)

	action, ok := slim.Steps[1].(schema.ActionStep)
	require.True(t, ok)
	assert.Empty(t, action.AIResponse)
	assert.Nil(t, action.Diffs)
	// The slim summary of the action survives.
	assert.Equal(t, "created the handler", action.Summary)
	assert.Equal(t, []string{"internal/health/handler.go"}, action.FilesCreated)

	terminal, ok := slim.Steps[2].(schema.TerminalStep)
	require.True(t, ok)
	assert.Empty(t, terminal.Output)
	assert.Nil(t, terminal.ExitCode)
	assert.Equal(t, "go test ./...", terminal.Command)
}

func TestToSlimDoesNotMutateInput(t *testing.T) {
	doc := docV2()
	_ = ToSlim(doc)

	assert.Equal(t, schema.FormatFull, doc.Format)
	action := doc.Steps[1].(schema.ActionStep)
	assert.Equal(t, "Here is the handler.", action.AIResponse)
	assert.Len(t, action.Diffs, 1)
	terminal := doc.Steps[2].(schema.TerminalStep)
	assert.Equal(t, "ok", terminal.Output)
	assert.NotNil(t, terminal.ExitCode)
}

func TestToSlimIdentityForSlimInput(t *testing.T) {
	doc := docV2()
	doc.Format = schema.FormatSlim

	assert.Same(t, doc, ToSlim(doc))
}
