package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildlog/internal/config"
	"buildlog/pkg/schema"
	"buildlog/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Limits: config.LimitsConfig{
			SlimWarnBytes: schema.DefaultSlimWarnBytes,
			FullWarnBytes: schema.DefaultFullWarnBytes,
		},
	}
}

func writeSampleDoc(t *testing.T, dir string) string {
	t.Helper()
	doc := &schema.DocumentV2{
		Version: schema.VersionV2,
		Format:  schema.FormatFull,
		Metadata: schema.MetadataV2{
			ID:              "7b9a0ddc-3c45-4cf5-9a2a-6a1f4f9f2a11",
			Title:           "Sample session",
			CreatedAt:       "2026-01-15T10:30:00Z",
			DurationSeconds: 65,
			Editor:          schema.EditorVSCode,
			AIProvider:      &schema.ProviderInfo{Provider: schema.ProviderClaude},
			Replicable:      true,
		},
		Steps: []schema.Step{
			schema.PromptStep{
				ID: "52f7c9f2-88dd-4b6e-8f1f-0c2a35f6f001", Sequence: 0,
				Type: schema.StepPrompt, Content: "do the thing",
			},
		},
		Outcome: schema.Outcome{
			Status:       schema.StatusSuccess,
			Summary:      "done",
			CanReplicate: true,
		},
	}

	b, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, "sample.buildlog")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestValidateCommand(t *testing.T) {
	path := writeSampleDoc(t, t.TempDir())

	cmd := newValidateCmd(testConfig(), nopLogger{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "is valid")
}

func TestValidateCommandRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.buildlog")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":"2.0.0"}`), 0o644))

	cmd := newValidateCmd(testConfig(), nopLogger{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path})

	require.Error(t, cmd.Execute())
	assert.Contains(t, buf.String(), "issue(s)")
}

func TestStatsCommandJSON(t *testing.T) {
	path := writeSampleDoc(t, t.TempDir())

	cmd := newStatsCmd(store.New())
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path, "--format", "json"})

	require.NoError(t, cmd.Execute())

	var stats map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &stats))
	assert.EqualValues(t, 1, stats["stepCount"])
	assert.EqualValues(t, 1, stats["promptCount"])
	assert.Equal(t, true, stats["isReplicable"])
}

func TestSlimCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDoc(t, dir)
	out := filepath.Join(dir, "sample.slim.buildlog")

	cmd := newSlimCmd(store.New(), nopLogger{})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{path, "-o", out})

	require.NoError(t, cmd.Execute())

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := schema.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, schema.FormatSlim, doc.(*schema.DocumentV2).Format)
}
