package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validV2() map[string]any {
	return map[string]any{
		"version": "2.0.0",
		"format":  "full",
		"metadata": map[string]any{
			"id":              "7b9a0ddc-3c45-4cf5-9a2a-6a1f4f9f2a11",
			"title":           "Add healthcheck endpoint",
			"createdAt":       "2026-01-15T10:30:00Z",
			"durationSeconds": 1800,
			"editor":          "vscode",
			"aiProvider":      map[string]any{"provider": "claude", "model": "opus"},
			"replicable":      true,
		},
		"steps": []any{
			map[string]any{
				"id": "52f7c9f2-88dd-4b6e-8f1f-0c2a35f6f001", "timestamp": 0.0, "sequence": 0,
				"type": "prompt", "content": "add a healthcheck endpoint",
			},
			map[string]any{
				"id": "52f7c9f2-88dd-4b6e-8f1f-0c2a35f6f002", "timestamp": 4.2, "sequence": 1,
				"type": "action", "summary": "created the handler",
				"filesCreated": []any{"internal/health/handler.go"},
				"aiResponse":   "Here is the handler.",
				"diffs":        []any{map[string]any{"filePath": "internal/health/handler.go", "diff": "+package health"}},
			},
		},
		"outcome": map[string]any{
			"status": "success", "summary": "endpoint added and tested",
			"filesCreated": 1, "filesModified": 0, "canReplicate": true,
		},
	}
}

func validV1() map[string]any {
	return map[string]any{
		"version": "1.0.0",
		"metadata": map[string]any{
			"id":              "9e2f7c40-11aa-4d2b-b1c9-3f5e8a7d6c01",
			"title":           "Refactor parser",
			"createdAt":       "2025-11-02T09:00:00Z",
			"durationSeconds": 600,
			"editor":          "cursor",
		},
		"initialState": map[string]any{"files": []any{}},
		"events": []any{
			map[string]any{
				"id": "9e2f7c40-11aa-4d2b-b1c9-3f5e8a7d6c02", "timestamp": 0.0, "sequence": 0,
				"type": "prompt", "content": "refactor the parser",
			},
			map[string]any{
				"id": "9e2f7c40-11aa-4d2b-b1c9-3f5e8a7d6c03", "timestamp": 2.5, "sequence": 1,
				"type": "ai_response", "content": "Done, extracted a lexer.",
			},
		},
		"finalState": map[string]any{"files": []any{
			map[string]any{"path": "parser.go", "content": "package parser", "language": "go"},
		}},
	}
}

func TestValidateValidDocuments(t *testing.T) {
	for _, doc := range []map[string]any{validV1(), validV2()} {
		result := Validate(doc)
		assert.True(t, result.Valid, "issues: %v", result.Errors)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	}
}

func TestValidateVersionLiteral(t *testing.T) {
	tests := []struct {
		name     string
		doc      map[string]any
		wantPath string
		wantCode string
	}{
		{"unknown version", map[string]any{"version": "3.0.0"}, "version", CodeInvalidLiteral},
		{"missing version", map[string]any{"format": "slim"}, "version", CodeRequired},
		{"numeric version", map[string]any{"version": 2}, "version", CodeInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.doc)
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.wantPath, result.Errors[0].Path)
			assert.Equal(t, tt.wantCode, result.Errors[0].Code)
		})
	}
}

func TestValidateRejectsCrossVersionEntryTypes(t *testing.T) {
	// code_change is a v1 event kind; it must not pass as a v2 step.
	doc := validV2()
	doc["steps"] = []any{map[string]any{
		"id": "52f7c9f2-88dd-4b6e-8f1f-0c2a35f6f001", "timestamp": 1.0, "sequence": 0,
		"type": "code_change", "filePath": "a.go", "diff": "+x",
	}}

	result := Validate(doc)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "steps.0.type", result.Errors[0].Path)
	assert.Equal(t, CodeInvalidUnion, result.Errors[0].Code)
}

func TestValidateMissingRootFields(t *testing.T) {
	result := Validate(map[string]any{"version": "2.0.0"})
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)

	paths := map[string]bool{}
	for _, issue := range result.Errors {
		assert.Equal(t, CodeRequired, issue.Code)
		paths[issue.Path] = true
	}
	for _, want := range []string{"format", "metadata", "steps", "outcome"} {
		assert.True(t, paths[want], "missing issue for %s", want)
	}
}

func TestValidateFieldRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(doc map[string]any)
		wantPath string
		wantCode string
	}{
		{
			"bad uuid",
			func(doc map[string]any) { meta(doc)["id"] = "not-a-uuid" },
			"metadata.id", CodeInvalidString,
		},
		{
			"title too long",
			func(doc map[string]any) { meta(doc)["title"] = strings.Repeat("x", 201) },
			"metadata.title", CodeTooBig,
		},
		{
			"empty title",
			func(doc map[string]any) { meta(doc)["title"] = "" },
			"metadata.title", CodeTooSmall,
		},
		{
			"bad timestamp format",
			func(doc map[string]any) { meta(doc)["createdAt"] = "yesterday" },
			"metadata.createdAt", CodeInvalidString,
		},
		{
			"negative duration",
			func(doc map[string]any) { meta(doc)["durationSeconds"] = -5 },
			"metadata.durationSeconds", CodeTooSmall,
		},
		{
			"unknown editor",
			func(doc map[string]any) { meta(doc)["editor"] = "emacs" },
			"metadata.editor", CodeInvalidEnum,
		},
		{
			"too many tags",
			func(doc map[string]any) {
				tags := make([]any, 21)
				for i := range tags {
					tags[i] = "tag"
				}
				meta(doc)["tags"] = tags
			},
			"metadata.tags", CodeTooBig,
		},
		{
			"unknown provider",
			func(doc map[string]any) {
				meta(doc)["aiProvider"] = map[string]any{"provider": "skynet"}
			},
			"metadata.aiProvider.provider", CodeInvalidEnum,
		},
		{
			"bad format",
			func(doc map[string]any) { doc["format"] = "medium" },
			"format", CodeInvalidEnum,
		},
		{
			"bad outcome status",
			func(doc map[string]any) { doc["outcome"].(map[string]any)["status"] = "done" },
			"outcome.status", CodeInvalidEnum,
		},
		{
			"negative step timestamp",
			func(doc map[string]any) {
				doc["steps"].([]any)[0].(map[string]any)["timestamp"] = -1.0
			},
			"steps.0.timestamp", CodeTooSmall,
		},
		{
			"step content wrong type",
			func(doc map[string]any) {
				doc["steps"].([]any)[0].(map[string]any)["content"] = 42
			},
			"steps.0.content", CodeInvalidType,
		},
		{
			"missing step field",
			func(doc map[string]any) {
				delete(doc["steps"].([]any)[1].(map[string]any), "summary")
			},
			"steps.1.summary", CodeRequired,
		},
		{
			"null provider",
			func(doc map[string]any) { meta(doc)["aiProvider"] = nil },
			"metadata.aiProvider", CodeInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validV2()
			tt.mutate(doc)

			result := Validate(doc)
			require.False(t, result.Valid)
			require.Len(t, result.Errors, 1, "issues: %v", result.Errors)
			assert.Equal(t, tt.wantPath, result.Errors[0].Path)
			assert.Equal(t, tt.wantCode, result.Errors[0].Code)
		})
	}
}

func TestValidateCollectsAllIssues(t *testing.T) {
	doc := validV2()
	meta(doc)["id"] = "nope"
	meta(doc)["editor"] = "emacs"
	doc["outcome"].(map[string]any)["summary"] = ""

	result := Validate(doc)
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 3)
}

func TestValidateV1FieldRules(t *testing.T) {
	doc := validV1()
	doc["finalState"].(map[string]any)["files"].([]any)[0].(map[string]any)["path"] = ""
	delete(doc["events"].([]any)[1].(map[string]any), "content")

	result := Validate(doc)
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2, "issues: %v", result.Errors)

	paths := []string{result.Errors[0].Path, result.Errors[1].Path}
	assert.Contains(t, paths, "finalState.files.0.path")
	assert.Contains(t, paths, "events.1.content")
}

func TestValidateSlimMayCarryFullFields(t *testing.T) {
	// Full-only fields in a slim document are legal; only ToSlim
	// strips them.
	doc := validV2()
	doc["format"] = "slim"

	result := Validate(doc)
	assert.True(t, result.Valid, "issues: %v", result.Errors)
}

func TestValidateSizeWarning(t *testing.T) {
	doc := validV2()
	result := ValidateWithLimits(doc, Limits{SlimWarnBytes: 64, FullWarnBytes: 64})

	assert.True(t, result.Valid)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "larger than the recommended")
	assert.NotEmpty(t, result.Warnings[0].Suggestion)
}

func TestValidateNil(t *testing.T) {
	result := Validate(nil)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, CodeInvalidType, result.Errors[0].Code)
}

func meta(doc map[string]any) map[string]any {
	return doc["metadata"].(map[string]any)
}
