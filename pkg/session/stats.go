// Package session derives summaries from parsed buildlog documents:
// per-version statistics, size classification, replicability, and the
// full-to-slim conversion.
package session

import (
	"sort"

	"buildlog/pkg/schema"
)

// StatsV1 aggregates a v1 event stream.
type StatsV1 struct {
	EventCount    int      `json:"eventCount"`
	PromptCount   int      `json:"promptCount"`
	ResponseCount int      `json:"responseCount"`
	LinesAdded    int      `json:"linesAdded"`
	LinesRemoved  int      `json:"linesRemoved"`
	FileCount     int      `json:"fileCount"`
	Languages     []string `json:"languages"`
	Duration      int      `json:"durationSeconds"`
}

// StatsV2 aggregates a v2 step list and its outcome.
type StatsV2 struct {
	StepCount     int  `json:"stepCount"`
	PromptCount   int  `json:"promptCount"`
	ActionCount   int  `json:"actionCount"`
	TerminalCount int  `json:"terminalCount"`
	NoteCount     int  `json:"noteCount"`
	FilesCreated  int  `json:"filesCreated"`
	FilesModified int  `json:"filesModified"`
	Duration      int  `json:"durationSeconds"`
	IsReplicable  bool `json:"isReplicable"`
}

// ComputeStatsV1 walks the event list once. Languages is the sorted
// union of languages seen in file-create events and the final snapshot;
// FileCount comes from the final snapshot alone.
func ComputeStatsV1(doc *schema.DocumentV1) StatsV1 {
	stats := StatsV1{
		EventCount: len(doc.Events),
		Duration:   doc.Metadata.DurationSeconds,
	}

	langs := map[string]bool{}
	for _, event := range doc.Events {
		switch e := event.(type) {
		case schema.PromptEvent:
			stats.PromptCount++
		case schema.AIResponseEvent:
			stats.ResponseCount++
		case schema.CodeChangeEvent:
			stats.LinesAdded += e.LinesAdded
			stats.LinesRemoved += e.LinesRemoved
		case schema.FileCreateEvent:
			if e.Language != "" {
				langs[e.Language] = true
			}
		}
	}

	stats.FileCount = len(doc.FinalState.Files)
	for _, snap := range doc.FinalState.Files {
		if snap.Language != "" {
			langs[snap.Language] = true
		}
	}

	stats.Languages = make([]string, 0, len(langs))
	for lang := range langs {
		stats.Languages = append(stats.Languages, lang)
	}
	sort.Strings(stats.Languages)
	return stats
}

// ComputeStatsV2 walks the step list once. File counts are taken from
// the outcome record, not recomputed from action steps.
func ComputeStatsV2(doc *schema.DocumentV2) StatsV2 {
	stats := StatsV2{
		StepCount:     len(doc.Steps),
		FilesCreated:  doc.Outcome.FilesCreated,
		FilesModified: doc.Outcome.FilesModified,
		Duration:      doc.Metadata.DurationSeconds,
		IsReplicable:  doc.Outcome.CanReplicate && doc.Metadata.Replicable,
	}

	for _, step := range doc.Steps {
		switch step.(type) {
		case schema.PromptStep:
			stats.PromptCount++
		case schema.ActionStep:
			stats.ActionCount++
		case schema.TerminalStep:
			stats.TerminalCount++
		case schema.NoteStep:
			stats.NoteCount++
		}
	}
	return stats
}
