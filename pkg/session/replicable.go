package session

import "buildlog/pkg/schema"

// IsReplicable reports whether a reader could re-run the session from
// the document alone: it must contain at least one prompt step, the
// outcome must allow replication, and the author must have marked the
// session replicable.
func IsReplicable(doc *schema.DocumentV2) bool {
	if !doc.Outcome.CanReplicate || !doc.Metadata.Replicable {
		return false
	}
	for _, step := range doc.Steps {
		if _, ok := step.(schema.PromptStep); ok {
			return true
		}
	}
	return false
}
