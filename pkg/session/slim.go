package session

import "buildlog/pkg/schema"

// ToSlim returns a slim-format copy of doc with every full-capture
// field removed: AI response text and diffs on action steps, output
// and exit codes on terminal steps. A document already in slim format
// is returned unchanged; the input is never mutated.
func ToSlim(doc *schema.DocumentV2) *schema.DocumentV2 {
	if doc.Format == schema.FormatSlim {
		return doc
	}

	slim := *doc
	slim.Format = schema.FormatSlim
	slim.Steps = make([]schema.Step, len(doc.Steps))
	for i, step := range doc.Steps {
		switch s := step.(type) {
		case schema.ActionStep:
			s.AIResponse = ""
			s.Diffs = nil
			slim.Steps[i] = s
		case schema.TerminalStep:
			s.Output = ""
			s.ExitCode = nil
			slim.Steps[i] = s
		default:
			slim.Steps[i] = step
		}
	}
	return &slim
}
