// Package schema defines the buildlog document model and its
// validation and parsing entry points.
//
// A buildlog file records one AI-assisted coding session. Two
// incompatible generations share the name: v1 ("1.0.0") keeps an event
// list between full file-system snapshots, v2 ("2.0.0") keeps a step
// list plus an outcome summary and a slim/full capture mode. The two
// are modelled as distinct document types unified only behind
// Validate, Parse and SafeParse, which select the generation by the
// root version literal.
package schema

// Document is the parsed, validated in-memory representation of one
// buildlog file. Concrete types are *DocumentV1 and *DocumentV2;
// callers type-switch to the generation they need.
type Document interface {
	DocVersion() string
}

// Author describes who drove the recorded session.
type Author struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	URL   string `json:"url,omitempty" validate:"omitempty,url"`
}

// ProviderInfo names one AI assistant used during the session.
type ProviderInfo struct {
	Provider AIProviderName `json:"provider" validate:"required,oneof=claude openai copilot cursor gemini local other"`
	Model    string         `json:"model,omitempty"`
}
