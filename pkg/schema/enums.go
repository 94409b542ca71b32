package schema

// Version literals. Each generation of the buildlog format is selected
// solely by this root field; there is no shape auto-detection.
const (
	VersionV1 = "1.0.0"
	VersionV2 = "2.0.0"
)

// CaptureFormat controls how much AI output a v2 document retains.
type CaptureFormat string

const (
	// FormatSlim drops full AI responses, diffs and terminal output.
	FormatSlim CaptureFormat = "slim"
	// FormatFull keeps everything the capture layer recorded.
	FormatFull CaptureFormat = "full"
)

// Valid reports whether f is a known capture format.
func (f CaptureFormat) Valid() bool {
	return f == FormatSlim || f == FormatFull
}

// EditorType identifies the editor the session was captured in.
type EditorType string

const (
	EditorVSCode    EditorType = "vscode"
	EditorCursor    EditorType = "cursor"
	EditorWindsurf  EditorType = "windsurf"
	EditorJetBrains EditorType = "jetbrains"
	EditorNeovim    EditorType = "neovim"
	EditorZed       EditorType = "zed"
	EditorOther     EditorType = "other"
)

// EditorTypes returns the closed set of editor values.
func EditorTypes() []EditorType {
	return []EditorType{
		EditorVSCode, EditorCursor, EditorWindsurf,
		EditorJetBrains, EditorNeovim, EditorZed, EditorOther,
	}
}

// Valid reports whether e is a known editor.
func (e EditorType) Valid() bool {
	for _, known := range EditorTypes() {
		if e == known {
			return true
		}
	}
	return false
}

// AIProviderName identifies which AI assistant produced the responses.
type AIProviderName string

const (
	ProviderClaude  AIProviderName = "claude"
	ProviderOpenAI  AIProviderName = "openai"
	ProviderCopilot AIProviderName = "copilot"
	ProviderCursor  AIProviderName = "cursor"
	ProviderGemini  AIProviderName = "gemini"
	ProviderLocal   AIProviderName = "local"
	ProviderOther   AIProviderName = "other"
)

// AIProviderNames returns the closed set of provider values.
func AIProviderNames() []AIProviderName {
	return []AIProviderName{
		ProviderClaude, ProviderOpenAI, ProviderCopilot,
		ProviderCursor, ProviderGemini, ProviderLocal, ProviderOther,
	}
}

// Valid reports whether p is a known provider.
func (p AIProviderName) Valid() bool {
	for _, known := range AIProviderNames() {
		if p == known {
			return true
		}
	}
	return false
}

// OutcomeStatus summarises how a v2 session ended.
type OutcomeStatus string

const (
	StatusSuccess   OutcomeStatus = "success"
	StatusPartial   OutcomeStatus = "partial"
	StatusFailure   OutcomeStatus = "failure"
	StatusAbandoned OutcomeStatus = "abandoned"
)

// OutcomeStatuses returns the closed set of outcome values.
func OutcomeStatuses() []OutcomeStatus {
	return []OutcomeStatus{StatusSuccess, StatusPartial, StatusFailure, StatusAbandoned}
}

// Valid reports whether s is a known outcome status.
func (s OutcomeStatus) Valid() bool {
	for _, known := range OutcomeStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// NoteCategory classifies free-form notes left during a session.
type NoteCategory string

const (
	NoteGeneral  NoteCategory = "general"
	NoteDecision NoteCategory = "decision"
	NoteTodo     NoteCategory = "todo"
	NoteWarning  NoteCategory = "warning"
)

// ErrorSeverity grades v1 error events.
type ErrorSeverity string

const (
	SeverityWarning ErrorSeverity = "warning"
	SeverityError   ErrorSeverity = "error"
	SeverityFatal   ErrorSeverity = "fatal"
)

// StepType discriminates v2 step variants.
type StepType string

const (
	StepPrompt     StepType = "prompt"
	StepAction     StepType = "action"
	StepTerminal   StepType = "terminal"
	StepNote       StepType = "note"
	StepCheckpoint StepType = "checkpoint"
	StepError      StepType = "error"
)

// StepTypes returns the closed set of v2 step discriminants.
func StepTypes() []StepType {
	return []StepType{
		StepPrompt, StepAction, StepTerminal,
		StepNote, StepCheckpoint, StepError,
	}
}

func validStepType(t StepType) bool {
	switch t {
	case StepPrompt, StepAction, StepTerminal, StepNote, StepCheckpoint, StepError:
		return true
	}
	return false
}

// EventType discriminates v1 event variants.
type EventType string

const (
	EventPrompt     EventType = "prompt"
	EventAIResponse EventType = "ai_response"
	EventCodeChange EventType = "code_change"
	EventFileCreate EventType = "file_create"
	EventFileDelete EventType = "file_delete"
	EventFileRename EventType = "file_rename"
	EventTerminal   EventType = "terminal"
	EventNote       EventType = "note"
	EventCheckpoint EventType = "checkpoint"
	EventError      EventType = "error"
)

// EventTypes returns the closed set of v1 event discriminants.
func EventTypes() []EventType {
	return []EventType{
		EventPrompt, EventAIResponse, EventCodeChange,
		EventFileCreate, EventFileDelete, EventFileRename,
		EventTerminal, EventNote, EventCheckpoint, EventError,
	}
}

func validEventType(t EventType) bool {
	switch t {
	case EventPrompt, EventAIResponse, EventCodeChange, EventFileCreate,
		EventFileDelete, EventFileRename, EventTerminal, EventNote,
		EventCheckpoint, EventError:
		return true
	}
	return false
}
