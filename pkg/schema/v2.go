package schema

// DocumentV2 is the current buildlog generation: an ordered step list
// plus a terminal outcome. Format records the capture mode; a "slim"
// document is permitted to carry full-mode fields (only ToSlim strips
// them), the schema does not forbid the cross-contamination.
type DocumentV2 struct {
	Version  string        `json:"version"`
	Format   CaptureFormat `json:"format"`
	Metadata MetadataV2    `json:"metadata"`
	Steps    []Step        `json:"steps"`
	Outcome  Outcome       `json:"outcome"`
}

func (d *DocumentV2) DocVersion() string { return VersionV2 }

// MetadataV2 is the session-level descriptive record of a v2 document.
// Exactly one AI provider is required, and the author must declare up
// front whether the session is meant to be replicable.
type MetadataV2 struct {
	ID              string        `json:"id" validate:"uuid"`
	Title           string        `json:"title" validate:"min=1,max=200"`
	Description     string        `json:"description,omitempty" validate:"omitempty,max=2000"`
	Author          *Author       `json:"author,omitempty"`
	CreatedAt       string        `json:"createdAt" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	UpdatedAt       string        `json:"updatedAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationSeconds int           `json:"durationSeconds" validate:"gte=0"`
	Editor          EditorType    `json:"editor" validate:"oneof=vscode cursor windsurf jetbrains neovim zed other"`
	AIProvider      *ProviderInfo `json:"aiProvider"`
	Tags            []string      `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Replicable      bool          `json:"replicable"`
	Dependencies    []string      `json:"dependencies,omitempty"`
	Framework       string        `json:"framework,omitempty"`
}

// Outcome summarises how the session ended. filesCreated/filesModified
// are advisory counts; consistency with the step list is not validated.
type Outcome struct {
	Status           OutcomeStatus `json:"status" validate:"oneof=success partial failure abandoned"`
	Summary          string        `json:"summary" validate:"min=1"`
	FilesCreated     int           `json:"filesCreated" validate:"gte=0"`
	FilesModified    int           `json:"filesModified" validate:"gte=0"`
	CanReplicate     bool          `json:"canReplicate"`
	ReplicationNotes string        `json:"replicationNotes,omitempty"`
}

// Step is one discriminated entry in a v2 document. The variant set is
// closed; the interface is sealed so exhaustive type switches stay
// exhaustive.
type Step interface {
	Kind() StepType
	isStep()
}

// Diff records one file's change produced by an action step.
type Diff struct {
	FilePath string `json:"filePath" validate:"required"`
	Diff     string `json:"diff" validate:"required"`
}

// PromptStep is a prompt the user sent to the assistant.
type PromptStep struct {
	ID        string   `json:"id" validate:"uuid"`
	Timestamp float64  `json:"timestamp" validate:"gte=0"`
	Sequence  int      `json:"sequence" validate:"gte=0"`
	Type      StepType `json:"type"`
	Content   string   `json:"content" validate:"min=1"`
}

func (PromptStep) Kind() StepType { return StepPrompt }
func (PromptStep) isStep()        {}

// ActionStep subsumes the assistant's response and the resulting file
// work into path lists and a summary. AIResponse and Diffs are only
// populated in full capture mode.
type ActionStep struct {
	ID            string   `json:"id" validate:"uuid"`
	Timestamp     float64  `json:"timestamp" validate:"gte=0"`
	Sequence      int      `json:"sequence" validate:"gte=0"`
	Type          StepType `json:"type"`
	Summary       string   `json:"summary" validate:"min=1"`
	FilesCreated  []string `json:"filesCreated,omitempty"`
	FilesModified []string `json:"filesModified,omitempty"`
	FilesDeleted  []string `json:"filesDeleted,omitempty"`
	AIResponse    string   `json:"aiResponse,omitempty"`
	Diffs         []Diff   `json:"diffs,omitempty" validate:"omitempty,dive"`
}

func (ActionStep) Kind() StepType { return StepAction }
func (ActionStep) isStep()        {}

// TerminalStep records a command run during the session. Output and
// ExitCode are only populated in full capture mode.
type TerminalStep struct {
	ID        string   `json:"id" validate:"uuid"`
	Timestamp float64  `json:"timestamp" validate:"gte=0"`
	Sequence  int      `json:"sequence" validate:"gte=0"`
	Type      StepType `json:"type"`
	Command   string   `json:"command" validate:"min=1"`
	CWD       string   `json:"cwd,omitempty"`
	Output    string   `json:"output,omitempty"`
	ExitCode  *int     `json:"exitCode,omitempty"`
}

func (TerminalStep) Kind() StepType { return StepTerminal }
func (TerminalStep) isStep()        {}

// NoteStep is a free-form annotation.
type NoteStep struct {
	ID        string       `json:"id" validate:"uuid"`
	Timestamp float64      `json:"timestamp" validate:"gte=0"`
	Sequence  int          `json:"sequence" validate:"gte=0"`
	Type      StepType     `json:"type"`
	Content   string       `json:"content" validate:"min=1"`
	Category  NoteCategory `json:"category,omitempty" validate:"omitempty,oneof=general decision todo warning"`
}

func (NoteStep) Kind() StepType { return StepNote }
func (NoteStep) isStep()        {}

// CheckpointStep marks a named point the workflow can be resumed from.
type CheckpointStep struct {
	ID          string   `json:"id" validate:"uuid"`
	Timestamp   float64  `json:"timestamp" validate:"gte=0"`
	Sequence    int      `json:"sequence" validate:"gte=0"`
	Type        StepType `json:"type"`
	Label       string   `json:"label" validate:"min=1"`
	Description string   `json:"description,omitempty"`
}

func (CheckpointStep) Kind() StepType { return StepCheckpoint }
func (CheckpointStep) isStep()        {}

// ErrorStep records a failure encountered during the session.
type ErrorStep struct {
	ID         string   `json:"id" validate:"uuid"`
	Timestamp  float64  `json:"timestamp" validate:"gte=0"`
	Sequence   int      `json:"sequence" validate:"gte=0"`
	Type       StepType `json:"type"`
	Message    string   `json:"message" validate:"min=1"`
	StackTrace string   `json:"stackTrace,omitempty"`
	Resolved   bool     `json:"resolved,omitempty"`
}

func (ErrorStep) Kind() StepType { return StepError }
func (ErrorStep) isStep()        {}
