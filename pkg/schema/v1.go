package schema

// DocumentV1 is the original buildlog generation: an event list framed
// by full file-system snapshots. It has no outcome concept.
type DocumentV1 struct {
	Version      string       `json:"version"`
	Metadata     MetadataV1   `json:"metadata"`
	InitialState SessionState `json:"initialState"`
	Events       []Event      `json:"events"`
	FinalState   SessionState `json:"finalState"`
}

func (d *DocumentV1) DocVersion() string { return VersionV1 }

// MetadataV1 is the v1 session record. Any number of AI providers may
// be listed, and Custom is a deliberately untyped extension bag.
type MetadataV1 struct {
	ID              string         `json:"id" validate:"uuid"`
	Title           string         `json:"title" validate:"min=1,max=200"`
	Description     string         `json:"description,omitempty" validate:"omitempty,max=2000"`
	Author          *Author        `json:"author,omitempty"`
	CreatedAt       string         `json:"createdAt" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	UpdatedAt       string         `json:"updatedAt,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	DurationSeconds int            `json:"durationSeconds" validate:"gte=0"`
	Editor          EditorType     `json:"editor" validate:"oneof=vscode cursor windsurf jetbrains neovim zed other"`
	AIProviders     []ProviderInfo `json:"aiProviders,omitempty" validate:"omitempty,dive"`
	Tags            []string       `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Project         *ProjectInfo   `json:"project,omitempty"`
	Custom          map[string]any `json:"custom,omitempty"`
}

// ProjectInfo is the optional v1 project descriptor.
type ProjectInfo struct {
	Name      string `json:"name,omitempty"`
	Language  string `json:"language,omitempty"`
	Framework string `json:"framework,omitempty"`
}

// SessionState is a file-system snapshot taken at session start or end.
// Files may be empty; FileTree is an optional flat listing.
type SessionState struct {
	Files    []FileSnapshot `json:"files"`
	FileTree []string       `json:"fileTree,omitempty"`
}

// FileSnapshot captures one file's full content.
type FileSnapshot struct {
	Path      string `json:"path" validate:"min=1"`
	Content   string `json:"content"`
	Language  string `json:"language" validate:"min=1"`
	SizeBytes int    `json:"sizeBytes,omitempty" validate:"gte=0"`
	Hash      string `json:"hash,omitempty"`
}

// Event is one discriminated entry in a v1 document. Sealed, like Step.
type Event interface {
	Kind() EventType
	isEvent()
}

// CodeBlock is a fenced block inside an AI response.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Code     string `json:"code" validate:"required"`
}

// TokenUsage records the token cost of one AI response.
type TokenUsage struct {
	Input  int `json:"input" validate:"gte=0"`
	Output int `json:"output" validate:"gte=0"`
}

// PromptEvent is a prompt the user sent to the assistant.
type PromptEvent struct {
	ID        string    `json:"id" validate:"uuid"`
	Timestamp float64   `json:"timestamp" validate:"gte=0"`
	Sequence  int       `json:"sequence" validate:"gte=0"`
	Type      EventType `json:"type"`
	Content   string    `json:"content" validate:"min=1"`
}

func (PromptEvent) Kind() EventType { return EventPrompt }
func (PromptEvent) isEvent()        {}

// AIResponseEvent keeps the assistant's full reply.
type AIResponseEvent struct {
	ID         string      `json:"id" validate:"uuid"`
	Timestamp  float64     `json:"timestamp" validate:"gte=0"`
	Sequence   int         `json:"sequence" validate:"gte=0"`
	Type       EventType   `json:"type"`
	Content    string      `json:"content" validate:"min=1"`
	Model      string      `json:"model,omitempty"`
	Tokens     *TokenUsage `json:"tokens,omitempty"`
	CodeBlocks []CodeBlock `json:"codeBlocks,omitempty" validate:"omitempty,dive"`
}

func (AIResponseEvent) Kind() EventType { return EventAIResponse }
func (AIResponseEvent) isEvent()        {}

// CodeChangeEvent records an edit to an existing file, with the full
// diff retained.
type CodeChangeEvent struct {
	ID           string    `json:"id" validate:"uuid"`
	Timestamp    float64   `json:"timestamp" validate:"gte=0"`
	Sequence     int       `json:"sequence" validate:"gte=0"`
	Type         EventType `json:"type"`
	FilePath     string    `json:"filePath" validate:"min=1"`
	Language     string    `json:"language,omitempty"`
	Diff         string    `json:"diff" validate:"required"`
	LinesAdded   int       `json:"linesAdded,omitempty" validate:"gte=0"`
	LinesRemoved int       `json:"linesRemoved,omitempty" validate:"gte=0"`
}

func (CodeChangeEvent) Kind() EventType { return EventCodeChange }
func (CodeChangeEvent) isEvent()        {}

// FileCreateEvent records a new file with its initial content.
type FileCreateEvent struct {
	ID        string    `json:"id" validate:"uuid"`
	Timestamp float64   `json:"timestamp" validate:"gte=0"`
	Sequence  int       `json:"sequence" validate:"gte=0"`
	Type      EventType `json:"type"`
	FilePath  string    `json:"filePath" validate:"min=1"`
	Content   string    `json:"content"`
	Language  string    `json:"language" validate:"min=1"`
}

func (FileCreateEvent) Kind() EventType { return EventFileCreate }
func (FileCreateEvent) isEvent()        {}

// FileDeleteEvent records a file removal.
type FileDeleteEvent struct {
	ID        string    `json:"id" validate:"uuid"`
	Timestamp float64   `json:"timestamp" validate:"gte=0"`
	Sequence  int       `json:"sequence" validate:"gte=0"`
	Type      EventType `json:"type"`
	FilePath  string    `json:"filePath" validate:"min=1"`
}

func (FileDeleteEvent) Kind() EventType { return EventFileDelete }
func (FileDeleteEvent) isEvent()        {}

// FileRenameEvent records a file move.
type FileRenameEvent struct {
	ID        string    `json:"id" validate:"uuid"`
	Timestamp float64   `json:"timestamp" validate:"gte=0"`
	Sequence  int       `json:"sequence" validate:"gte=0"`
	Type      EventType `json:"type"`
	OldPath   string    `json:"oldPath" validate:"min=1"`
	NewPath   string    `json:"newPath" validate:"min=1"`
}

func (FileRenameEvent) Kind() EventType { return EventFileRename }
func (FileRenameEvent) isEvent()        {}

// TerminalEvent records a command run during the session.
type TerminalEvent struct {
	ID        string    `json:"id" validate:"uuid"`
	Timestamp float64   `json:"timestamp" validate:"gte=0"`
	Sequence  int       `json:"sequence" validate:"gte=0"`
	Type      EventType `json:"type"`
	Command   string    `json:"command" validate:"min=1"`
	CWD       string    `json:"cwd,omitempty"`
	Output    string    `json:"output,omitempty"`
	ExitCode  *int      `json:"exitCode,omitempty"`
}

func (TerminalEvent) Kind() EventType { return EventTerminal }
func (TerminalEvent) isEvent()        {}

// NoteEvent is a free-form annotation.
type NoteEvent struct {
	ID        string       `json:"id" validate:"uuid"`
	Timestamp float64      `json:"timestamp" validate:"gte=0"`
	Sequence  int          `json:"sequence" validate:"gte=0"`
	Type      EventType    `json:"type"`
	Content   string       `json:"content" validate:"min=1"`
	Category  NoteCategory `json:"category,omitempty" validate:"omitempty,oneof=general decision todo warning"`
}

func (NoteEvent) Kind() EventType { return EventNote }
func (NoteEvent) isEvent()        {}

// CheckpointEvent marks a named point in the workflow.
type CheckpointEvent struct {
	ID          string    `json:"id" validate:"uuid"`
	Timestamp   float64   `json:"timestamp" validate:"gte=0"`
	Sequence    int       `json:"sequence" validate:"gte=0"`
	Type        EventType `json:"type"`
	Label       string    `json:"label" validate:"min=1"`
	Description string    `json:"description,omitempty"`
}

func (CheckpointEvent) Kind() EventType { return EventCheckpoint }
func (CheckpointEvent) isEvent()        {}

// ErrorEvent records a failure, with the stack trace retained.
type ErrorEvent struct {
	ID         string        `json:"id" validate:"uuid"`
	Timestamp  float64       `json:"timestamp" validate:"gte=0"`
	Sequence   int           `json:"sequence" validate:"gte=0"`
	Type       EventType     `json:"type"`
	Message    string        `json:"message" validate:"min=1"`
	StackTrace string        `json:"stackTrace,omitempty"`
	Severity   ErrorSeverity `json:"severity,omitempty" validate:"omitempty,oneof=warning error fatal"`
	Resolved   bool          `json:"resolved,omitempty"`
}

func (ErrorEvent) Kind() EventType { return EventError }
func (ErrorEvent) isEvent()        {}
