package schema

import (
	"encoding/json"
	"fmt"
)

// Required keys per object. Presence is checked against the raw JSON
// object so that a zero value (timestamp 0, replicable false) is
// distinguishable from an absent field.
var (
	rootRequiredV1 = []string{"metadata", "initialState", "events", "finalState"}
	rootRequiredV2 = []string{"format", "metadata", "steps", "outcome"}

	metadataRequiredV1 = []string{"id", "title", "createdAt", "durationSeconds", "editor"}
	metadataRequiredV2 = []string{"id", "title", "createdAt", "durationSeconds", "editor", "aiProvider", "replicable"}

	outcomeRequired = []string{"status", "summary", "filesCreated", "filesModified", "canReplicate"}

	snapshotRequired = []string{"path", "content", "language"}

	entryBaseRequired = []string{"id", "timestamp", "sequence"}
)

func entryRequired(extra ...string) []string {
	return append(append([]string{}, entryBaseRequired...), extra...)
}

var stepRequired = map[StepType][]string{
	StepPrompt:     entryRequired("content"),
	StepAction:     entryRequired("summary"),
	StepTerminal:   entryRequired("command"),
	StepNote:       entryRequired("content"),
	StepCheckpoint: entryRequired("label"),
	StepError:      entryRequired("message"),
}

var eventRequired = map[EventType][]string{
	EventPrompt:     entryRequired("content"),
	EventAIResponse: entryRequired("content"),
	EventCodeChange: entryRequired("filePath", "diff"),
	EventFileCreate: entryRequired("filePath", "content", "language"),
	EventFileDelete: entryRequired("filePath"),
	EventFileRename: entryRequired("oldPath", "newPath"),
	EventTerminal:   entryRequired("command"),
	EventNote:       entryRequired("content"),
	EventCheckpoint: entryRequired("label"),
	EventError:      entryRequired("message"),
}

// decodeDocument selects the schema by the root version literal and
// applies it, collecting every issue. The document is returned only
// when the issue list is empty.
func decodeDocument(raw []byte) (Document, []Issue) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, []Issue{{Path: "", Message: "expected object", Code: CodeInvalidType}}
	}

	verRaw, ok := root["version"]
	if !ok {
		return nil, []Issue{{Path: "version", Message: "is required", Code: CodeRequired}}
	}
	var version string
	if err := json.Unmarshal(verRaw, &version); err != nil {
		return nil, []Issue{{Path: "version", Message: "expected string", Code: CodeInvalidType}}
	}

	switch version {
	case VersionV1:
		return decodeV1(root)
	case VersionV2:
		return decodeV2(root)
	default:
		return nil, []Issue{{
			Path:    "version",
			Message: fmt.Sprintf("unsupported version %q, expected %q or %q", version, VersionV1, VersionV2),
			Code:    CodeInvalidLiteral,
		}}
	}
}

func decodeV2(root map[string]json.RawMessage) (Document, []Issue) {
	var issues []Issue
	for _, key := range rootRequiredV2 {
		if _, ok := root[key]; !ok {
			issues = append(issues, Issue{Path: key, Message: "is required", Code: CodeRequired})
		}
	}

	doc := &DocumentV2{Version: VersionV2}

	if raw, ok := root["format"]; ok {
		var format CaptureFormat
		if err := json.Unmarshal(raw, &format); err != nil {
			issues = append(issues, Issue{Path: "format", Message: "expected string", Code: CodeInvalidType})
		} else if !format.Valid() {
			issues = append(issues, Issue{
				Path:    "format",
				Message: fmt.Sprintf("must be one of: %s, %s", FormatSlim, FormatFull),
				Code:    CodeInvalidEnum,
			})
		} else {
			doc.Format = format
		}
	}

	if raw, ok := root["metadata"]; ok {
		issues = append(issues, checkObject(raw, "metadata", metadataRequiredV2, &doc.Metadata)...)
		// A null aiProvider decodes to a nil pointer without an error,
		// which would silently skip the provider rules.
		if keyIsNull(raw, "aiProvider") {
			issues = append(issues, Issue{Path: "metadata.aiProvider", Message: "expected object, received null", Code: CodeInvalidType})
		}
	}

	if raw, ok := root["steps"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			issues = append(issues, Issue{Path: "steps", Message: "expected array", Code: CodeInvalidType})
		} else {
			doc.Steps = make([]Step, 0, len(items))
			for i, item := range items {
				step, stepIssues := decodeStep(item, fmt.Sprintf("steps.%d", i))
				issues = append(issues, stepIssues...)
				if step != nil {
					doc.Steps = append(doc.Steps, step)
				}
			}
		}
	}

	if raw, ok := root["outcome"]; ok {
		issues = append(issues, checkObject(raw, "outcome", outcomeRequired, &doc.Outcome)...)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return doc, nil
}

func decodeStep(raw json.RawMessage, prefix string) (Step, []Issue) {
	kind, issues := entryDiscriminant(raw, prefix)
	if issues != nil {
		return nil, issues
	}

	stepType := StepType(kind)
	if !validStepType(stepType) {
		return nil, []Issue{{
			Path:    prefix + ".type",
			Message: fmt.Sprintf("%q is not a valid step type for version %s", kind, VersionV2),
			Code:    CodeInvalidUnion,
		}}
	}

	required := stepRequired[stepType]
	switch stepType {
	case StepPrompt:
		var s PromptStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	case StepAction:
		var s ActionStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	case StepTerminal:
		var s TerminalStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	case StepNote:
		var s NoteStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	case StepCheckpoint:
		var s CheckpointStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	default:
		var s ErrorStep
		issues = checkObject(raw, prefix, required, &s)
		return s, issues
	}
}

func decodeV1(root map[string]json.RawMessage) (Document, []Issue) {
	var issues []Issue
	for _, key := range rootRequiredV1 {
		if _, ok := root[key]; !ok {
			issues = append(issues, Issue{Path: key, Message: "is required", Code: CodeRequired})
		}
	}

	doc := &DocumentV1{Version: VersionV1}

	if raw, ok := root["metadata"]; ok {
		issues = append(issues, checkObject(raw, "metadata", metadataRequiredV1, &doc.Metadata)...)
	}

	if raw, ok := root["initialState"]; ok {
		issues = append(issues, decodeState(raw, "initialState", &doc.InitialState)...)
	}

	if raw, ok := root["events"]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			issues = append(issues, Issue{Path: "events", Message: "expected array", Code: CodeInvalidType})
		} else {
			doc.Events = make([]Event, 0, len(items))
			for i, item := range items {
				event, eventIssues := decodeEvent(item, fmt.Sprintf("events.%d", i))
				issues = append(issues, eventIssues...)
				if event != nil {
					doc.Events = append(doc.Events, event)
				}
			}
		}
	}

	if raw, ok := root["finalState"]; ok {
		issues = append(issues, decodeState(raw, "finalState", &doc.FinalState)...)
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return doc, nil
}

// decodeState validates one file-system snapshot. The files array is
// required but may be empty; each snapshot is checked individually so
// paths point at the offending element.
func decodeState(raw json.RawMessage, prefix string, state *SessionState) []Issue {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return []Issue{{Path: prefix, Message: "expected object", Code: CodeInvalidType}}
	}

	var issues []Issue
	filesRaw, ok := m["files"]
	if !ok {
		issues = append(issues, Issue{Path: prefix + ".files", Message: "is required", Code: CodeRequired})
	} else {
		var items []json.RawMessage
		if err := json.Unmarshal(filesRaw, &items); err != nil {
			issues = append(issues, Issue{Path: prefix + ".files", Message: "expected array", Code: CodeInvalidType})
		} else {
			state.Files = make([]FileSnapshot, 0, len(items))
			for i, item := range items {
				var snap FileSnapshot
				snapPrefix := fmt.Sprintf("%s.files.%d", prefix, i)
				issues = append(issues, checkObject(item, snapPrefix, snapshotRequired, &snap)...)
				state.Files = append(state.Files, snap)
			}
		}
	}

	if treeRaw, ok := m["fileTree"]; ok {
		if err := json.Unmarshal(treeRaw, &state.FileTree); err != nil {
			issues = append(issues, Issue{Path: prefix + ".fileTree", Message: "expected array of strings", Code: CodeInvalidType})
		}
	}
	return issues
}

func decodeEvent(raw json.RawMessage, prefix string) (Event, []Issue) {
	kind, issues := entryDiscriminant(raw, prefix)
	if issues != nil {
		return nil, issues
	}

	eventType := EventType(kind)
	if !validEventType(eventType) {
		return nil, []Issue{{
			Path:    prefix + ".type",
			Message: fmt.Sprintf("%q is not a valid event type for version %s", kind, VersionV1),
			Code:    CodeInvalidUnion,
		}}
	}

	required := eventRequired[eventType]
	switch eventType {
	case EventPrompt:
		var e PromptEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventAIResponse:
		var e AIResponseEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventCodeChange:
		var e CodeChangeEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventFileCreate:
		var e FileCreateEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventFileDelete:
		var e FileDeleteEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventFileRename:
		var e FileRenameEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventTerminal:
		var e TerminalEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventNote:
		var e NoteEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	case EventCheckpoint:
		var e CheckpointEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	default:
		var e ErrorEvent
		issues = checkObject(raw, prefix, required, &e)
		return e, issues
	}
}

// entryDiscriminant extracts the type field of one entry. A non-nil
// issue slice means the entry cannot be dispatched at all.
func entryDiscriminant(raw json.RawMessage, prefix string) (string, []Issue) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return "", []Issue{{Path: prefix, Message: "expected object", Code: CodeInvalidType}}
	}
	kindRaw, ok := m["type"]
	if !ok {
		return "", []Issue{{Path: prefix + ".type", Message: "is required", Code: CodeRequired}}
	}
	var kind string
	if err := json.Unmarshal(kindRaw, &kind); err != nil {
		return "", []Issue{{Path: prefix + ".type", Message: "expected string", Code: CodeInvalidType}}
	}
	return kind, nil
}

func keyIsNull(raw json.RawMessage, key string) bool {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	v, ok := m[key]
	return ok && string(v) == "null"
}
