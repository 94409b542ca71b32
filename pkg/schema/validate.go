package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"buildlog/pkg/fileinfo"
)

// Default size-advisory thresholds. Exceeding them produces a warning,
// never an error; the bounds are advisory rather than enforced limits.
const (
	DefaultSlimWarnBytes = 1 << 20  // 1 MiB
	DefaultFullWarnBytes = 10 << 20 // 10 MiB
)

// Limits configures the size-advisory thresholds per capture format.
type Limits struct {
	SlimWarnBytes int
	FullWarnBytes int
}

// DefaultLimits returns the built-in advisory thresholds.
func DefaultLimits() Limits {
	return Limits{
		SlimWarnBytes: DefaultSlimWarnBytes,
		FullWarnBytes: DefaultFullWarnBytes,
	}
}

var fieldValidate = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names, not Go field names, in issue paths.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate applies the schema for the declared version to value and
// reports every problem found. It never returns an error: failures are
// values. value may be any JSON-compatible Go value, a json.RawMessage,
// or raw JSON bytes.
func Validate(value any) ValidationResult {
	return ValidateWithLimits(value, DefaultLimits())
}

// ValidateWithLimits is Validate with caller-supplied size-advisory
// thresholds.
func ValidateWithLimits(value any, limits Limits) ValidationResult {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return ValidationResult{Valid: false, Errors: []Issue{
			{Path: "", Message: "expected object, received null", Code: CodeInvalidType},
		}}
	case json.RawMessage:
		raw = v
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(value)
		if err != nil {
			return ValidationResult{Valid: false, Errors: []Issue{
				{Path: "", Message: "value is not JSON-serializable", Code: CodeInvalidType},
			}}
		}
		raw = b
	}

	doc, issues := decodeDocument(raw)
	if len(issues) > 0 {
		return ValidationResult{Valid: false, Errors: issues}
	}

	var warnings []Warning
	if v2, ok := doc.(*DocumentV2); ok {
		warnings = sizeWarnings(v2, limits)
	}
	return ValidationResult{Valid: true, Warnings: warnings}
}

// sizeWarnings measures the canonical serialized form of an already
// validated v2 document against the advisory threshold for its format.
func sizeWarnings(doc *DocumentV2, limits Limits) []Warning {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil
	}

	limit := limits.FullWarnBytes
	suggestion := "convert the document to slim format to reduce its size"
	if doc.Format == FormatSlim {
		limit = limits.SlimWarnBytes
		suggestion = "consider splitting the session into multiple buildlogs"
	}
	if limit <= 0 || len(b) <= limit {
		return nil
	}

	return []Warning{{
		Path: "",
		Message: fmt.Sprintf("%s document is %s, larger than the recommended %s",
			doc.Format, fileinfo.FormatBytes(len(b)), fileinfo.FormatBytes(limit)),
		Suggestion: suggestion,
	}}
}

// checkObject validates raw as a JSON object decoded into dst: presence
// of the required keys, field types, and the struct's validate tags.
// Issues for a field are suppressed once its key is known to be missing
// or mistyped, so each field surfaces one issue, not a cascade.
func checkObject(raw json.RawMessage, prefix string, required []string, dst any) []Issue {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return []Issue{{Path: prefix, Message: "expected object", Code: CodeInvalidType}}
	}

	var issues []Issue
	skip := map[string]bool{}
	for _, key := range required {
		if _, ok := m[key]; !ok {
			issues = append(issues, Issue{
				Path:    joinPath(prefix, key),
				Message: "is required",
				Code:    CodeRequired,
			})
			skip[key] = true
		}
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			issues = append(issues, Issue{
				Path:    joinPath(prefix, typeErr.Field),
				Message: fmt.Sprintf("expected %s, received %s", goTypeName(typeErr.Type), typeErr.Value),
				Code:    CodeInvalidType,
			})
			skip[firstSegment(typeErr.Field)] = true
		} else {
			issues = append(issues, Issue{
				Path:    prefix,
				Message: "could not be decoded",
				Code:    CodeInvalidType,
			})
			return issues
		}
	}

	for _, issue := range validateStruct(prefix, dst) {
		rel := strings.TrimPrefix(issue.Path, prefix)
		rel = strings.TrimPrefix(rel, ".")
		if skip[firstSegment(rel)] {
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

// validateStruct runs the registered field rules on dst and converts
// every failure into an Issue under prefix. All failing fields are
// reported, not just the first.
func validateStruct(prefix string, dst any) []Issue {
	err := fieldValidate.Struct(dst)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Path: prefix, Message: "could not be validated", Code: CodeInvalidType}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Path:    joinPath(prefix, fieldPath(fe)),
			Message: messageForTag(fe),
			Code:    codeForTag(fe.Tag()),
		})
	}
	return issues
}

// fieldPath strips the struct type name from the error namespace and
// normalises slice indices to dot-joined form ("tags[2]" -> "tags.2").
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	path = strings.NewReplacer("[", ".", "]", "").Replace(path)
	return path
}

func codeForTag(tag string) string {
	switch tag {
	case "required":
		return CodeRequired
	case "oneof":
		return CodeInvalidEnum
	case "min", "gte", "gt":
		return CodeTooSmall
	case "max", "lte", "lt":
		return CodeTooBig
	default:
		return CodeInvalidString
	}
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return "must be an ISO-8601 date-time string"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min", "gte":
		return "must be at least " + fe.Param() + unitForKind(fe.Kind())
	case "max", "lte":
		return "must be at most " + fe.Param() + unitForKind(fe.Kind())
	default:
		return "is invalid"
	}
}

func unitForKind(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	default:
		return ""
	}
}

func goTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Ptr:
		return goTypeName(t.Elem())
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	default:
		return t.Kind().String()
	}
}

func joinPath(prefix, rest string) string {
	switch {
	case prefix == "":
		return rest
	case rest == "":
		return prefix
	default:
		return prefix + "." + rest
	}
}

func firstSegment(path string) string {
	if idx := strings.Index(path, "."); idx >= 0 {
		return path[:idx]
	}
	return path
}
