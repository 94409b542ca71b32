package schema

import "encoding/json"

// Parse decodes raw into the typed document for its declared version.
// Malformed JSON fails with *SyntaxError; a well-formed document that
// breaks the schema fails with *SchemaError carrying every issue.
func Parse(raw []byte) (Document, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	doc, issues := decodeDocument(raw)
	if len(issues) > 0 {
		return nil, &SchemaError{Issues: issues}
	}
	return doc, nil
}

// SafeParse is Parse for callers that only care whether the document is
// usable: any failure collapses to nil.
func SafeParse(raw []byte) Document {
	doc, err := Parse(raw)
	if err != nil {
		return nil
	}
	return doc
}
