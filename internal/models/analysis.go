package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Top-level document field names.
const (
	FieldCommitSHA        = "target_commit_sha"
	FieldCommitAuthor     = "commit_author"
	FieldCommitDate       = "commit_date"
	FieldParameterChanges = "parameter_changes"
	FieldRelatedIssues    = "related_issue_number_list"
)

// Parameter change field names, in the order they are checked.
const (
	FieldBefore     = "before"
	FieldAfter      = "after"
	FieldLineNumber = "line_number"
)

// RequiredChangeFields lists the keys every parameter change must carry.
var RequiredChangeFields = []string{FieldBefore, FieldAfter, FieldLineNumber}

// AnalysisDocument is the analysis result under verification. It is decoded
// once from the remote artifact and treated as read-only afterwards.
//
// JSON structure:
//
//	{
//	  "target_commit_sha": "0f4b0c1e...",
//	  "commit_author": "example-author",
//	  "commit_date": "2025-09-10",
//	  "parameter_changes": {
//	    "micro_batch_size_per_device_for_update": {"before": 4, "after": 2, "line_number": 120}
//	  },
//	  "related_issue_number_list": [101, 102]
//	}
type AnalysisDocument struct {
	TargetCommitSHA  string                     `json:"target_commit_sha"`
	CommitAuthor     string                     `json:"commit_author"`
	CommitDate       string                     `json:"commit_date"`
	ParameterChanges map[string]ParameterChange `json:"parameter_changes"`

	// RelatedIssues holds the raw list elements. Numbers decode as
	// json.Number so the positive-integer check can reject 101.5 or "101".
	RelatedIssues []interface{} `json:"related_issue_number_list"`

	// invalid holds top-level fields whose JSON type did not fit, keyed by
	// field name. The typed field is left zero and the owning check reports it.
	invalid map[string]interface{}
}

// UnmarshalJSON decodes each top-level field on its own, so a wrongly typed
// field is recorded instead of failing the whole document.
func (d *AnalysisDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("analysis document must be an object: %w", err)
	}

	*d = AnalysisDocument{}
	d.TargetCommitSHA = decodeField[string](d, raw, FieldCommitSHA)
	d.CommitAuthor = decodeField[string](d, raw, FieldCommitAuthor)
	d.CommitDate = decodeField[string](d, raw, FieldCommitDate)
	d.ParameterChanges = decodeField[map[string]ParameterChange](d, raw, FieldParameterChanges)
	d.RelatedIssues = decodeField[[]interface{}](d, raw, FieldRelatedIssues)
	return nil
}

// InvalidField returns the raw value of a top-level field whose JSON type
// did not match, and whether the field was wrongly typed.
func (d *AnalysisDocument) InvalidField(name string) (interface{}, bool) {
	v, ok := d.invalid[name]
	return v, ok
}

// decodeField decodes raw[key] into T. On a type mismatch the loosely
// decoded value is recorded on d and the zero T is returned.
func decodeField[T any](d *AnalysisDocument, raw map[string]json.RawMessage, key string) T {
	var typed T
	value, ok := raw[key]
	if !ok {
		return typed
	}
	if err := decodeNumber(value, &typed); err != nil {
		var loose interface{}
		_ = decodeNumber(value, &loose)
		if d.invalid == nil {
			d.invalid = make(map[string]interface{})
		}
		d.invalid[key] = loose
		var zero T
		return zero
	}
	return typed
}

// ParameterChange records one configuration parameter edit. Values keep their
// JSON type (json.Number, string, bool, nil); fields tracks which keys were
// present in the source, so an explicit null counts as present.
type ParameterChange struct {
	Before     interface{}
	After      interface{}
	LineNumber interface{}

	fields map[string]bool

	// malformed is set when the entry is not a JSON object
	malformed bool
}

// NewParameterChange builds a change with all three fields present.
func NewParameterChange(before, after, lineNumber interface{}) ParameterChange {
	return ParameterChange{
		Before:     before,
		After:      after,
		LineNumber: lineNumber,
		fields: map[string]bool{
			FieldBefore:     true,
			FieldAfter:      true,
			FieldLineNumber: true,
		},
	}
}

// Has reports whether the named field was present in the document.
func (p ParameterChange) Has(field string) bool {
	return p.fields[field]
}

// Malformed reports whether the entry was something other than an object.
func (p ParameterChange) Malformed() bool {
	return p.malformed
}

// MissingField returns the first required field absent from the change,
// or "" when the change is complete.
func (p ParameterChange) MissingField() string {
	for _, f := range RequiredChangeFields {
		if !p.Has(f) {
			return f
		}
	}
	return ""
}

// UnmarshalJSON records field presence alongside the decoded values. An
// entry that is not an object decodes as malformed rather than failing.
func (p *ParameterChange) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = ParameterChange{malformed: true}
		return nil
	}

	p.fields = make(map[string]bool, len(raw))
	for key, value := range raw {
		p.fields[key] = true

		var decoded interface{}
		if err := decodeNumber(value, &decoded); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
		switch key {
		case FieldBefore:
			p.Before = decoded
		case FieldAfter:
			p.After = decoded
		case FieldLineNumber:
			p.LineNumber = decoded
		}
	}
	return nil
}

// MarshalJSON writes only the fields that were present.
func (p ParameterChange) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, 3)
	if p.Has(FieldBefore) {
		out[FieldBefore] = p.Before
	}
	if p.Has(FieldAfter) {
		out[FieldAfter] = p.After
	}
	if p.Has(FieldLineNumber) {
		out[FieldLineNumber] = p.LineNumber
	}
	return json.Marshal(out)
}

// ParseAnalysisDocument decodes a JSON analysis document. Numbers are kept
// as json.Number so integer-ness is preserved.
func ParseAnalysisDocument(data []byte) (*AnalysisDocument, error) {
	var doc AnalysisDocument
	if err := decodeNumber(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// IsEmpty reports whether the document carries no data at all, as happens
// when the source is "null" or "{}".
func (d *AnalysisDocument) IsEmpty() bool {
	return d.TargetCommitSHA == "" && d.CommitAuthor == "" && d.CommitDate == "" &&
		len(d.ParameterChanges) == 0 && len(d.RelatedIssues) == 0 && len(d.invalid) == 0
}

// IssueNumber converts a related-issue list element to a positive integer.
// ok is false for anything that is not a positive whole number.
func IssueNumber(v interface{}) (n int, ok bool) {
	num, isNum := v.(json.Number)
	if !isNum {
		switch t := v.(type) {
		case int:
			return t, t > 0
		case int64:
			return int(t), t > 0
		}
		return 0, false
	}
	if strings.ContainsAny(num.String(), ".eE") {
		return 0, false
	}
	i, err := num.Int64()
	if err != nil || i <= 0 {
		return 0, false
	}
	return int(i), true
}

func decodeNumber(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}
