package core

// validation.go checks create and update input against an entity's field
// declarations before anything reaches the store.
//
// Create validates every declared field: required fields must be present
// and non-blank. Update validates only the fields present in the input,
// and a required field may not be blanked. Type checks (numeric, email,
// date) apply to every non-blank value in both modes.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-openapi/strfmt"
)

// Input is sanitized request input keyed by logical field name.
// A present key with an empty value means the caller sent a blank or null.
type Input map[string]string

// NormalizeInput converts a decoded JSON object into Input. Strings are
// trimmed, null becomes blank, numbers and booleans are formatted.
func NormalizeInput(raw map[string]any) Input {
	in := make(Input, len(raw))
	for k, v := range raw {
		key := strings.ToLower(strings.TrimSpace(k))
		switch val := v.(type) {
		case nil:
			in[key] = ""
		case string:
			in[key] = strings.TrimSpace(val)
		case float64:
			in[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			in[key] = strconv.FormatBool(val)
		default:
			in[key] = strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return in
}

// Mode selects create or update validation.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// RecordValidator validates input for one entity.
type RecordValidator struct {
	entity *Entity
	mode   Mode
}

// NewRecordValidator creates a validator for the given entity and mode.
func NewRecordValidator(e *Entity, mode Mode) *RecordValidator {
	return &RecordValidator{entity: e, mode: mode}
}

// Validate returns every field error in the input, or nil.
// Errors are ordered by field declaration, then confirmations.
func (v *RecordValidator) Validate(in Input) ValidationErrors {
	var errs ValidationErrors

	for _, f := range v.entity.Fields {
		if f.AutoIncrement {
			continue
		}
		if v.mode == ModeUpdate && f.WriteOnly {
			continue
		}

		value, present := in[f.Name]
		if f.Required && value == "" && (v.mode == ModeCreate || present) {
			errs = append(errs, FieldError{Field: f.Name, Message: "required field is empty"})
			continue
		}
		if value == "" {
			continue
		}

		if msg := checkValue(f, value); msg != "" {
			errs = append(errs, FieldError{Field: f.Name, Message: msg})
		}
	}

	if v.mode == ModeCreate {
		for _, c := range v.entity.Confirmations {
			if in[c.Field] != in[c.Matches] {
				errs = append(errs, FieldError{Field: c.Field, Message: c.Message})
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// checkValue applies shape checks to a non-blank value.
func checkValue(f FieldSpec, value string) string {
	if f.Numeric && !IsNumeric(value) {
		return "invalid number"
	}
	if f.Email && !strfmt.IsEmail(value) {
		return "invalid email address"
	}
	if _, err := ConvertValue(f, value); err != nil {
		if f.Type == FieldDate {
			return "invalid date"
		}
		return "invalid number"
	}
	return ""
}

// UnknownFields lists input keys that match no declared field or
// confirmation. They are ignored by create and update.
func (v *RecordValidator) UnknownFields(in Input) []string {
	known := make(map[string]bool, len(v.entity.Fields))
	for _, f := range v.entity.Fields {
		known[f.Name] = true
	}
	for _, c := range v.entity.Confirmations {
		known[c.Field] = true
	}

	var unknown []string
	for k := range in {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}
