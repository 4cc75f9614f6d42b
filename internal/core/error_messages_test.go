package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error", nil, ""},

		// Database
		{"postgres duplicate key", errors.New(`ERROR: duplicate key value violates unique constraint "customers_pkey"`), "DB001"},
		{"sqlite duplicate key", errors.New("UNIQUE constraint failed: offices.officeCode"), "DB001"},
		{"unique constraint", errors.New("unique constraint on email"), "DB002"},
		{"foreign key", errors.New(`insert violates foreign key constraint "orders_customer_fk"`), "DB003"},
		{"not null", errors.New(`null value in column "city" violates not-null constraint`), "DB008"},
		{"connection refused", errors.New("dial tcp 127.0.0.1:5432: connection refused"), "DB004"},
		{"connection reset", errors.New("read: connection reset by peer"), "DB005"},
		{"timeout", errors.New("i/o timeout"), "DB006"},
		{"deadlock", errors.New("deadlock detected"), "DB007"},
		{"wrapped query error", &QueryError{Op: "select", Err: errors.New("syntax error at or near")}, "DB000"},

		// Validation
		{"invalid date", errors.New("invalid date for orderdate"), "VAL001"},
		{"invalid number", errors.New("invalid number for amount"), "VAL002"},
		{"required", ValidationErrors{{Field: "city", Message: "required field is empty"}}, "VAL003"},
		{"email", ValidationErrors{{Field: "email", Message: "invalid email address"}}, "VAL004"},
		{"passwords", ValidationErrors{{Field: "confirm_password", Message: "Passwords do not match"}}, "VAL005"},
		{"unknown field", invalid("fieldname", "unknown field nope"), "VAL006"},
		{"other validation", invalid("recid", "value is too long"), "VAL000"},

		// Lookup
		{"not found", fmt.Errorf("customers 1: %w", ErrNotFound), "NF001"},
		{"unknown entity", fmt.Errorf("%w: widgets", ErrUnknownEntity), "ENT001"},
		{"unknown option list", fmt.Errorf("%w: nope", ErrUnknownOptionList), "ENT002"},

		// Export and request
		{"unsupported format", errors.New("unsupported export format: docx"), "EXP001"},
		{"too many exports", errors.New("too many exports in progress"), "EXP002"},
		{"cancelled", context.Canceled, "REQ001"},
		{"deadline", context.DeadlineExceeded, "REQ002"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},

		// Fallback
		{"unknown", errors.New("something odd"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestMapError_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New("duplicate key"), "A record with this key already exists"},
		{ErrNotFound, "Record not found"},
		{ErrUnknownEntity, "Page not found"},
		{errors.New("boom"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		if got := MapError(tt.err).Message; got != tt.want {
			t.Errorf("MapError(%v).Message = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestMapError_ActionsPresent(t *testing.T) {
	for _, ep := range errorPatterns {
		if ep.msg.Message == "" || ep.msg.Action == "" || ep.msg.Code == "" {
			t.Errorf("pattern %q has an incomplete message: %+v", ep.pattern, ep.msg)
		}
		if ep.pattern != strings.ToLower(ep.pattern) {
			t.Errorf("pattern %q must be lowercase", ep.pattern)
		}
	}
}

func TestFormatUserError(t *testing.T) {
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}

	got := FormatUserError(ErrNotFound)
	want := "Record not found (Code: NF001). " + MapError(ErrNotFound).Action
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("duplicate key"), true},
		{ErrNotFound, true},
		{errors.New("panic: nil map"), false},
	}

	for _, tt := range tests {
		if got := IsUserFacing(tt.err); got != tt.want {
			t.Errorf("IsUserFacing(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
