package handler

import (
	"errors"
	"testing"
	"time"
)

func TestParseErrorCode(t *testing.T) {
	tests := []struct {
		err      string
		wantCode int
		wantMsg  string
	}{
		{"40402:project not found", 40402, "project not found"},
		{"50902:document removed but its file could not be deleted", 50902, "document removed but its file could not be deleted"},
		{"plain error", 50001, "plain error"},
		{"123:short prefix is not a code", 50001, "123:short prefix is not a code"},
	}
	for _, tt := range tests {
		code, msg := parseErrorCode(errors.New(tt.err))
		if code != tt.wantCode || msg != tt.wantMsg {
			t.Errorf("parseErrorCode(%q) = (%d, %q), want (%d, %q)", tt.err, code, msg, tt.wantCode, tt.wantMsg)
		}
	}
}

func TestParseDate(t *testing.T) {
	if d, ok := parseDate(""); !ok || d != nil {
		t.Error("empty date must be accepted as nil")
	}
	d, ok := parseDate("2026-09-15")
	if !ok || d == nil {
		t.Fatal("plain date rejected")
	}
	if d.Year() != 2026 || d.Month() != time.September || d.Day() != 15 {
		t.Errorf("parsed %v", d)
	}
	if _, ok := parseDate("2026-09-15T10:30:00Z"); !ok {
		t.Error("RFC3339 date rejected")
	}
	if _, ok := parseDate("15/09/2026"); ok {
		t.Error("unsupported format must be rejected")
	}
}

func TestParseID(t *testing.T) {
	if got := parseID("42"); got != 42 {
		t.Errorf("parseID(42) = %d", got)
	}
	if got := parseID("bogus"); got != 0 {
		t.Errorf("parseID(bogus) = %d", got)
	}
}
