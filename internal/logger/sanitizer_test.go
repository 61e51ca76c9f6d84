package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizer_MaskParams_DefaultFields(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		params []interface{}
		want   []interface{}
	}{
		{
			name:   "password field",
			sql:    `UPDATE "users" SET "password" = ? WHERE "id" = ?`,
			params: []interface{}{"secret123", 1},
			want:   []interface{}{"***REDACTED***", "***REDACTED***"},
		},
		{
			name:   "token field",
			sql:    `INSERT INTO "sessions" ("user_id", "token") VALUES (?, ?)`,
			params: []interface{}{123, "abc-xyz-token"},
			want:   []interface{}{"***REDACTED***", "***REDACTED***"},
		},
		{
			name:   "api key field",
			sql:    `SELECT * FROM "integrations" WHERE "api_key" = ?`,
			params: []interface{}{"sk_test_123456"},
			want:   []interface{}{"***REDACTED***"},
		},
		{
			name:   "no sensitive fields",
			sql:    `SELECT * FROM "users" WHERE "id" = ? AND "name" = ?`,
			params: []interface{}{1, "Alice"},
			want:   []interface{}{1, "Alice"},
		},
		{
			name:   "case insensitive",
			sql:    `UPDATE "users" SET "PASSWORD" = ?`,
			params: []interface{}{"secret"},
			want:   []interface{}{"***REDACTED***"},
		},
		{
			name:   "empty params",
			sql:    `SELECT COUNT(*) FROM "users"`,
			params: []interface{}{},
			want:   []interface{}{},
		},
	}

	s := NewSanitizer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.MaskParams(tt.sql, tt.params)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizer_MaskParams_CustomFields(t *testing.T) {
	s := NewSanitizer([]string{"internal_code"})

	// custom field masks
	got := s.MaskParams(`SELECT * FROM "x" WHERE "internal_code" = ?`, []interface{}{"abc"})
	assert.Equal(t, []interface{}{"***REDACTED***"}, got)

	// default fields no longer apply
	got = s.MaskParams(`UPDATE "users" SET "password" = ?`, []interface{}{"secret"})
	assert.Equal(t, []interface{}{"secret"}, got)
}

func TestSanitizer_MaskParams_NoFalseSubstringMatch(t *testing.T) {
	s := NewSanitizer(nil)

	// "authority" contains "auth" but word boundaries prevent a match
	got := s.MaskParams(`SELECT * FROM "authority_records" WHERE "id" = ?`, []interface{}{1})
	assert.Equal(t, []interface{}{1}, got)
}

func TestSanitizer_MaskParams_DoesNotMutateInput(t *testing.T) {
	s := NewSanitizer(nil)
	params := []interface{}{"secret", 1}

	_ = s.MaskParams(`UPDATE "users" SET "password" = ? WHERE "id" = ?`, params)
	assert.Equal(t, []interface{}{"secret", 1}, params)
}

func TestSanitizer_FormatParams(t *testing.T) {
	s := NewSanitizer(nil)

	assert.Equal(t, "[]", s.FormatParams(nil))
	assert.Equal(t, "[1, Alice, NULL]", s.FormatParams([]interface{}{1, "Alice", nil}))
}

func TestSanitizer_FormatParams_TruncatesLongValues(t *testing.T) {
	s := NewSanitizer(nil)

	long := strings.Repeat("x", 250)
	out := s.FormatParams([]interface{}{long})
	assert.True(t, strings.HasSuffix(out, "...]"))
	assert.Less(t, len(out), 120)
}
