// Package security provides an injection audit for compiled SQL.
// Structured clauses cannot produce injection-shaped text; the audit exists
// for callers who route user input through the raw fragment escape hatch.
package security

import (
	"fmt"
	"regexp"
)

// Validator checks compiled SQL text against dangerous patterns.
type Validator struct {
	patterns []*regexp.Regexp
	strict   bool
}

// ValidatorOption configures the Validator.
type ValidatorOption func(*Validator)

// WithStrict enables strict validation mode (more aggressive).
func WithStrict(strict bool) ValidatorOption {
	return func(v *Validator) {
		v.strict = strict
	}
}

// NewValidator creates a validator with default dangerous patterns.
func NewValidator(opts ...ValidatorOption) *Validator {
	v := &Validator{
		patterns: compilePatterns(dangerousPatterns),
	}

	for _, opt := range opts {
		opt(v)
	}

	if v.strict {
		v.patterns = append(v.patterns, compilePatterns(strictPatterns)...)
	}

	return v
}

// dangerousPatterns contains SQL injection shapes that never appear in SQL
// produced from structured clauses. A match means a raw fragment carried them in.
var dangerousPatterns = []string{
	// SQL comment indicators (used to bypass security)
	`--[\s]`,   // SQL comment (with space after)
	`/\*.*\*/`, // C-style comment
	`#[\s]`,    // MySQL comment (with space after)

	// Stacked queries (multiple statements)
	`(?i);\s*DROP\s+`,
	`(?i);\s*DELETE\s+`,
	`(?i);\s*TRUNCATE\s+`,
	`(?i);\s*ALTER\s+`,
	`(?i);\s*CREATE\s+`,
	`(?i);\s*INSERT\s+`,
	`(?i);\s*UPDATE\s+`,

	// Classic tautologies smuggled in as text
	`(?i)\bOR\s+'1'\s*=\s*'1'`,
	`(?i)\bOR\s+1\s*=\s*1\b`,

	// Time-based probes
	`(?i)\bSLEEP\s*\(`,
	`(?i)\bPG_SLEEP\s*\(`,
	`(?i)\bBENCHMARK\s*\(`,
}

// strictPatterns contains additional patterns for strict mode.
// These can false-positive on legitimate raw fragments.
var strictPatterns = []string{
	`(?i)\bUNION\s+(ALL\s+)?SELECT\b`,
	`(?i)\bINTO\s+OUTFILE\b`,
	`(?i)\bLOAD_FILE\s*\(`,
	`(?i)\bINFORMATION_SCHEMA\b`,
}

func compilePatterns(raw []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(raw))
	for _, p := range raw {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return patterns
}

// Check audits a compiled SQL string.
// Returns a descriptive error when an injection-shaped fragment is found.
func (v *Validator) Check(sql string) error {
	for _, pattern := range v.patterns {
		if pattern.MatchString(sql) {
			return fmt.Errorf("query matches dangerous pattern %q", pattern.String())
		}
	}
	return nil
}
