package core

import (
	"context"
	"time"

	"github.com/coregx/sqlforge/internal/dialects"
	"github.com/coregx/sqlforge/internal/logger"
	"github.com/coregx/sqlforge/internal/security"
	"github.com/coregx/sqlforge/internal/tracer"
)

// Compiler is a configured compile front-end: a dialect plus optional
// logging, tracing, and raw-fragment auditing. The Compiler holds no mutable
// state across calls; Compile is a pure traversal and is safe for concurrent
// use.
type Compiler struct {
	dialect     dialects.Dialect
	dialectName string
	logger      logger.Logger
	sanitizer   *logger.Sanitizer
	tracer      tracer.Tracer
	validator   *security.Validator
}

// Option is a functional option for configuring a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger used to debug-log compiled queries.
func WithLogger(l logger.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithTracer sets the tracer used to wrap each compilation in a span.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Compiler) {
		c.tracer = t
	}
}

// WithValidator sets a security validator that audits every compiled query.
// Queries containing injection-shaped fragments fail with ErrUnsafeFragment.
// Only raw fragments can introduce such content; structured clauses cannot.
func WithValidator(v *security.Validator) Option {
	return func(c *Compiler) {
		c.validator = v
	}
}

// WithSensitiveFields overrides the column names whose bound values are
// masked in logs.
func WithSensitiveFields(fields ...string) Option {
	return func(c *Compiler) {
		c.sanitizer = logger.NewSanitizer(fields)
	}
}

// NewCompiler creates a Compiler for the named dialect
// (generic, postgres, mysql, or sqlite). Unknown names fail with
// ErrUnsupportedDialect.
func NewCompiler(dialectName string, opts ...Option) (*Compiler, error) {
	d, ok := dialects.FindDialect(dialectName)
	if !ok {
		return nil, WrapError(ErrUnsupportedDialect, dialectName)
	}

	c := &Compiler{
		dialect:     d,
		dialectName: dialectName,
		logger:      &logger.NoopLogger{},
		sanitizer:   logger.NewSanitizer(nil),
		tracer:      &tracer.NoopTracer{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Dialect returns the dialect the compiler renders for.
func (c *Compiler) Dialect() dialects.Dialect {
	return c.dialect
}

// Compile renders the statement into a CompiledQuery.
// Equivalent to Statement.Build plus the configured audit, span, and debug
// log. The context carries the trace; no operation blocks.
func (c *Compiler) Compile(ctx context.Context, s *Statement) (*CompiledQuery, error) {
	_, span := c.tracer.StartSpan(ctx, "sqlforge.compile")
	defer span.End()

	start := time.Now()
	q, err := s.Build(c.dialect)
	elapsed := time.Since(start)

	if err == nil && c.validator != nil {
		if verr := c.validator.Check(q.SQL); verr != nil {
			err = WrapError(ErrUnsafeFragment, verr.Error())
		}
	}

	meta := &tracer.CompileMetadata{
		Dialect:    c.dialectName,
		Operation:  s.Kind().String(),
		Duration:   elapsed,
		Error:      err,
		ParamCount: -1,
	}
	if q != nil {
		meta.SQL = q.SQL
		meta.ParamCount = len(q.Params)
	}
	tracer.AddCompileAttributes(span, meta)

	if err != nil {
		span.RecordError(err)
		c.logger.Error("compile failed",
			"operation", s.Kind().String(),
			"dialect", c.dialectName,
			"error", err,
		)
		return nil, err
	}

	masked := c.sanitizer.FormatParams(c.sanitizer.MaskParams(q.SQL, q.Params))
	c.logger.Debug("statement compiled",
		"sql", q.SQL,
		"params", masked,
		"param_count", len(q.Params),
		"duration_us", elapsed.Microseconds(),
		"dialect", c.dialectName,
	)

	return q, nil
}

// CompileQuery renders a named-parameter query template.
// Same observability treatment as Compile.
func (c *Compiler) CompileQuery(ctx context.Context, q *RawQuery) (*CompiledQuery, error) {
	_, span := c.tracer.StartSpan(ctx, "sqlforge.compile_query")
	defer span.End()

	start := time.Now()
	out, err := q.Build(c.dialect)
	elapsed := time.Since(start)

	if err == nil && c.validator != nil {
		if verr := c.validator.Check(out.SQL); verr != nil {
			err = WrapError(ErrUnsafeFragment, verr.Error())
		}
	}

	if err != nil {
		span.RecordError(err)
		c.logger.Error("template compile failed",
			"dialect", c.dialectName,
			"error", err,
		)
		return nil, err
	}

	masked := c.sanitizer.FormatParams(c.sanitizer.MaskParams(out.SQL, out.Params))
	c.logger.Debug("template compiled",
		"sql", out.SQL,
		"params", masked,
		"param_count", len(out.Params),
		"duration_us", elapsed.Microseconds(),
		"dialect", c.dialectName,
	)

	return out, nil
}
