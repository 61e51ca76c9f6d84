package core

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// LiteralKind identifies the scalar category of a bound value.
type LiteralKind uint8

// Supported literal kinds. KindUnsupported marks values the compiler refuses
// to hand to a database driver.
const (
	KindNull LiteralKind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindTime
	KindValuer
	KindUnsupported
)

// String returns the kind name for error messages and logs.
func (k LiteralKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	case KindValuer:
		return "valuer"
	default:
		return "unsupported"
	}
}

// Literal wraps a scalar value tagged with its kind.
// Construction never fails; unsupported kinds are rejected at compile time.
// A Literal carries no identifier semantics and is immutable once constructed.
type Literal struct {
	value any
	kind  LiteralKind
}

// NewLiteral wraps a value as a tagged literal.
func NewLiteral(value any) Literal {
	return Literal{value: value, kind: kindOf(value)}
}

// Value returns the wrapped scalar for driver hand-off.
func (l Literal) Value() any {
	return l.value
}

// Kind returns the tagged scalar kind.
func (l Literal) Kind() LiteralKind {
	return l.kind
}

// kindOf classifies a Go value into a literal kind.
func kindOf(value any) LiteralKind {
	switch value.(type) {
	case nil:
		return KindNull
	case bool:
		return KindBool
	case int, int8, int16, int32, int64:
		return KindInt
	case uint, uint8, uint16, uint32, uint64:
		return KindUint
	case float32, float64:
		return KindFloat
	case string:
		return KindString
	case []byte:
		return KindBytes
	case time.Time:
		return KindTime
	case driver.Valuer:
		return KindValuer
	default:
		return KindUnsupported
	}
}

// checkParam validates a single bound value and unwraps explicit Literal
// wrappers. Returns the driver-ready value or ErrUnsupportedLiteral.
func checkParam(value any) (any, error) {
	if lit, ok := value.(Literal); ok {
		value = lit.Value()
	}
	if kindOf(value) == KindUnsupported {
		return nil, WrapError(ErrUnsupportedLiteral, fmt.Sprintf("value of type %T", value))
	}
	return value, nil
}

// checkParams validates all bound values, preserving order. It always
// returns a fresh slice: expression nodes hand out their own args slices,
// and Build must never write through them.
func checkParams(params []any) ([]any, error) {
	if params == nil {
		return nil, nil
	}
	out := make([]any, len(params))
	for i, p := range params {
		v, err := checkParam(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
