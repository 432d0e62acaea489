package lang

//go:generate go tool stringer --linecomment --type Kind,Op --output lang_string.go

import (
	"log/slog"
	"strconv"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindUnit   Kind = iota // unit
	KindNumber             // number
	KindBool               // bool
)

// Value is the result of evaluating a statement or expression.
// The zero Value is Unit.
type Value struct {
	num  int64
	kind Kind
	b    bool
}

// Unit is the value of statements and blocks without a meaningful result.
var Unit = Value{}

// Number returns a number value.
func Number(n int64) Value { return Value{kind: KindNumber, num: n} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsUnit reports whether v is Unit.
func (v Value) IsUnit() bool { return v.kind == KindUnit }

// Number returns the integer held by v and whether v is a number.
func (v Value) Number() (int64, bool) { return v.num, v.kind == KindNumber }

// Bool returns the boolean held by v and whether v is a boolean.
func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

// String renders v the way the REPL prints it.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatInt(v.num, 10)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "Unit"
	}
}

// Native returns v as a Go value: int64, bool, or nil for Unit.
func (v Value) Native() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// LogValue implements slog.LogValuer.
func (v Value) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", v.kind.String()),
		slog.String("value", v.String()),
	)
}
