// Package lang implements catlang, a small expression language with integer
// arithmetic, let bindings, lexical blocks, and single-expression functions.
//
// Source text is parsed by a hand-written recursive-descent parser into an
// immutable [Tree], which is evaluated by walking it against a chain of
// [Env] scopes.
//
// # Grammar
//
// Informal EBNF. WS is any run of whitespace, BLANK is a space or tab.
//
//	script    → WS? (stmt WS?)*
//	stmt      → funcdef | bindingdef | expr
//	funcdef   → "fn" WS id WS? (id WS?)* "=>" WS? stmt
//	bindingdef→ "let" WS id WS? "=" WS? expr
//	expr      → nonop WS? op WS? nonop | nonop
//	nonop     → number | funccall | id | block
//	funccall  → id (BLANK+ expr)+
//	block     → "{" WS? (stmt WS?)* "}"
//	op        → "+" | "-" | "*" | "/" | "|"
//	number    → [0-9]+
//	id        → [A-Za-z] (letter | digit | "_")*
//
// Operators have no precedence and do not chain: an operation has exactly
// one operator, and either operand may be a block. Function arguments extend
// as far to the right as the line allows, so "add x y" calls add with the
// single argument "x y".
//
// # Values
//
// Every expression evaluates to a number (int64 with wrapping arithmetic),
// a boolean (only produced by "|", "a | b" reports whether b divides a), or
// Unit. Definitions evaluate to Unit.
//
// # Example
//
//	fn add x y => x + y
//	let seven = add 3 4
//	{
//	  let seven = 8
//	  seven
//	}
//	seven
//	{ 1 + 2 } * 3
//	12 | 4
//
// # Scoping
//
// Definitions bind in the current scope, replacing any earlier definition of
// the same name in that scope. Blocks and calls evaluate in a child scope, so
// their definitions are invisible once they return. Bindings and functions
// are resolved independently: a binding lookup skips functions, and a
// function lookup skips bindings. A name that resolves to no binding but to a
// function is called with no arguments.
package lang
