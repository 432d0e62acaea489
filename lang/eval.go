package lang

import (
	"context"
	"fmt"
	"log/slog"
)

// Eval evaluates stmt against e.
//
// Definitions modify e; blocks and function calls evaluate in child scopes
// that are discarded on return. The context is used for logging only.
func (e *Env) Eval(ctx context.Context, stmt Statement) (Value, error) {
	return e.evalStatement(ctx, stmt)
}

// EvalExpr evaluates expr against e.
func (e *Env) EvalExpr(ctx context.Context, expr Expr) (Value, error) {
	return e.evalExpr(ctx, expr)
}

func (e *Env) evalStatement(ctx context.Context, stmt Statement) (Value, error) {
	switch s := stmt.(type) {
	case *BindingDef:
		v, err := e.evalExpr(ctx, s.Value)
		if err != nil {
			return Unit, err
		}

		e.AddBinding(s.Name, v)
		e.opts.logger.TraceContext(ctx, "bind",
			slog.String("name", s.Name),
			slog.Any("value", v),
		)

		return Unit, nil

	case *FuncDef:
		e.AddFunc(s.Name, s.Params, s.Body)
		e.opts.logger.TraceContext(ctx, "define",
			slog.String("name", s.Name),
			slog.Int("arity", len(s.Params)),
		)

		return Unit, nil

	case *ExprStmt:
		return e.evalExpr(ctx, s.Expr)

	default:
		panic(fmt.Sprintf("lang: unexpected statement %T", stmt))
	}
}

func (e *Env) evalExpr(ctx context.Context, expr Expr) (Value, error) {
	switch x := expr.(type) {
	case *NumberLit:
		return Number(x.Value), nil

	case *Operation:
		return e.evalOperation(ctx, x)

	case *BindingUsage:
		return e.evalBindingUsage(ctx, x)

	case *FuncCall:
		return e.call(ctx, x.Callee, x.Params)

	case *Block:
		return e.evalBlock(ctx, x)

	default:
		panic(fmt.Sprintf("lang: unexpected expression %T", expr))
	}
}

func (e *Env) evalOperation(ctx context.Context, o *Operation) (Value, error) {
	lv, err := e.evalExpr(ctx, o.LHS)
	if err != nil {
		return Unit, err
	}

	rv, err := e.evalExpr(ctx, o.RHS)
	if err != nil {
		return Unit, err
	}

	l, lok := lv.Number()
	r, rok := rv.Number()

	if !lok || !rok {
		return Unit, ErrTypeMismatch.
			With(slog.String("op", o.Op.String())).
			Wrapf("%s %s %s", lv.Kind(), o.Op, rv.Kind())
	}

	switch o.Op {
	case OpAdd:
		return Number(l + r), nil

	case OpSub:
		return Number(l - r), nil

	case OpMul:
		return Number(l * r), nil

	case OpDiv:
		if r == 0 {
			return Unit, ErrDivisionByZero.Wrapf("%d / 0", l)
		}

		return Number(l / r), nil

	case OpDivisibleBy:
		if r == 0 {
			return Unit, ErrDivisionByZero.Wrapf("%d | 0", l)
		}

		return Bool(l%r == 0), nil

	default:
		panic(fmt.Sprintf("lang: unexpected operator %d", o.Op))
	}
}

// evalBindingUsage resolves a name as a binding, falling back to calling a
// function of the same name with no arguments.
func (e *Env) evalBindingUsage(ctx context.Context, b *BindingUsage) (Value, error) {
	v, err := e.GetBinding(b.Name)
	if err == nil {
		return v, nil
	}

	if _, ferr := e.GetFunc(b.Name); ferr != nil {
		return Unit, err
	}

	return e.call(ctx, b.Name, nil)
}

// call invokes the named function. Arguments are evaluated in order in the
// call's own scope, each bound to its parameter before the next is
// evaluated, and the body runs in that same scope.
func (e *Env) call(ctx context.Context, name string, args []Expr) (Value, error) {
	fn, err := e.GetFunc(name)
	if err != nil {
		return Unit, err
	}

	if len(fn.Params) != len(args) {
		return Unit, ErrArityMismatch.
			With(
				slog.String("name", name),
				slog.Int("expected", len(fn.Params)),
				slog.Int("received", len(args)),
			).
			Wrapf("function `%s` expected %d args but received %d",
				name, len(fn.Params), len(args))
	}

	child := e.Child()
	child.depth++

	if child.depth > e.opts.maxDepth {
		return Unit, ErrMaxDepthExceeded.
			With(slog.String("name", name)).
			Wrapf("calling `%s` at depth %d", name, child.depth)
	}

	e.opts.logger.TraceContext(ctx, "call",
		slog.String("name", name),
		slog.Int("depth", child.depth),
	)

	for i, param := range fn.Params {
		v, err := child.evalExpr(ctx, args[i])
		if err != nil {
			return Unit, err
		}

		child.AddBinding(param, v)
	}

	return child.evalStatement(ctx, fn.Body)
}

func (e *Env) evalBlock(ctx context.Context, b *Block) (Value, error) {
	if len(b.Statements) == 0 {
		return Unit, nil
	}

	child := e.Child()
	last := len(b.Statements) - 1

	for _, stmt := range b.Statements[:last] {
		if _, err := child.evalStatement(ctx, stmt); err != nil {
			return Unit, err
		}
	}

	return child.evalStatement(ctx, b.Statements[last])
}
