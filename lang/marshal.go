package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Tree.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToMap())
}

// ToMap converts the AST of t to native Go maps and slices.
//
// Each node becomes a map with a "node" key naming its type and one key per
// field, so the result can be encoded by any generic serializer.
func (t *Tree) ToMap() map[string]any {
	stmts := make([]any, len(t.Statements))
	for i, stmt := range t.Statements {
		stmts[i] = ToNative(stmt)
	}

	return map[string]any{"statements": stmts}
}

// ToNative converts a single [Statement] or [Expr] node to native Go maps
// and slices. Any other value converts to nil.
func ToNative(node any) any {
	switch n := node.(type) {
	case *BindingDef:
		return map[string]any{
			"node":  "binding",
			"name":  n.Name,
			"value": ToNative(n.Value),
		}

	case *FuncDef:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}

		return map[string]any{
			"node":   "function",
			"name":   n.Name,
			"params": params,
			"body":   ToNative(n.Body),
		}

	case *ExprStmt:
		return ToNative(n.Expr)

	case *NumberLit:
		return map[string]any{
			"node":  "number",
			"value": n.Value,
		}

	case *Operation:
		return map[string]any{
			"node": "operation",
			"op":   n.Op.String(),
			"lhs":  ToNative(n.LHS),
			"rhs":  ToNative(n.RHS),
		}

	case *BindingUsage:
		return map[string]any{
			"node": "usage",
			"name": n.Name,
		}

	case *FuncCall:
		args := make([]any, len(n.Params))
		for i, p := range n.Params {
			args[i] = ToNative(p)
		}

		return map[string]any{
			"node":   "call",
			"callee": n.Callee,
			"args":   args,
		}

	case *Block:
		stmts := make([]any, len(n.Statements))
		for i, s := range n.Statements {
			stmts[i] = ToNative(s)
		}

		return map[string]any{
			"node":       "block",
			"statements": stmts,
		}

	default:
		return nil
	}
}
