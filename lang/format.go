package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes t in native syntax to w, one top-level statement per line.
//
// With indent > 0, non-empty blocks are expanded so that each of their
// statements sits on its own line indented by indent spaces per level. The
// expanded form parses back to the same tree. With indent <= 0 every
// statement is rendered on a single line.
func (t *Tree) Format(_ context.Context, w io.Writer, indent int) error {
	var sb strings.Builder

	for _, stmt := range t.Statements {
		if indent > 0 {
			formatStatement(&sb, stmt, indent, 0)
		} else {
			sb.WriteString(stmt.String())
		}

		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func formatStatement(sb *strings.Builder, stmt Statement, indent, depth int) {
	switch s := stmt.(type) {
	case *BindingDef:
		sb.WriteString("let ")
		sb.WriteString(s.Name)
		sb.WriteString(" = ")
		formatExpr(sb, s.Value, indent, depth)

	case *FuncDef:
		sb.WriteString("fn ")
		sb.WriteString(s.Name)

		for _, p := range s.Params {
			sb.WriteByte(' ')
			sb.WriteString(p)
		}

		sb.WriteString(" => ")
		formatStatement(sb, s.Body, indent, depth)

	case *ExprStmt:
		formatExpr(sb, s.Expr, indent, depth)
	}
}

func formatExpr(sb *strings.Builder, expr Expr, indent, depth int) {
	switch x := expr.(type) {
	case *Operation:
		formatExpr(sb, x.LHS, indent, depth)
		sb.WriteByte(' ')
		sb.WriteString(x.Op.String())
		sb.WriteByte(' ')
		formatExpr(sb, x.RHS, indent, depth)

	case *FuncCall:
		sb.WriteString(x.Callee)

		for _, p := range x.Params {
			sb.WriteByte(' ')
			formatExpr(sb, p, indent, depth)
		}

	case *Block:
		if len(x.Statements) == 0 {
			sb.WriteString("{ }")

			return
		}

		sb.WriteString("{\n")

		for _, s := range x.Statements {
			sb.WriteString(strings.Repeat(" ", (depth+1)*indent))
			formatStatement(sb, s, indent, depth+1)
			sb.WriteByte('\n')
		}

		sb.WriteString(strings.Repeat(" ", depth*indent))
		sb.WriteByte('}')

	default:
		sb.WriteString(expr.String())
	}
}

// FormatJSON writes the AST of t as JSON to w.
func (t *Tree) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(t, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(t)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the AST of t as YAML to w.
func (t *Tree) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, t.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Print writes an indented dump of the node structure of t to w.
func (t *Tree) Print(w io.Writer) error {
	var sb strings.Builder

	for _, stmt := range t.Statements {
		printNode(&sb, stmt, 0)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}

func printNode(sb *strings.Builder, node any, depth int) {
	pad := strings.Repeat("  ", depth)

	switch n := node.(type) {
	case *BindingDef:
		fmt.Fprintf(sb, "%sBindingDef %s\n", pad, n.Name)
		printNode(sb, n.Value, depth+1)

	case *FuncDef:
		fmt.Fprintf(sb, "%sFuncDef %s (%s)\n", pad, n.Name,
			strings.Join(n.Params, " "))
		printNode(sb, n.Body, depth+1)

	case *ExprStmt:
		fmt.Fprintf(sb, "%sExprStmt\n", pad)
		printNode(sb, n.Expr, depth+1)

	case *NumberLit:
		fmt.Fprintf(sb, "%sNumberLit %d\n", pad, n.Value)

	case *Operation:
		fmt.Fprintf(sb, "%sOperation %s\n", pad, n.Op)
		printNode(sb, n.LHS, depth+1)
		printNode(sb, n.RHS, depth+1)

	case *BindingUsage:
		fmt.Fprintf(sb, "%sBindingUsage %s\n", pad, n.Name)

	case *FuncCall:
		fmt.Fprintf(sb, "%sFuncCall %s\n", pad, n.Callee)

		for _, p := range n.Params {
			printNode(sb, p, depth+1)
		}

	case *Block:
		fmt.Fprintf(sb, "%sBlock\n", pad)

		for _, s := range n.Statements {
			printNode(sb, s, depth+1)
		}
	}
}
