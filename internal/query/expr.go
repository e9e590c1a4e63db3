// Package query builds PuppetDB query expressions.
//
// Expressions form a small typed tree (Equals, And, Extract) that serializes
// to the PuppetDB AST wire format:
//
//	query.Extract([]string{"hash", "end_time"}, query.Equals("certname", "n1"))
//	// ["extract",["hash","end_time"],["=","certname","n1"]]
//
// A nil Expr means "no filter". All constructors are pure.
package query

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Expr is a PuppetDB query expression.
type Expr interface {
	// AST returns the expression in PuppetDB's nested-array form.
	AST() []any
	// String renders the expression as an s-expression, e.g. (= certname n1).
	String() string
}

// EqualsExpr matches records whose field equals value.
type EqualsExpr struct {
	Field string
	Value any
}

// AndExpr matches records satisfying every sub-expression.
type AndExpr struct {
	Exprs []Expr
}

// ExtractExpr projects Fields from the records matched by Filter.
// A nil Filter projects every record.
type ExtractExpr struct {
	Fields []string
	Filter Expr
}

// Equals returns (= field value).
func Equals(field string, value any) EqualsExpr {
	return EqualsExpr{Field: field, Value: value}
}

// And returns the conjunction of exprs. Nil expressions are dropped.
func And(exprs ...Expr) AndExpr {
	kept := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		if e != nil {
			kept = append(kept, e)
		}
	}
	return AndExpr{Exprs: kept}
}

// Extract returns a field-projected query over filter.
func Extract(fields []string, filter Expr) ExtractExpr {
	return ExtractExpr{Fields: append([]string(nil), fields...), Filter: filter}
}

func (e EqualsExpr) AST() []any {
	return []any{"=", e.Field, e.Value}
}

func (e EqualsExpr) String() string {
	return fmt.Sprintf("(= %s %v)", e.Field, e.Value)
}

func (e AndExpr) AST() []any {
	ast := make([]any, 0, len(e.Exprs)+1)
	ast = append(ast, "and")
	for _, sub := range e.Exprs {
		ast = append(ast, sub.AST())
	}
	return ast
}

func (e AndExpr) String() string {
	parts := make([]string, 0, len(e.Exprs)+1)
	parts = append(parts, "and")
	for _, sub := range e.Exprs {
		parts = append(parts, sub.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (e ExtractExpr) AST() []any {
	fields := make([]any, len(e.Fields))
	for i, f := range e.Fields {
		fields[i] = f
	}
	if e.Filter == nil {
		return []any{"extract", fields}
	}
	return []any{"extract", fields, e.Filter.AST()}
}

func (e ExtractExpr) String() string {
	s := "(extract [" + strings.Join(e.Fields, " ") + "]"
	if e.Filter != nil {
		s += " " + e.Filter.String()
	}
	return s + ")"
}

// Marshal serializes expr to its JSON wire form. A nil expr yields nil.
func Marshal(expr Expr) ([]byte, error) {
	if expr == nil {
		return nil, nil
	}
	data, err := json.Marshal(expr.AST())
	if err != nil {
		return nil, fmt.Errorf("failed to encode query %s: %w", expr, err)
	}
	return data, nil
}

// Format renders expr for logs, with "nil" for the empty filter.
func Format(expr Expr) string {
	if expr == nil {
		return "nil"
	}
	return expr.String()
}
