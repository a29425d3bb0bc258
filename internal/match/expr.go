// Package match implements the Compatibility Builder: it decides, for each
// (step, resource) pair, which capabilities on the resource are semantically
// and parametrically viable for the step, and records the property matches
// that justified each one.
package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Operator is a comparison operator parsed from a parameter or constraint
// value expression. Unlike the condition-expression operators used for gate
// evaluation elsewhere in this kind of codebase, this set is the fixed
// numeric-comparison family the spec defines for parameter matching.
type Operator string

// The operator family recognized in a "[op] number" expression. Op defaults
// to OpEqual when absent.
const (
	OpEqual        Operator = "="
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
)

// Expr is a parsed "[op] number" value expression, e.g. ">= 100" or "120".
type Expr struct {
	Op    Operator
	Value float64
}

// exprPattern matches an optional comparison operator followed by a decimal
// number that may use either '.' or ',' as the decimal separator. Longer
// operators (>=, <=) are listed before their single-character prefixes so the
// alternation prefers them.
var exprPattern = regexp.MustCompile(`^\s*(>=|<=|>|<|=)?\s*([0-9]+(?:[.,][0-9]+)?)\s*$`)

// ErrMalformedExpr reports that a value expression could not be parsed as
// "[op] number". This corresponds to the spec's MalformedValueExpression
// error kind: the caller decides whether that means "reject this one
// property" or "reject this one precondition", never an aborted run.
var ErrMalformedExpr = fmt.Errorf("malformed value expression")

// ParseExpr parses a parameter or constraint value string of the form
// "[op] number", where op defaults to OpEqual and a decimal comma is
// equivalent to a decimal point.
func ParseExpr(s string) (Expr, error) {
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return Expr{}, fmt.Errorf("%w: %q", ErrMalformedExpr, s)
	}
	op := Operator(m[1])
	if op == "" {
		op = OpEqual
	}
	numText := strings.Replace(m[2], ",", ".", 1)
	val, err := strconv.ParseFloat(numText, 64)
	if err != nil {
		return Expr{}, fmt.Errorf("%w: %q", ErrMalformedExpr, s)
	}
	return Expr{Op: op, Value: val}, nil
}

// SatisfiesRange reports whether this expression is compatible with a
// property's declared [min, max] range, per the spec's range compatibility
// table. Either bound may be absent.
func (e Expr) SatisfiesRange(min, max *float64) bool {
	if min != nil {
		switch e.Op {
		case OpEqual, OpGreaterEqual:
			if e.Value < *min {
				return false
			}
		case OpGreater:
			if e.Value <= *min {
				return false
			}
		}
	}
	if max != nil {
		switch e.Op {
		case OpEqual, OpLessEqual:
			if e.Value > *max {
				return false
			}
		case OpLess:
			if e.Value >= *max {
				return false
			}
		}
	}
	return true
}

// SatisfiesDiscrete reports whether this expression is compatible with a set
// of discrete numeric values, per the spec's discrete compatibility table.
func (e Expr) SatisfiesDiscrete(values []float64) bool {
	switch e.Op {
	case OpEqual:
		for _, d := range values {
			if d == e.Value {
				return true
			}
		}
		return false
	case OpGreaterEqual:
		for _, d := range values {
			if d >= e.Value {
				return true
			}
		}
		return false
	case OpLessEqual:
		for _, d := range values {
			if d <= e.Value {
				return true
			}
		}
		return false
	case OpGreater:
		for _, d := range values {
			if d > e.Value {
				return true
			}
		}
		return false
	case OpLess:
		for _, d := range values {
			if d < e.Value {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// SatisfiesComparison evaluates this expression as a standalone comparison
// against a single measured quantity (used for precondition checking, where
// the "property" side is a fixed material quantity rather than a declared
// value set).
func (e Expr) SatisfiesComparison(quantity float64) bool {
	switch e.Op {
	case OpEqual:
		return quantity == e.Value
	case OpGreaterEqual:
		return quantity >= e.Value
	case OpLessEqual:
		return quantity <= e.Value
	case OpGreater:
		return quantity > e.Value
	case OpLess:
		return quantity < e.Value
	default:
		return false
	}
}
