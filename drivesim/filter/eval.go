package filter

import (
	"context"
	"errors"

	"github.com/nonibytes/drivesim/drivesim/query"
)

// Evaluate walks the postfix expression with a boolean stack and returns
// the record's inclusion decision. Per-condition negation is applied here,
// after the matcher's verdict. A stack underflow or a final stack that is
// not exactly one value is a structural error: the expression did not come
// from a well-formed parse.
func Evaluate(ctx context.Context, m *Matcher, rec Record, expr query.Expression) (bool, error) {
	var stack []bool

	for _, node := range expr {
		switch n := node.(type) {
		case query.Condition:
			ok, err := m.Match(ctx, rec, n)
			if err != nil {
				return false, err
			}
			stack = append(stack, ok != n.Negated)
		case query.Logical:
			if len(stack) < 2 {
				return false, errors.New("invalid query structure: logical operator needs two operands")
			}
			right := stack[len(stack)-1]
			left := stack[len(stack)-2]
			stack = stack[:len(stack)-2]
			if n.Op == query.LogicalAnd {
				stack = append(stack, left && right)
			} else {
				stack = append(stack, left || right)
			}
		}
	}

	if len(stack) != 1 {
		return false, errors.New("invalid query structure: expression did not reduce to a single result")
	}
	return stack[0], nil
}
