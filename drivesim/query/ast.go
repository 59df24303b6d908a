// Package query compiles Drive-style search queries into postfix
// expressions of conditions and logical operators.
package query

import (
	"fmt"
	"strings"
)

// Operator is a condition comparison operator.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpContains
	OpIn
)

func (op Operator) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpContains:
		return "contains"
	case OpIn:
		return "in"
	default:
		return "?"
	}
}

func operatorFromString(s string) (Operator, bool) {
	switch s {
	case "=":
		return OpEq, true
	case "!=":
		return OpNe, true
	case "<":
		return OpLt, true
	case "<=":
		return OpLe, true
	case ">":
		return OpGt, true
	case ">=":
		return OpGe, true
	case "contains":
		return OpContains, true
	case "in":
		return OpIn, true
	default:
		return 0, false
	}
}

// LogicalOp joins two sub-expressions.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

func (op LogicalOp) String() string {
	if op == LogicalAnd {
		return "and"
	}
	return "or"
}

// Node is one element of a postfix expression: a Condition leaf or a
// Logical operator.
type Node interface {
	isNode()
}

// Condition is one field/operator/value test. PhraseMatch is set when the
// value was written as a double-quoted phrase under contains; the value is
// already alphanumeric-normalized in that case.
type Condition struct {
	Field       string
	Op          Operator
	Value       string
	Negated     bool
	PhraseMatch bool
}

func (Condition) isNode() {}

// Logical is an and/or node.
type Logical struct {
	Op LogicalOp
}

func (Logical) isNode() {}

// Expression is a postfix sequence directly consumable by a stack-based
// evaluator.
type Expression []Node

// FieldClass groups fields by the operators legal for them.
type FieldClass int

const (
	ClassDefault FieldClass = iota
	ClassName
	ClassTemporal
	ClassBool
	ClassMembership
	ClassFullText
)

var fieldClasses = map[string]FieldClass{
	"name":           ClassName,
	"mimeType":       ClassName,
	"createdTime":    ClassTemporal,
	"modifiedTime":   ClassTemporal,
	"viewedByMeTime": ClassTemporal,
	"trashed":        ClassBool,
	"starred":        ClassBool,
	"visibility":     ClassBool,
	"hidden":         ClassBool,
	"parents":        ClassMembership,
	"owners":         ClassMembership,
	"writers":        ClassMembership,
	"readers":        ClassMembership,
	"fullText":       ClassFullText,
}

var allowedOps = map[FieldClass][]Operator{
	ClassName:       {OpContains, OpEq, OpNe},
	ClassTemporal:   {OpLe, OpLt, OpEq, OpNe, OpGt, OpGe},
	ClassBool:       {OpEq, OpNe},
	ClassMembership: {OpIn},
	ClassFullText:   {OpContains},
}

// ClassFor returns the field's class; unknown fields fall into the
// unrestricted default class.
func ClassFor(field string) FieldClass {
	if c, ok := fieldClasses[field]; ok {
		return c
	}
	return ClassDefault
}

func validateOperator(field string, op Operator) error {
	class := ClassFor(field)
	allowed, restricted := allowedOps[class]
	if !restricted {
		return nil
	}
	for _, a := range allowed {
		if a == op {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = "'" + a.String() + "'"
	}
	return fmt.Errorf("operator '%s' not supported for field '%s' (supported: %s)",
		op, field, strings.Join(names, ", "))
}

// NormalizeAlnum replaces every non-alphanumeric ASCII character with a
// space, the canonical form used by phrase matching.
func NormalizeAlnum(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return ' '
	}, s)
}
