package query

import (
	"fmt"
	"strings"
)

// Parse compiles a raw query string into a postfix expression. An empty or
// blank query yields an empty expression, which filters nothing.
func Parse(q string) (Expression, error) {
	guarded, literals, err := Guard(q)
	if err != nil {
		return nil, err
	}
	tokens := Tokenize(guarded, literals)
	return parsePostfix(tokens)
}

func precedence(kind TokenKind) int {
	switch kind {
	case TokAnd:
		return 2
	case TokOr:
		return 1
	default:
		return 0
	}
}

func logicalNode(kind TokenKind) Logical {
	if kind == TokAnd {
		return Logical{Op: LogicalAnd}
	}
	return Logical{Op: LogicalOr}
}

// parsePostfix is a shunting-yard pass over the token stream. Conditions
// are recognized as three-token field/operator/value triples ('value' in
// field for the in operator) and emitted directly to the output queue;
// and/or go through the operator stack with and binding tighter than or.
func parsePostfix(tokens []Token) (Expression, error) {
	var output Expression
	var stack []TokenKind

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		negated := false
		if tok.Kind == TokNot {
			negated = true
			i++
			if i >= len(tokens) {
				return nil, fmt.Errorf("'not' must be followed by a condition")
			}
			tok = tokens[i]
		}

		switch tok.Kind {
		case TokAnd, TokOr:
			for len(stack) > 0 && precedence(stack[len(stack)-1]) >= precedence(tok.Kind) &&
				stack[len(stack)-1] != TokLParen {
				output = append(output, logicalNode(stack[len(stack)-1]))
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok.Kind)
			i++
		case TokLParen:
			// A preceding not is computed but never applied to a group;
			// this matches the reference engine.
			stack = append(stack, TokLParen)
			i++
		case TokRParen:
			for len(stack) > 0 && stack[len(stack)-1] != TokLParen {
				output = append(output, logicalNode(stack[len(stack)-1]))
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, fmt.Errorf("mismatched parentheses")
			}
			stack = stack[:len(stack)-1]
			i++
		default:
			if i+2 < len(tokens) {
				if op, ok := operatorFromString(strings.ToLower(tokens[i+1].Text)); ok {
					cond, err := buildCondition(tokens[i].Text, op, tokens[i+2].Text, negated)
					if err != nil {
						return nil, err
					}
					output = append(output, cond)
					i += 3
					continue
				}
			}
			return nil, fmt.Errorf("invalid condition format near %q", tok.Text)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top == TokLParen {
			return nil, fmt.Errorf("mismatched parentheses")
		}
		output = append(output, logicalNode(top))
	}

	return output, nil
}

// buildCondition normalizes a recognized triple into a Condition. For the
// in operator the surface order is reversed: the quoted value comes first
// and the field name last.
func buildCondition(first string, op Operator, third string, negated bool) (Condition, error) {
	var field, value string
	if op == OpIn {
		value = strings.Trim(first, "'")
		field = third
	} else {
		field = first
		value = strings.Trim(third, "'")
	}

	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)

	phrase := false
	if op == OpContains && len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = strings.Trim(value, `"`)
		value = NormalizeAlnum(value)
		phrase = true
	}

	field = strings.Trim(field, `"`)
	value = strings.Trim(value, `"`)

	if err := validateOperator(field, op); err != nil {
		return Condition{}, err
	}

	return Condition{
		Field:       field,
		Op:          op,
		Value:       value,
		Negated:     negated,
		PhraseMatch: phrase,
	}, nil
}
