package query

import "strings"

// TokenKind is the type of token.
type TokenKind int

const (
	TokLParen TokenKind = iota
	TokRParen
	TokAnd
	TokOr
	TokNot
	TokWord
	TokLiteral
)

func (k TokenKind) String() string {
	switch k {
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokAnd:
		return "And"
	case TokOr:
		return "Or"
	case TokNot:
		return "Not"
	case TokWord:
		return "Word"
	case TokLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// Token is one lexical token. Literal tokens keep their surrounding quotes
// so the parser can tell phrase values (double-quoted) from plain ones.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize splits a guarded query into tokens: parentheses, the keywords
// and/or/not, quoted literals (restored from their placeholders) and bare
// words. Condition triples are assembled later by the parser.
func Tokenize(guarded string, literals map[string]string) []Token {
	var tokens []Token
	var word strings.Builder

	flush := func() {
		if word.Len() == 0 {
			return
		}
		tokens = append(tokens, classifyWord(word.String(), literals))
		word.Reset()
	}

	for _, ch := range guarded {
		switch {
		case ch == '(':
			flush()
			tokens = append(tokens, Token{Kind: TokLParen, Text: "("})
		case ch == ')':
			flush()
			tokens = append(tokens, Token{Kind: TokRParen, Text: ")"})
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flush()
		default:
			word.WriteRune(ch)
		}
	}
	flush()

	return tokens
}

func classifyWord(w string, literals map[string]string) Token {
	if strings.Contains(w, "__QUOTE_") {
		for ph, lit := range literals {
			w = strings.ReplaceAll(w, ph, lit)
		}
		return Token{Kind: TokLiteral, Text: w}
	}
	switch strings.ToLower(w) {
	case "and":
		return Token{Kind: TokAnd, Text: w}
	case "or":
		return Token{Kind: TokOr, Text: w}
	case "not":
		return Token{Kind: TokNot, Text: w}
	}
	return Token{Kind: TokWord, Text: w}
}
