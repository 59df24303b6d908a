package query

import "testing"

func TestTokenizeSplitsParens(t *testing.T) {
	tokens := Tokenize("(name = __QUOTE_0__)", map[string]string{"__QUOTE_0__": "'x'"})
	kinds := []TokenKind{TokLParen, TokWord, TokWord, TokLiteral, TokRParen}
	if len(tokens) != len(kinds) {
		t.Fatalf("expected %d tokens, got %d: %v", len(kinds), len(tokens), tokens)
	}
	for i, k := range kinds {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s (%q)", i, k, tokens[i].Kind, tokens[i].Text)
		}
	}
}

func TestTokenizeRestoresLiterals(t *testing.T) {
	tokens := Tokenize("name contains __QUOTE_0__", map[string]string{"__QUOTE_0__": "'annual report'"})
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	if tokens[2].Kind != TokLiteral || tokens[2].Text != "'annual report'" {
		t.Errorf("literal not restored: %+v", tokens[2])
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	tokens := Tokenize("AND Or nOt", nil)
	kinds := []TokenKind{TokAnd, TokOr, TokNot}
	for i, k := range kinds {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s", i, k, tokens[i].Kind)
		}
	}
}

func TestTokenizeBareWords(t *testing.T) {
	tokens := Tokenize("trashed = false", nil)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d", len(tokens))
	}
	for _, tok := range tokens {
		if tok.Kind != TokWord {
			t.Errorf("expected Word, got %s (%q)", tok.Kind, tok.Text)
		}
	}
}
