package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeNumbersAndOperators(t *testing.T) {
	tokens, diag := Tokenize("1 + 2.5 * 3e2")
	require.Nil(t, diag)
	require.Equal(t, []token.Kind{
		token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.NUMBER, token.EOF,
	}, kinds(tokens))
	require.Equal(t, "2.5", tokens[2].Lexeme)
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens, diag := Tokenize("let x = true")
	require.Nil(t, diag)
	require.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.TRUE, token.EOF,
	}, kinds(tokens))
	require.Equal(t, "x", tokens[1].Lexeme)
}

func TestTokenizeLongestMatchOperators(t *testing.T) {
	tokens, diag := Tokenize("a === b !== c ** d")
	require.Nil(t, diag)
	require.Equal(t, []token.Kind{
		token.IDENT, token.EQ_EQ_EQ, token.IDENT, token.NEQ_EQ, token.IDENT,
		token.STAR_STAR, token.IDENT, token.EOF,
	}, kinds(tokens))
}

func TestTokenizeStringEscape(t *testing.T) {
	tokens, diag := Tokenize(`"a\nb"`)
	require.Nil(t, diag)
	require.Equal(t, token.STRING, tokens[0].Kind)
}

func TestTokenizeIllegalCharacter(t *testing.T) {
	tokens, diag := Tokenize("let x = @")
	require.Nil(t, diag)
	require.Equal(t, token.ILLEGAL, tokens[len(tokens)-2].Kind)
}
