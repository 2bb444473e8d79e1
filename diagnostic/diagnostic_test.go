package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SPSarkar88/NovaLang-sub001/token"
)

func TestErrorFormat(t *testing.T) {
	d := New(RuntimeError, "undefined variable 'x'", token.Range{
		Start: token.Position{Line: 3, Column: 5},
	})
	require.Equal(t, "<input>:3:5: RuntimeError: undefined variable 'x'", d.Error())
}

func TestErrorFormatWithFile(t *testing.T) {
	d := New(ParseError, "unexpected token", token.Range{Start: token.Position{Line: 1, Column: 1}})
	d.File = "script.nova"
	require.Equal(t, "script.nova:1:1: ParseError: unexpected token", d.Error())
}

func TestSnippetRendersCaretUnderColumn(t *testing.T) {
	d := New(ParseError, "unexpected token", token.Range{Start: token.Position{Line: 2, Column: 5}})
	d.Source = "let x = 1\nlet y = ;"
	snippet := d.Snippet()
	require.Contains(t, snippet, "2:5")
	require.Contains(t, snippet, "let y = ;")
	require.Contains(t, snippet, "^")
}

func TestSnippetEmptyWithoutSource(t *testing.T) {
	d := New(ParseError, "unexpected token", token.Range{Start: token.Position{Line: 1, Column: 1}})
	require.Equal(t, "", d.Snippet())
}
