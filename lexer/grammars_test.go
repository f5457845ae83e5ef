package lexer

import (
	"strings"
	"testing"

	"github.com/npillmayer/atnlex/atn"
	"github.com/npillmayer/atnlex/scanner"
)

// Grammars used throughout the tests of this package, selected by name.
var testGrammars = map[string]func() *atn.Builder{
	"simplelr": simpleLRGrammar,
	"keywords": keywordGrammar,
	"strings":  stringGrammar,
	"comments": commentGrammar,
}

// ID : [a-z]+ ;  WS : [ \n]+ -> channel(HIDDEN) ;
func simpleLRGrammar() *atn.Builder {
	b := atn.NewBuilder("SimpleLR")
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Channel(atn.HiddenChannelName)
	return b
}

func keywordGrammar() *atn.Builder {
	b := atn.NewBuilder("Keywords")
	b.Fragment("DIGIT", atn.Range('0', '9'))
	b.Rule("IF", atn.Lit("if"))
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("NUM", atn.Plus(atn.Ref("DIGIT")))
	b.Rule("ARROW", atn.Lit("->"))
	b.Rule("MINUS", atn.Char('-'))
	b.Rule("LT", atn.Char('<'))
	b.Rule("LE", atn.Lit("<="))
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Skip()
	return b
}

func stringGrammar() *atn.Builder {
	b := atn.NewBuilder("Strings")
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("QUOTE", atn.Char('"')).PushMode("STR")
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Skip()
	b.Mode("STR")
	b.Rule("TEXT", atn.Plus(atn.Not(atn.Set('"', '\\'))))
	b.Rule("ESC", atn.Seq(atn.Char('\\'), atn.Any()))
	b.Rule("CLOSE", atn.Char('"')).PopMode()
	return b
}

func commentGrammar() *atn.Builder {
	b := atn.NewBuilder("Comments")
	b.Tokens("COMMENT")
	b.Rule("ID", atn.Plus(atn.Range('a', 'z')))
	b.Rule("OPEN", atn.Lit("/*")).More().PushMode("CMT")
	b.Rule("WS", atn.Plus(atn.Set(' ', '\n'))).Channel(atn.HiddenChannelName)
	b.Mode("CMT")
	b.Rule("CLOSE", atn.Lit("*/")).Type("COMMENT").PopMode()
	b.Rule("CHAR", atn.Any()).More()
	return b
}

func buildATN(t *testing.T, b *atn.Builder) *atn.ATN {
	t.Helper()
	a, err := b.ATN()
	if err != nil {
		t.Fatalf("cannot build ATN: %v", err)
	}
	return a
}

// tokenize runs a fresh lexer over input and returns all tokens, EOF excluded,
// together with the lexer.
func tokenize(t *testing.T, a *atn.ATN, input string, opts ...Option) ([]scanner.Token, *Lexer) {
	t.Helper()
	lx := New(a, scanner.NewCursor("test", input), opts...)
	lx.SetErrorHandler(func(err error) {
		t.Logf("lexical error: %v", err)
	})
	tokens, _ := lx.AllTokens()
	return tokens, lx
}

// tok is a comparable projection of a token.
type tok struct {
	Type    string
	Text    string
	Channel int
}

func project(a *atn.ATN, tokens []scanner.Token) []tok {
	voc := a.Vocabulary()
	r := make([]tok, len(tokens))
	for i, t := range tokens {
		r[i] = tok{Type: voc.DisplayName(t.TokType()), Text: t.Lexeme(), Channel: t.Channel()}
		if t.TokType() == scanner.Invalid {
			r[i].Type = "INVALID"
		}
	}
	return r
}

func formatTokens(a *atn.ATN, tokens []scanner.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Format(a.Vocabulary().Stringer()))
		b.WriteString("\n")
	}
	return b.String()
}
