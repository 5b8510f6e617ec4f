package htmltok

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runBlocking(t *testing.T, src string, opts ...Option) ([]Token, []ParseError) {
	t.Helper()
	tok := NewTokenizer(strings.NewReader(src), opts...)
	return tok.RunBlocking()
}

func tokenTypes(tokens []Token) []TokenType {
	out := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func TestEmptyInputEmitsOnlyEOF(t *testing.T) {
	tokens, errs := runBlocking(t, "")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{EndOfFileToken}, tokenTypes(tokens))
}

func TestSingleCharacter(t *testing.T) {
	tokens, _ := runBlocking(t, "a")
	assert.Equal(t, []TokenType{CharacterToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, 'a', tokens[0].Char())
}

func TestUnterminatedLessThan(t *testing.T) {
	tokens, errs := runBlocking(t, "<")
	assert.Equal(t, []TokenType{CharacterToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, '<', tokens[0].Char())
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrEOFBeforeTagName, errs[0].Kind)
}

func TestUnterminatedLessThanSlash(t *testing.T) {
	tokens, errs := runBlocking(t, "</")
	assert.Equal(t, []TokenType{CharacterToken, CharacterToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, '<', tokens[0].Char())
	assert.Equal(t, '/', tokens[1].Char())
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrEOFBeforeTagName, errs[0].Kind)
}

func TestSimpleStartTag(t *testing.T) {
	tokens, errs := runBlocking(t, "<html>")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{StartTagToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, "html", tokens[0].Name)
}

func TestEndTagLowercased(t *testing.T) {
	tokens, errs := runBlocking(t, "</Html>")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{EndTagToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, "html", tokens[0].Name)
}

func TestTwoStartTags(t *testing.T) {
	tokens, _ := runBlocking(t, "<a><b>")
	assert.Equal(t, []TokenType{StartTagToken, StartTagToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, "a", tokens[0].Name)
	assert.Equal(t, "b", tokens[1].Name)
}

func TestTagNameCaseFolded(t *testing.T) {
	tokens, _ := runBlocking(t, "<P>")
	assert.Equal(t, "p", tokens[0].Name)
}

func TestNullInTagName(t *testing.T) {
	tokens, errs := runBlocking(t, "<p\x00>")
	assert.Equal(t, "p�", tokens[0].Name)
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrUnexpectedNullCharacter, errs[0].Kind)
}

func TestNullInDataEmitsNullCharacterAndError(t *testing.T) {
	tokens, errs := runBlocking(t, "\x00")
	assert.Equal(t, rune(0), tokens[0].Char())
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrUnexpectedNullCharacter, errs[0].Kind)
}

func TestDoctypeSimple(t *testing.T) {
	tokens, errs := runBlocking(t, "<!DOCTYPE html>")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{DoctypeToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, "html", tokens[0].Name)
	assert.False(t, tokens[0].ForceQuirks)
}

func TestDoctypeCaseInsensitiveKeyword(t *testing.T) {
	tokens, errs := runBlocking(t, "<!doctype HTML>")
	assert.Empty(t, errs)
	assert.Equal(t, "html", tokens[0].Name)
}

func TestDoctypeWhitespaceTolerated(t *testing.T) {
	tokens, errs := runBlocking(t, "<!doctype\tHTML >")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{DoctypeToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, "html", tokens[0].Name)
}

func TestDoctypeMissingName(t *testing.T) {
	tokens, errs := runBlocking(t, "<!DOCTYPE>")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrMissingDoctypeName, errs[0].Kind)
	assert.Equal(t, "", tokens[0].Name)
	assert.True(t, tokens[0].ForceQuirks)
}

func TestDoctypeUnterminatedEOF(t *testing.T) {
	tokens, errs := runBlocking(t, "<!DOCTYPE")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrEOFInDoctype, errs[0].Kind)
	assert.Equal(t, []TokenType{DoctypeToken, EndOfFileToken}, tokenTypes(tokens))
	assert.True(t, tokens[0].ForceQuirks)
}

func TestDoctypePublicAndSystemIdentifiers(t *testing.T) {
	src := `<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`
	tokens, errs := runBlocking(t, src)
	assert.Empty(t, errs)
	assert.Equal(t, "html", tokens[0].Name)
	assert.True(t, tokens[0].PublicIDPresent)
	assert.Equal(t, "-//W3C//DTD HTML 4.01//EN", tokens[0].PublicID)
	assert.True(t, tokens[0].SystemIDPresent)
	assert.Equal(t, "http://www.w3.org/TR/html4/strict.dtd", tokens[0].SystemID)
}

func TestAttributesBasic(t *testing.T) {
	tokens, errs := runBlocking(t, `<div class="a b" id='x' disabled>`)
	assert.Empty(t, errs)
	attrs := tokens[0].Attr
	assert.Equal(t, []Attribute{
		{Name: "class", Value: "a b"},
		{Name: "id", Value: "x"},
		{Name: "disabled", Value: ""},
	}, attrs)
}

func TestDuplicateAttributeDropped(t *testing.T) {
	tokens, errs := runBlocking(t, `<a x="1" x="2">`)
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateAttribute, errs[0].Kind)
	assert.Equal(t, []Attribute{{Name: "x", Value: "1"}}, tokens[0].Attr)
}

func TestSelfClosingTag(t *testing.T) {
	tokens, errs := runBlocking(t, "<br/>")
	assert.Empty(t, errs)
	assert.True(t, tokens[0].SelfClosing)
}

func TestEndTagWithAttributesIsParseError(t *testing.T) {
	tokens, errs := runBlocking(t, `</div class="x">`)
	found := false
	for _, e := range errs {
		if e.Kind == ErrEndTagWithAttributes {
			found = true
		}
	}
	assert.True(t, found)
	assert.Nil(t, tokens[0].Attr)
}

func TestCommentBasic(t *testing.T) {
	tokens, errs := runBlocking(t, "<!-- hello -->")
	assert.Empty(t, errs)
	assert.Equal(t, []TokenType{CommentToken, EndOfFileToken}, tokenTypes(tokens))
	assert.Equal(t, " hello ", tokens[0].Data)
}

func TestBogusComment(t *testing.T) {
	tokens, errs := runBlocking(t, "<?xml?>")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrUnexpectedQuestionMarkInsteadOfTagName, errs[0].Kind)
	assert.Equal(t, CommentToken, tokens[0].Type)
}

func TestNamedCharacterReference(t *testing.T) {
	tokens, errs := runBlocking(t, "&amp;")
	assert.Empty(t, errs)
	assert.Equal(t, '&', tokens[0].Char())
}

func TestUnknownNamedCharacterReference(t *testing.T) {
	_, errs := runBlocking(t, "&notarealentity;")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownNamedCharacterReference, errs[0].Kind)
}

func TestDecimalCharacterReference(t *testing.T) {
	tokens, errs := runBlocking(t, "&#65;")
	assert.Empty(t, errs)
	assert.Equal(t, 'A', tokens[0].Char())
}

func TestHexCharacterReference(t *testing.T) {
	tokens, errs := runBlocking(t, "&#x41;")
	assert.Empty(t, errs)
	assert.Equal(t, 'A', tokens[0].Char())
}

func TestNullCharacterReferenceBecomesReplacement(t *testing.T) {
	tokens, errs := runBlocking(t, "&#0;")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrNullCharacterReference, errs[0].Kind)
	assert.Equal(t, rune(0xFFFD), tokens[0].Char())
}

func TestCharacterReferenceInAttributeValue(t *testing.T) {
	tokens, errs := runBlocking(t, `<a href="?x=1&amp;y=2">`)
	assert.Empty(t, errs)
	assert.Equal(t, []Attribute{{Name: "href", Value: "?x=1&y=2"}}, tokens[0].Attr)
}

func TestCDATABogusOutsideForeignContent(t *testing.T) {
	tokens, errs := runBlocking(t, "<![CDATA[hi]]>")
	assert.Len(t, errs, 1)
	assert.Equal(t, ErrCDATAInHTMLContent, errs[0].Kind)
	assert.Equal(t, CommentToken, tokens[0].Type)
}

func TestCDATASectionInForeignContent(t *testing.T) {
	tokens, errs := runBlocking(t, "<![CDATA[hi]]>", WithForeignContent(true))
	assert.Empty(t, errs)
	var text strings.Builder
	for _, tok := range tokens {
		if tok.Type == CharacterToken {
			text.WriteRune(tok.Char())
		}
	}
	assert.Equal(t, "hi", text.String())
}

func TestExactlyOneEOFAlwaysLast(t *testing.T) {
	inputs := []string{"", "a", "<a>", "<!--x-->", "<!DOCTYPE>", "&amp;&#65;<p x=1>"}
	for _, in := range inputs {
		tokens, _ := runBlocking(t, in)
		assert.NotEmpty(t, tokens)
		last := tokens[len(tokens)-1]
		assert.Equal(t, EndOfFileToken, last.Type)
		count := 0
		for _, tok := range tokens {
			if tok.Type == EndOfFileToken {
				count++
			}
		}
		assert.Equal(t, 1, count, "input %q", in)
	}
}

func TestCaseInsensitivityOfTagNamesProducesIdenticalStream(t *testing.T) {
	lower, _ := runBlocking(t, "<div>")
	upper, _ := runBlocking(t, "<DIV>")
	assert.Equal(t, lower, upper)
}

func TestStreamingChannelMatchesBlocking(t *testing.T) {
	const src = "<div class=\"a\">text&amp;more</div>"
	blocking, _ := runBlocking(t, src)

	tok := NewTokenizer(strings.NewReader(src))
	go tok.Do()
	var streamed []Token
	for tt := range tok.Tokens() {
		streamed = append(streamed, tt)
	}
	assert.Equal(t, blocking, streamed)
}

func TestTokensPanicsWithCustomSink(t *testing.T) {
	tok := NewTokenizer(strings.NewReader("a"), WithTokenSink(TokenSinkFunc(func(Token) {})))
	assert.Panics(t, func() { tok.Tokens() })
}

func TestRequireTagPanicsOnMisuse(t *testing.T) {
	tok := NewTokenizer(strings.NewReader(""))
	assert.Panics(t, func() { tok.requireTag("test") })
}
