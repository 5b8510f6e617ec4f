package htmltok

import "fmt"

// TokenType is an ID that correlates to the kind of token produced by the tokenizer.
type TokenType uint8

const (
	// DoctypeToken denotes a DOCTYPE declaration, e.g. "<!DOCTYPE html>".
	DoctypeToken TokenType = iota
	// StartTagToken denotes an opening tag, e.g. "<div>".
	StartTagToken
	// EndTagToken denotes a closing tag, e.g. "</div>".
	EndTagToken
	// CharacterToken denotes a single Unicode scalar value of character data.
	CharacterToken
	// CommentToken denotes a comment, e.g. "<!-- remark -->".
	CommentToken
	// EndOfFileToken denotes the end of the input stream. Emitted exactly once, last.
	EndOfFileToken
)

// String renders the token type's name. Mirrors the teacher's //go:generate stringer
// convention, written by hand here since the type set is small and stable.
func (t TokenType) String() string {
	switch t {
	case DoctypeToken:
		return "Doctype"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CharacterToken:
		return "Character"
	case CommentToken:
		return "Comment"
	case EndOfFileToken:
		return "EndOfFile"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

// Attribute is a single (name, value) pair found on a start or end tag. Names are
// lowercased ASCII as they are appended by the tokenizer (see attributeNameState).
type Attribute struct {
	Name  string
	Value string
}

// Token is the tagged variant emitted by the tokenizer. Only the fields relevant to
// Type are meaningful; the zero value of the others is not a signal of anything.
type Token struct {
	Type TokenType

	// Name holds the tag name (StartTagToken, EndTagToken) or the DOCTYPE name
	// (DoctypeToken, possibly empty).
	Name string

	// SelfClosing is set on StartTagToken when the tag ends in "/>". On
	// EndTagToken its presence is a parse error (ErrEndTagWithTrailingSolidus)
	// but the flag is still recorded for callers that want to observe it.
	SelfClosing bool

	// Attr holds the tag's attributes in source order, duplicates already
	// dropped. Only meaningful for StartTagToken (EndTagToken attributes are
	// parsed, reported as a parse error, and discarded).
	Attr []Attribute

	// PublicID and SystemID are the DOCTYPE's external identifiers. Present
	// reports whether the corresponding identifier was seen at all (a DOCTYPE
	// may have an identifier that is the empty string, which differs from no
	// identifier at all for quirks-mode purposes).
	PublicID        string
	PublicIDPresent bool
	SystemID        string
	SystemIDPresent bool

	// ForceQuirks is set on malformed DOCTYPE tokens (DoctypeToken only).
	ForceQuirks bool

	// Data holds comment text (CommentToken) or a single rune encoded as a
	// string (CharacterToken, via string(rune)).
	Data string
}

// Char returns the single scalar value carried by a CharacterToken. It panics if
// called on any other token type; callers must check Type first.
func (t Token) Char() rune {
	if t.Type != CharacterToken {
		panic(fmt.Sprintf("htmltok: Char called on a %s token", t.Type))
	}
	r := []rune(t.Data)
	if len(r) != 1 {
		panic("htmltok: CharacterToken with non-singleton Data")
	}
	return r[0]
}

// ParseErrorKind names a recoverable, data-level defect encountered while
// tokenizing. It never interrupts the token stream.
type ParseErrorKind string

const (
	ErrUnexpectedNullCharacter                         ParseErrorKind = "unexpected-null-character"
	ErrEOFBeforeTagName                                ParseErrorKind = "eof-before-tag-name"
	ErrInvalidFirstCharacterOfTagName                  ParseErrorKind = "invalid-first-character-of-tag-name"
	ErrMissingEndTagName                               ParseErrorKind = "missing-end-tag-name"
	ErrEOFInTag                                        ParseErrorKind = "eof-in-tag"
	ErrIncorrectlyOpenedComment                        ParseErrorKind = "incorrectly-opened-comment"
	ErrMissingWhitespaceBeforeDoctypeName              ParseErrorKind = "missing-whitespace-before-doctype-name"
	ErrMissingDoctypeName                              ParseErrorKind = "missing-doctype-name"
	ErrEOFInDoctype                                    ParseErrorKind = "eof-in-doctype"
	ErrDuplicateAttribute                              ParseErrorKind = "duplicate-attribute"
	ErrUnexpectedQuestionMarkInsteadOfTagName          ParseErrorKind = "unexpected-question-mark-instead-of-tag-name"
	ErrCDATAInHTMLContent                              ParseErrorKind = "cdata-in-html-content"
	ErrEOFInComment                                    ParseErrorKind = "eof-in-comment"
	ErrEOFInCDATA                                      ParseErrorKind = "eof-in-cdata"
	ErrAbruptClosingOfEmptyComment                     ParseErrorKind = "abrupt-closing-of-empty-comment"
	ErrNestedComment                                   ParseErrorKind = "nested-comment"
	ErrIncorrectlyClosedComment                        ParseErrorKind = "incorrectly-closed-comment"
	ErrMissingWhitespaceBetweenAttributes              ParseErrorKind = "missing-whitespace-between-attributes"
	ErrUnexpectedCharacterInAttributeName              ParseErrorKind = "unexpected-character-in-attribute-name"
	ErrMissingAttributeValue                           ParseErrorKind = "missing-attribute-value"
	ErrUnexpectedCharacterInUnquotedAttrValue          ParseErrorKind = "unexpected-character-in-unquoted-attribute-value"
	ErrMissingWhitespaceAfterDoctypePublicKw           ParseErrorKind = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterDoctypeSystemKw           ParseErrorKind = "missing-whitespace-after-doctype-system-keyword"
	ErrEndTagWithAttributes                            ParseErrorKind = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus                       ParseErrorKind = "end-tag-with-trailing-solidus"
	ErrUnknownNamedCharacterReference                  ParseErrorKind = "unknown-named-character-reference"
	ErrAbsenceOfDigitsInNumericCharacterRef            ParseErrorKind = "absence-of-digits-in-numeric-character-reference"
	ErrControlCharacterReference                       ParseErrorKind = "control-character-reference"
	ErrNullCharacterReference                          ParseErrorKind = "null-character-reference"
	ErrCharacterReferenceOutsideUnicodeRange           ParseErrorKind = "character-reference-outside-unicode-range"
	ErrSurrogateCharacterReference                     ParseErrorKind = "surrogate-character-reference"
	ErrMissingSemicolonAfterCharacterReference         ParseErrorKind = "missing-semicolon-after-character-reference"
	ErrUnexpectedSolidusInTag                          ParseErrorKind = "unexpected-solidus-in-tag"
	ErrUnexpectedEqualsSignBeforeAttributeName         ParseErrorKind = "unexpected-equals-sign-before-attribute-name"
	ErrInvalidCharacterSequenceAfterDoctypeName        ParseErrorKind = "invalid-character-sequence-after-doctype-name"
	ErrMissingDoctypePublicIdentifier                  ParseErrorKind = "missing-doctype-public-identifier"
	ErrMissingDoctypeSystemIdentifier                  ParseErrorKind = "missing-doctype-system-identifier"
	ErrMissingQuoteBeforeDoctypePublicIdentifier       ParseErrorKind = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeDoctypeSystemIdentifier       ParseErrorKind = "missing-quote-before-doctype-system-identifier"
	ErrMissingWhitespaceBetweenDoctypePublicAndSystem  ParseErrorKind = "missing-whitespace-between-doctype-public-and-system-identifiers"
	ErrAbruptDoctypeIdentifier                         ParseErrorKind = "abrupt-doctype-identifier"
	ErrUnexpectedCharacterAfterDoctypeSystemIdentifier ParseErrorKind = "unexpected-character-after-doctype-system-identifier"
)

// ParseError is a single recoverable, data-level diagnostic. Offset is the rune
// offset into the input stream at which the condition was detected.
type ParseError struct {
	Kind   ParseErrorKind
	Offset int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Kind, e.Offset)
}
