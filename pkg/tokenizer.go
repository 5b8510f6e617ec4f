// Package htmltok implements the WHATWG-style HTML tokenization state machine:
// the lexical front-end that turns a stream of Unicode scalar values into a
// stream of DOCTYPE, start-tag, end-tag, character, comment, and end-of-file
// tokens. Tree construction, input decoding, and the exhaustive named
// character-reference table are external collaborators; see DESIGN.md.
package htmltok

import (
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// stateFn is a single state handler. It consumes zero or more characters, may
// mutate the current token builder, may emit tokens and/or parse errors, and
// returns the next state to dispatch to ("reconsuming" a character is just
// calling t.input.reconsume() before returning). A nil return ends the run; it
// is only ever returned once an EndOfFileToken has been emitted.
type stateFn func(t *Tokenizer) stateFn

// Option configures a Tokenizer at construction time.
type Option func(*Tokenizer)

// WithTokenSink overrides the default token sink, for push-style consumers.
// With it installed, Tokens() panics, and RunBlocking() replaces it with its
// own sink.
func WithTokenSink(s TokenSink) Option {
	return func(t *Tokenizer) { t.tokens = s }
}

// WithErrorSink overrides the default (discarding) parse-error sink.
func WithErrorSink(s ErrorSink) Option {
	return func(t *Tokenizer) { t.errors = s }
}

// WithEntityTable overrides the named-character-reference table consulted by
// namedCharacterReferenceState.
func WithEntityTable(tbl EntityTable) Option {
	return func(t *Tokenizer) {
		if tbl != nil {
			t.entities = tbl
		}
	}
}

// WithInsertionPointHook installs the optional script-execution insertion-point
// callback described in spec.md §6. The default is a no-op.
func WithInsertionPointHook(h func(state string)) Option {
	return func(t *Tokenizer) {
		if h != nil {
			t.insertionPointHook = h
		}
	}
}

// Tokenizer is the state-machine driver described in spec.md §4.4. A Tokenizer
// is single-use: construct one per document, never reuse it across runs.
type Tokenizer struct {
	input *inputStream

	tokens TokenSink
	errors ErrorSink

	// chanTokens/chanErrors are non-nil only while the channel sinks are in
	// effect: NewTokenizer installs chanTokens when no TokenSink is given, and
	// RunBlocking installs both.
	chanTokens *chanTokenSink
	chanErrors *chanErrorSink

	entities           EntityTable
	insertionPointHook func(state string)

	curTag      *tagBuilder
	curDoctype  *doctypeBuilder
	curComment  *commentBuilder

	// returnState and charRefInAttr carry the character-reference state's
	// continuation, per spec.md §4.5's characterReferenceState.
	returnState   stateFn
	charRefInAttr bool
	tempBuffer    strings.Builder
	charRefCode   uint32

	// cdataAllowed stands in for the tree-construction collaborator's
	// "current insertion context is a foreign element" check (spec.md §4.5,
	// MarkupDeclarationOpen); tree construction itself is out of scope.
	cdataAllowed bool
}

// WithForeignContent tells markupDeclarationOpenState to treat "<![CDATA[" as
// the start of a CDATA section, the way it would inside foreign (SVG/MathML)
// content. Without it (the default), CDATA sections are bogus comments, which
// is correct for ordinary HTML content.
func WithForeignContent(allowed bool) Option {
	return func(t *Tokenizer) { t.cdataAllowed = allowed }
}

// NewTokenizer reads r to completion and returns a Tokenizer ready to run over
// it. Per spec.md's Out-of-scope note, decoding is assumed to already have
// happened upstream; here the practical boundary is a byte stream, decoded as
// UTF-8 with the standard library's invalid-sequence-becomes-U+FFFD behavior.
func NewTokenizer(r io.Reader, opts ...Option) *Tokenizer {
	data, _ := io.ReadAll(r)

	t := &Tokenizer{
		input:              newInputStream([]rune(string(data))),
		entities:           defaultEntityTable,
		insertionPointHook: func(string) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.tokens == nil {
		t.chanTokens = newChanTokenSink()
		t.tokens = t.chanTokens
	}
	if t.errors == nil {
		t.errors = discardErrorSink{}
	}
	return t
}

// Do drives the state machine to completion, dispatching on the current state
// until EndOfFileToken has been emitted. It does not return early; callers that
// want streaming behavior should run it on its own goroutine (see Tokens).
func (t *Tokenizer) Do() {
	for state := stateFn(dataState); state != nil; {
		state = state(t)
	}
	if t.chanTokens != nil {
		t.chanTokens.close()
	}
	if t.chanErrors != nil {
		t.chanErrors.close()
	}
}

// Tokens returns the channel Do() streams tokens onto. Only valid when the
// Tokenizer is using its default streaming sink (i.e. WithTokenSink was not
// used); panics otherwise.
func (t *Tokenizer) Tokens() <-chan Token {
	if t.chanTokens == nil {
		panic("htmltok: Tokens() requires the default streaming token sink")
	}
	return t.chanTokens.out
}

// Errors returns the channel Do() streams parse errors onto. Only valid while
// the channel error sink installed by RunBlocking is in effect; NewTokenizer
// never installs one (its default error sink discards), so outside RunBlocking
// this panics.
func (t *Tokenizer) Errors() <-chan ParseError {
	if t.chanErrors == nil {
		panic("htmltok: Errors() requires the default streaming error sink")
	}
	return t.chanErrors.out
}

// RunBlocking lexes the stream synchronously and returns every token and parse
// error, in order. It follows the teacher's Run()/Do()/Get() split: Do() is
// driven on its own goroutine while this goroutine joins the token- and
// error-channel drains with golang.org/x/sync/errgroup, the same library the
// teacher uses to join its IR-writer and subprocess goroutines in compiler.go.
//
// Unlike the teacher's Run, RunBlocking never returns a Go error: HTML
// tokenization always completes (spec.md §7: malformed input is recoverable,
// not fatal), so parse errors come back as data, not as an error value.
func (t *Tokenizer) RunBlocking() ([]Token, []ParseError) {
	t.chanTokens = newChanTokenSink()
	t.tokens = t.chanTokens
	t.chanErrors = newChanErrorSink()
	t.errors = t.chanErrors

	go t.Do()

	var tokens []Token
	var parseErrs []ParseError

	var g errgroup.Group
	g.Go(func() error {
		for tok := range t.chanTokens.out {
			tokens = append(tokens, tok)
		}
		return nil
	})
	g.Go(func() error {
		for e := range t.chanErrors.out {
			parseErrs = append(parseErrs, e)
		}
		return nil
	})
	_ = g.Wait()

	return tokens, parseErrs
}

func (t *Tokenizer) emitToken(tok Token) {
	t.tokens.EmitToken(tok)
}

func (t *Tokenizer) emitChar(r rune) {
	t.tokens.EmitToken(Token{Type: CharacterToken, Data: string(r)})
}

func (t *Tokenizer) emitCharString(s string) {
	for _, r := range s {
		t.emitChar(r)
	}
}

func (t *Tokenizer) emitError(kind ParseErrorKind) {
	t.errors.EmitParseError(ParseError{Kind: kind, Offset: t.input.offset()})
}

// requireTag asserts the current builder is a tagBuilder, per the
// current-token-builder invariant in spec.md §3; violating it is a programming
// error, not a parse error.
func (t *Tokenizer) requireTag(state string) *tagBuilder {
	if t.curTag == nil {
		panic(newFault("no current tag builder", state, t.input.offset()))
	}
	return t.curTag
}

func (t *Tokenizer) requireDoctype(state string) *doctypeBuilder {
	if t.curDoctype == nil {
		panic(newFault("no current doctype builder", state, t.input.offset()))
	}
	return t.curDoctype
}

func (t *Tokenizer) requireComment(state string) *commentBuilder {
	if t.curComment == nil {
		panic(newFault("no current comment builder", state, t.input.offset()))
	}
	return t.curComment
}
