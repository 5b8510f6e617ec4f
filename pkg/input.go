package htmltok

// U+0000 is a perfectly legal rune and is handled explicitly in every state that
// distinguishes it (see states.go), so no sentinel rune is reserved for it. The
// one sentinel the tokenizer does need is "no more input", signaled by
// (rune, false).

// inputStream owns the character buffer and cursor described in spec.md §4.1. It
// is a random-access buffer rather than the teacher's bufio.Reader-backed single
// lookahead, because MarkupDeclarationOpen needs bounded multi-character lookahead
// (peekExact) to match keywords like "DOCTYPE" and "[CDATA[".
type inputStream struct {
	runes []rune
	pos   int
}

func newInputStream(runes []rune) *inputStream {
	return &inputStream{runes: runes}
}

// consume returns the rune at the cursor and advances it. ok is false iff the
// stream was already exhausted, in which case the cursor does not move.
func (s *inputStream) consume() (r rune, ok bool) {
	if s.pos >= len(s.runes) {
		return 0, false
	}
	r = s.runes[s.pos]
	s.pos++
	return r, true
}

// reconsume rewinds the cursor by one. Precondition: the most recent operation on
// this stream was a successful consume, and reconsume has not already been called
// since. A reconsume with the cursor at 0 panics with a TokenizerFault (see
// fault.go); a repeated reconsume after a consume is not detected and simply
// rewinds the cursor again.
func (s *inputStream) reconsume() {
	if s.pos == 0 {
		panic(newFault("reconsume before any consume", "", s.pos))
	}
	s.pos--
}

// peekExact returns the next n runes without advancing the cursor, or "", false
// if fewer than n runes remain.
func (s *inputStream) peekExact(n int) (string, bool) {
	if s.pos+n > len(s.runes) {
		return "", false
	}
	return string(s.runes[s.pos : s.pos+n]), true
}

// consumeN advances the cursor by n. Callers must only invoke it after a
// successful peekExact(n); violating that is a programming error.
func (s *inputStream) consumeN(n int) {
	if s.pos+n > len(s.runes) {
		panic(newFault("consumeN past end of content", "", s.pos))
	}
	s.pos += n
}

// atEOF reports whether the stream is exhausted.
func (s *inputStream) atEOF() bool {
	return s.pos >= len(s.runes)
}

// offset returns the cursor position, used only for parse-error reporting.
func (s *inputStream) offset() int {
	return s.pos
}
