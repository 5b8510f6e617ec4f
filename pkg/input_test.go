package htmltok

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputStreamConsumeAdvancesAndReportsEOF(t *testing.T) {
	s := newInputStream([]rune("ab"))

	r, ok := s.consume()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)

	r, ok = s.consume()
	assert.True(t, ok)
	assert.Equal(t, 'b', r)

	_, ok = s.consume()
	assert.False(t, ok, "cursor at length must report EOF, not off-by-one")

	// The consume at EOF must leave the cursor unchanged.
	assert.Equal(t, 2, s.offset())
}

func TestInputStreamReconsumeRewindsOne(t *testing.T) {
	s := newInputStream([]rune("ab"))
	s.consume()
	s.reconsume()
	r, ok := s.consume()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
}

func TestInputStreamReconsumeBeforeConsumePanics(t *testing.T) {
	s := newInputStream([]rune("a"))
	assert.Panics(t, func() { s.reconsume() })
}

func TestInputStreamPeekExactDoesNotAdvance(t *testing.T) {
	s := newInputStream([]rune("DOCTYPE html"))
	s2, ok := s.peekExact(7)
	assert.True(t, ok)
	assert.Equal(t, "DOCTYPE", s2)
	assert.Equal(t, 0, s.offset())
}

func TestInputStreamPeekExactFailsNearEnd(t *testing.T) {
	s := newInputStream([]rune("ab"))
	_, ok := s.peekExact(3)
	assert.False(t, ok)
}

func TestInputStreamLengthOneCanBeFullyConsumed(t *testing.T) {
	// Regression for the EndOfContent off-by-one noted in spec.md §9: a
	// single-character input must still yield that character before EOF.
	s := newInputStream([]rune("a"))
	assert.False(t, s.atEOF())
	r, ok := s.consume()
	assert.True(t, ok)
	assert.Equal(t, 'a', r)
	assert.True(t, s.atEOF())
}

func TestInputStreamConsumeNPastEndPanics(t *testing.T) {
	s := newInputStream([]rune("ab"))
	assert.Panics(t, func() { s.consumeN(5) })
}
