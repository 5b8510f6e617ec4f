package htmltok

import (
	"strings"
	"testing"

	"go.htmltok.dev/internal/fuzz"
)

// benchmarkTokenizer mirrors the teacher's BenchmarkLexerN family: build a
// random document of the given fragment count once, then tokenize it
// repeatedly, discarding errors and tokens via RunBlocking.
func benchmarkTokenizer(b *testing.B, fragments int) {
	doc := fuzz.GetRandomDocument(fragments, "")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tok := NewTokenizer(strings.NewReader(doc))
		tok.RunBlocking()
	}
}

func BenchmarkTokenizer100(b *testing.B)    { benchmarkTokenizer(b, 100) }
func BenchmarkTokenizer1000(b *testing.B)   { benchmarkTokenizer(b, 1000) }
func BenchmarkTokenizer10000(b *testing.B)  { benchmarkTokenizer(b, 10000) }
func BenchmarkTokenizer100000(b *testing.B) { benchmarkTokenizer(b, 100000) }
