// Package fuzz generates random HTML-ish fragments for tokenizer benchmarks
// and smoke tests, the way internal/test.GetRandomTokens generates random
// source fragments for the teacher's lexer benchmarks.
package fuzz

import (
	"math/rand"
	"strings"
)

// fragments is a pool of small, independently-valid-or-malformed HTML snippets.
// Mixing well-formed and malformed fragments keeps benchmarks honest: a
// tokenizer that is fast only on clean input isn't representative.
var fragments = []string{
	"<div class=\"a b\" id='x'>",
	"</div>",
	"<br/>",
	"<input disabled>",
	"<!DOCTYPE html>",
	"<!-- a comment -->",
	"<p>some text &amp; more</p>",
	"<img src=\"x.png\" alt=\"\">",
	"<a href=\"#\">link</a>",
	"<span> bad null</span>",
	"<unterminated",
	"<!DOCTYPE",
	"plain text\n",
	"<A HREF=\"X\">MixedCase</A>",
	"&#x1F600;",
	"&copy;",
	"<tag attr=value attr=dup>",
}

// GetRandomFragment returns a single random fragment from the pool.
func GetRandomFragment() string {
	return fragments[rand.Intn(len(fragments))]
}

// GetRandomDocument concatenates n random fragments, separated by sep, into a
// single document suitable for feeding to NewTokenizer.
func GetRandomDocument(n int, sep string) string {
	parts := make([]string, 0, n)
	for len(parts) < n {
		parts = append(parts, GetRandomFragment())
	}
	return strings.Join(parts, sep)
}
