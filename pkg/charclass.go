package htmltok

// isWhitespace reports whether r is tab, LF, FF, or space, per spec.md §4.5.
// CR is assumed normalized away upstream (spec.md §9, Open Questions).
func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIILower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isASCIILetter(r rune) bool {
	return isASCIIUpper(r) || isASCIILower(r)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r)
}

func isASCIIHexDigit(r rune) bool {
	return isASCIIDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexDigitValue(r rune) uint32 {
	switch {
	case r >= '0' && r <= '9':
		return uint32(r - '0')
	case r >= 'a' && r <= 'f':
		return uint32(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint32(r-'A') + 10
	}
	return 0
}

const replacementChar = '�'
