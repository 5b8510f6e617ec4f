package htmltok

// EntityTable is the character-reference expansion collaborator described in
// spec.md §1 ("specified only as an interface the tokenizer consults"). The
// full WHATWG named-character-reference table has ~2,200 entries and is
// deliberately out of scope here (see DESIGN.md); defaultEntityTable covers the
// handful of references real-world documents use almost exclusively.
type EntityTable interface {
	// Lookup returns the expansion for a named reference (without the leading
	// "&" or trailing ";"), and whether it is known. Matching is exact; the
	// longest-prefix-match behavior the full WHATWG table uses for
	// semicolon-less legacy references is not implemented (see DESIGN.md).
	Lookup(name string) (string, bool)
}

type mapEntityTable map[string]string

func (m mapEntityTable) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// defaultEntityTable covers the named references that appear in the overwhelming
// majority of real HTML: the five XML-inherited references plus a handful of
// other extremely common ones.
var defaultEntityTable EntityTable = mapEntityTable{
	"amp":     "&",
	"lt":      "<",
	"gt":      ">",
	"quot":    "\"",
	"apos":    "'",
	"nbsp":    " ",
	"copy":    "©",
	"reg":     "®",
	"hellip":  "…",
	"mdash":   "—",
	"ndash":   "–",
	"lsquo":   "‘",
	"rsquo":   "’",
	"ldquo":   "“",
	"rdquo":   "”",
	"trade":   "™",
	"euro":    "€",
	"deg":     "°",
	"middot":  "·",
	"times":   "×",
}

// numericReferenceOverrides implements the WHATWG table that remaps a small set
// of C1-control-range code points (originally a Windows-1252 compatibility
// accommodation) when they appear as numeric character references. Any code
// point not in this table, and not otherwise replaced per numericCharacterReferenceEndState,
// passes through unchanged.
var numericReferenceOverrides = map[uint32]rune{
	0x80: '€',
	0x82: '‚',
	0x83: 'ƒ',
	0x84: '„',
	0x85: '…',
	0x86: '†',
	0x87: '‡',
	0x88: 'ˆ',
	0x89: '‰',
	0x8A: 'Š',
	0x8B: '‹',
	0x8C: 'Œ',
	0x8E: 'Ž',
	0x91: '‘',
	0x92: '’',
	0x93: '“',
	0x94: '”',
	0x95: '•',
	0x96: '–',
	0x97: '—',
	0x98: '˜',
	0x99: '™',
	0x9A: 'š',
	0x9B: '›',
	0x9C: 'œ',
	0x9E: 'ž',
	0x9F: 'Ÿ',
}
