package htmltok

import "strings"

// tagKind distinguishes a start tag builder from an end tag builder; both share
// the same accumulation logic (name + attributes) so a single builder type
// serves both, selected by kind at finalize time.
type tagKind uint8

const (
	startTagKind tagKind = iota
	endTagKind
)

// tagBuilder accumulates a start or end tag. Name and attribute-name fields fold
// ASCII uppercase to lowercase as they are appended (spec.md §4.5).
type tagBuilder struct {
	kind        tagKind
	name        strings.Builder
	selfClosing bool

	attrs     []Attribute
	attrNames map[string]struct{}

	curName         strings.Builder
	curValue        strings.Builder
	haveCurrentAttr bool
}

func newTagBuilder(kind tagKind) *tagBuilder {
	return &tagBuilder{kind: kind}
}

func (b *tagBuilder) appendName(r rune) {
	b.name.WriteRune(foldASCIICase(r))
}

// startAttribute commits whatever attribute was in progress (if any) and opens
// a new one, returning the just-committed attribute's (name, duplicate) (the
// same shape finishAttribute reports, since this is simply finishAttribute
// immediately followed by opening the next slot).
func (b *tagBuilder) startAttribute() (name string, duplicate bool) {
	name, duplicate = b.finishAttribute()
	b.haveCurrentAttr = true
	b.curName.Reset()
	b.curValue.Reset()
	return name, duplicate
}

func (b *tagBuilder) appendAttrName(r rune) {
	b.curName.WriteRune(foldASCIICase(r))
}

func (b *tagBuilder) appendAttrValue(r rune) {
	b.curValue.WriteRune(r)
}

// finishAttribute commits the in-progress attribute, if any, dropping it (and
// reporting duplicate=true) if its name collides with one already present.
func (b *tagBuilder) finishAttribute() (name string, duplicate bool) {
	if !b.haveCurrentAttr {
		return "", false
	}
	b.haveCurrentAttr = false

	name = b.curName.String()
	if name == "" {
		return "", false
	}

	if b.attrNames == nil {
		b.attrNames = make(map[string]struct{})
	}
	if _, seen := b.attrNames[name]; seen {
		return name, true
	}
	b.attrNames[name] = struct{}{}
	b.attrs = append(b.attrs, Attribute{Name: name, Value: b.curValue.String()})
	return name, false
}

func (b *tagBuilder) finalize() Token {
	b.finishAttribute()

	typ := StartTagToken
	if b.kind == endTagKind {
		typ = EndTagToken
	}
	return Token{
		Type:        typ,
		Name:        b.name.String(),
		SelfClosing: b.selfClosing,
		Attr:        b.attrs,
	}
}

// doctypeBuilder accumulates a DOCTYPE token.
type doctypeBuilder struct {
	name        strings.Builder
	public      strings.Builder
	system      strings.Builder
	hasPublic   bool
	hasSystem   bool
	forceQuirks bool
}

func newDoctypeBuilder() *doctypeBuilder {
	return &doctypeBuilder{}
}

func (b *doctypeBuilder) appendName(r rune) {
	b.name.WriteRune(foldASCIICase(r))
}

func (b *doctypeBuilder) startPublicID() {
	b.hasPublic = true
	b.public.Reset()
}

func (b *doctypeBuilder) appendPublicID(r rune) {
	b.public.WriteRune(r)
}

func (b *doctypeBuilder) startSystemID() {
	b.hasSystem = true
	b.system.Reset()
}

func (b *doctypeBuilder) appendSystemID(r rune) {
	b.system.WriteRune(r)
}

func (b *doctypeBuilder) setForceQuirks() {
	b.forceQuirks = true
}

func (b *doctypeBuilder) finalize() Token {
	return Token{
		Type:            DoctypeToken,
		Name:            b.name.String(),
		PublicID:        b.public.String(),
		PublicIDPresent: b.hasPublic,
		SystemID:        b.system.String(),
		SystemIDPresent: b.hasSystem,
		ForceQuirks:     b.forceQuirks,
	}
}

// commentBuilder accumulates a comment (including the BogusComment variants,
// which share the same accumulation and just differ in how they were entered).
type commentBuilder struct {
	data strings.Builder
}

func newCommentBuilder() *commentBuilder {
	return &commentBuilder{}
}

func newCommentBuilderWithData(initial string) *commentBuilder {
	b := &commentBuilder{}
	b.data.WriteString(initial)
	return b
}

func (b *commentBuilder) append(r rune) {
	b.data.WriteRune(r)
}

func (b *commentBuilder) appendString(s string) {
	b.data.WriteString(s)
}

func (b *commentBuilder) finalize() Token {
	return Token{Type: CommentToken, Data: b.data.String()}
}

// foldASCIICase folds ASCII uppercase letters to lowercase by adding 0x20, and
// leaves everything else (including non-ASCII letters) untouched, per spec.md's
// tie-break rule.
func foldASCIICase(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
}
