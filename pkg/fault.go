package htmltok

import (
	"fmt"

	"github.com/juju/errors"
)

// TokenizerFault is raised (via panic) for programming errors: misuse of the
// builder/input-stream contracts that indicates a bug in the tokenizer itself,
// never a property of the input document. Per spec.md §7, malformed HTML is
// always recoverable and never reaches this path.
type TokenizerFault struct {
	State  string
	Offset int
	Detail string
	cause  error
}

func (f *TokenizerFault) Error() string {
	return fmt.Sprintf("htmltok: fault in state %s at offset %d: %s", f.State, f.Offset, f.Detail)
}

// Unwrap exposes the annotated juju/errors cause so callers using errors.Is/As
// (or juju/errors.Cause) can recover the original trace.
func (f *TokenizerFault) Unwrap() error {
	return f.cause
}

// newFault builds a TokenizerFault annotated with a juju/errors stack trace, the
// way the teacher's sibling example (flosch-pongo2) annotates template-execution
// errors rather than returning a bare string.
func newFault(detail, state string, offset int) *TokenizerFault {
	cause := errors.Annotatef(errors.New(detail), "state=%s offset=%d", state, offset)
	return &TokenizerFault{State: state, Offset: offset, Detail: detail, cause: cause}
}
