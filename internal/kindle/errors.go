package kindle

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedActionLine is matched by every *MalformedActionLineError.
	ErrMalformedActionLine = errors.New("malformed action line")

	// ErrTruncatedBlock means a block ended right after its title line.
	ErrTruncatedBlock = errors.New("truncated block")

	// ErrUnknownAction means the action keyword is not Highlight, Note or Bookmark.
	ErrUnknownAction = errors.New("unknown action")
)

// MalformedActionLineError carries the offending action line.
type MalformedActionLineError struct {
	Line int    // 1-based line number in the input
	Text string // trimmed line text
	Err  error  // optional cause, e.g. ErrUnknownAction
}

func (e *MalformedActionLineError) Error() string {
	msg := fmt.Sprintf("line %d: can't parse action line %q", e.Line, e.Text)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedActionLineError) Is(target error) bool {
	return target == ErrMalformedActionLine
}

func (e *MalformedActionLineError) Unwrap() error {
	return e.Err
}
