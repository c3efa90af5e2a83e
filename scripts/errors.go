package scripts

import (
	"errors"
	"fmt"
)

var (
	ErrCreationFailed   = errors.New("object creation failed")
	ErrUnknownType      = errors.New("unknown object type")
	ErrUnknownArgs      = errors.New("unknown argument")
	ErrInsufficientArgs = errors.New("insufficient arguments")
	ErrInvalidObject    = errors.New("invalid object")
	ErrInvalidBit       = errors.New("invalid bit")
	ErrParserFailed     = errors.New("parser failed")
)

// Error locates a compile failure in the script.
type Error struct {
	Line  int
	Token string
	Err   error
}

func (e *Error) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func lineError(line int, token string, err error) error {
	return &Error{
		Line:  line,
		Token: token,
		Err:   err,
	}
}
