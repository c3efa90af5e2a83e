package plcs

import "errors"

var (
	ErrEmptyRung       = errors.New("empty rung")
	ErrObjectNotFound  = errors.New("object not found")
	ErrNotResettable   = errors.New("object has no reset")
	ErrNotRemote       = errors.New("object is not a remote accessor")
	ErrNoValue         = errors.New("object has no value")
	ErrUnboundOperands = errors.New("math operands not bound")
)
