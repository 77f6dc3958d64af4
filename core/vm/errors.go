package vm

import "errors"

// Fault reasons. Each terminal fault returned by the interpreter wraps one
// of these sentinels, so callers classify with errors.Is.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrStackOverflow  = errors.New("stack overflow")
	ErrInvalidOpcode  = errors.New("invalid opcode")
	ErrInvalidJump    = errors.New("invalid jump destination")
	ErrMemoryOverflow = errors.New("memory address overflow")
)
