package vm

import "github.com/brotchie/toyeth/core/word"

// State is the machine state of a single execution: the immutable
// bytecode, the operand stack, memory, the program counter and an advisory
// gas counter. A State is owned by exactly one execution and must not be
// shared.
type State struct {
	Code   []byte
	Stack  *Stack
	Memory *Memory
	Gas    uint64

	pc uint64
}

// NewState returns a fresh State positioned at the start of code with the
// given gas allowance.
func NewState(code []byte, gas uint64) *State {
	return &State{
		Code:   code,
		Stack:  NewStack(),
		Memory: NewMemory(),
		Gas:    gas,
	}
}

// PC returns the current program counter.
func (s *State) PC() uint64 {
	return s.pc
}

// GetOp returns the opcode at position n in the code. Positions at or past
// the end of code read as STOP, which is what makes running off the end an
// implicit halt.
func (s *State) GetOp(n uint64) OpCode {
	if n < uint64(len(s.Code)) {
		return OpCode(s.Code[n])
	}
	return STOP
}

// ChargeGas deducts amount from the gas counter, reporting false without
// deducting when not enough remains. No opcode in this core charges gas;
// the counter exists for metering policies layered on top by the caller.
func (s *State) ChargeGas(amount uint64) bool {
	if s.Gas < amount {
		return false
	}
	s.Gas -= amount
	return true
}

// validJumpdest reports whether dest is within the code and the byte there
// is the JUMPDEST marker.
func (s *State) validJumpdest(dest word.Word) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(s.Code)) {
		return false
	}
	return OpCode(s.Code[udest]) == JUMPDEST
}
