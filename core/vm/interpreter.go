package vm

import (
	"fmt"

	"github.com/brotchie/toyeth/log"
)

// Signal classifies the outcome of a single interpreter step or a whole
// run.
type Signal int

const (
	// Continue means the step executed and more code remains.
	Continue Signal = iota
	// Halted means execution terminated normally, via STOP or by
	// running off the end of the code.
	Halted
	// Faulted means execution terminated with an error. The machine
	// state is frozen at the faulting instruction.
	Faulted
)

func (s Signal) String() string {
	switch s {
	case Continue:
		return "continue"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("signal(%d)", int(s))
}

// Config holds interpreter options.
type Config struct {
	// Logger, when set, receives a debug trace line per executed
	// instruction.
	Logger *log.Logger
}

// Interpreter drives a State through its code one instruction at a time
// against a fixed dispatch table. Once a step reports Halted or Faulted the
// interpreter is terminal: further Step calls return the same signal and
// error without touching the state.
type Interpreter struct {
	table  *JumpTable
	state  *State
	config Config

	signal Signal
	err    error
	steps  uint64
}

// NewInterpreter returns an interpreter over state using table for
// dispatch. A nil table selects the default instruction set.
func NewInterpreter(state *State, table *JumpTable, config Config) *Interpreter {
	if table == nil {
		table = NewJumpTable()
	}
	return &Interpreter{
		table:  table,
		state:  state,
		config: config,
	}
}

// Step executes a single instruction and reports the resulting signal.
// On a fault the returned error wraps one of the package sentinels.
func (in *Interpreter) Step() (Signal, error) {
	if in.signal != Continue {
		return in.signal, in.err
	}

	st := in.state
	if st.pc >= uint64(len(st.Code)) {
		in.signal = Halted
		return in.signal, nil
	}

	op := st.GetOp(st.pc)
	operation := in.table[op]
	if operation == nil {
		return in.fault(fmt.Errorf("%w: %#x at pc %d", ErrInvalidOpcode, byte(op), st.pc))
	}
	if st.Stack.Len() < operation.minStack {
		return in.fault(fmt.Errorf("%w: %s needs %d, have %d", ErrStackUnderflow, op, operation.minStack, st.Stack.Len()))
	}
	if st.Stack.Len() > operation.maxStack {
		return in.fault(fmt.Errorf("%w: %s at depth %d", ErrStackOverflow, op, st.Stack.Len()))
	}

	if in.config.Logger != nil {
		in.config.Logger.Debug("step",
			"pc", st.pc,
			"op", op.String(),
			"stack", st.Stack.Len(),
			"msize", st.Memory.Size())
	}

	pc := st.pc
	if err := operation.execute(&pc, st); err != nil {
		return in.fault(err)
	}
	in.steps++

	if operation.halts {
		in.signal = Halted
		st.pc = pc
		return in.signal, nil
	}
	if !operation.jumps {
		pc++
	}
	st.pc = pc
	return Continue, nil
}

func (in *Interpreter) fault(err error) (Signal, error) {
	in.signal = Faulted
	in.err = err
	return in.signal, in.err
}

// Run steps until the machine halts or faults, returning the terminal
// signal and, for faults, the cause.
func (in *Interpreter) Run() (Signal, error) {
	for {
		sig, err := in.Step()
		if sig != Continue {
			return sig, err
		}
	}
}

// State returns the machine state being driven.
func (in *Interpreter) State() *State {
	return in.state
}

// Signal returns the interpreter's current signal.
func (in *Interpreter) Signal() Signal {
	return in.signal
}

// Err returns the fault cause, or nil.
func (in *Interpreter) Err() error {
	return in.err
}

// Steps returns the number of instructions executed so far.
func (in *Interpreter) Steps() uint64 {
	return in.steps
}
