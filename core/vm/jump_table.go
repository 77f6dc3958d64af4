package vm

// operation describes one opcode's execution metadata.
type operation struct {
	execute  executionFunc
	minStack int  // minimum stack items required
	maxStack int  // maximum stack depth allowed before execution
	halts    bool // terminates execution normally (STOP)
	jumps    bool // sets the program counter itself (JUMP, JUMPI)
}

// JumpTable maps every possible opcode byte to its operation definition.
// Entries left nil fault with ErrInvalidOpcode when fetched.
type JumpTable [256]*operation

// NewJumpTable builds the dispatch table for the machine's instruction
// set. The table is built once and never mutated afterwards; callers pass
// it by reference into the interpreter.
func NewJumpTable() *JumpTable {
	var tbl JumpTable

	// Arithmetic. SUB sits at 0x03, its standard slot.
	tbl[STOP] = &operation{execute: opStop, minStack: 0, maxStack: StackLimit, halts: true}
	tbl[ADD] = &operation{execute: opAdd, minStack: 2, maxStack: StackLimit}
	tbl[MUL] = &operation{execute: opMul, minStack: 2, maxStack: StackLimit}
	tbl[SUB] = &operation{execute: opSub, minStack: 2, maxStack: StackLimit}
	tbl[DIV] = &operation{execute: opDiv, minStack: 2, maxStack: StackLimit}
	tbl[SDIV] = &operation{execute: opSdiv, minStack: 2, maxStack: StackLimit}
	tbl[MOD] = &operation{execute: opMod, minStack: 2, maxStack: StackLimit}
	tbl[SMOD] = &operation{execute: opSmod, minStack: 2, maxStack: StackLimit}
	tbl[ADDMOD] = &operation{execute: opAddmod, minStack: 3, maxStack: StackLimit}
	tbl[MULMOD] = &operation{execute: opMulmod, minStack: 3, maxStack: StackLimit}
	tbl[EXP] = &operation{execute: opExp, minStack: 2, maxStack: StackLimit}
	tbl[SIGNEXTEND] = &operation{execute: opSignExtend, minStack: 2, maxStack: StackLimit}

	// Comparison and bitwise.
	tbl[LT] = &operation{execute: opLt, minStack: 2, maxStack: StackLimit}
	tbl[GT] = &operation{execute: opGt, minStack: 2, maxStack: StackLimit}
	tbl[SLT] = &operation{execute: opSlt, minStack: 2, maxStack: StackLimit}
	tbl[SGT] = &operation{execute: opSgt, minStack: 2, maxStack: StackLimit}
	tbl[EQ] = &operation{execute: opEq, minStack: 2, maxStack: StackLimit}
	tbl[ISZERO] = &operation{execute: opIsZero, minStack: 1, maxStack: StackLimit}
	tbl[AND] = &operation{execute: opAnd, minStack: 2, maxStack: StackLimit}
	tbl[OR] = &operation{execute: opOr, minStack: 2, maxStack: StackLimit}
	tbl[XOR] = &operation{execute: opXor, minStack: 2, maxStack: StackLimit}
	tbl[NOT] = &operation{execute: opNot, minStack: 1, maxStack: StackLimit}
	tbl[BYTE] = &operation{execute: opByte, minStack: 2, maxStack: StackLimit}
	tbl[SHL] = &operation{execute: opSHL, minStack: 2, maxStack: StackLimit}
	tbl[SHR] = &operation{execute: opSHR, minStack: 2, maxStack: StackLimit}
	tbl[SAR] = &operation{execute: opSAR, minStack: 2, maxStack: StackLimit}

	// Hashing.
	tbl[KECCAK256] = &operation{execute: opKeccak256, minStack: 2, maxStack: StackLimit}

	// Stack, memory, flow.
	tbl[POP] = &operation{execute: opPop, minStack: 1, maxStack: StackLimit}
	tbl[MLOAD] = &operation{execute: opMload, minStack: 1, maxStack: StackLimit}
	tbl[MSTORE] = &operation{execute: opMstore, minStack: 2, maxStack: StackLimit}
	tbl[MSTORE8] = &operation{execute: opMstore8, minStack: 2, maxStack: StackLimit}
	tbl[JUMP] = &operation{execute: opJump, minStack: 1, maxStack: StackLimit, jumps: true}
	tbl[JUMPI] = &operation{execute: opJumpi, minStack: 2, maxStack: StackLimit, jumps: true}
	tbl[PC] = &operation{execute: opPc, minStack: 0, maxStack: StackLimit - 1}
	tbl[MSIZE] = &operation{execute: opMsize, minStack: 0, maxStack: StackLimit - 1}
	tbl[GAS] = &operation{execute: opGas, minStack: 0, maxStack: StackLimit - 1}
	tbl[JUMPDEST] = &operation{execute: opJumpdest, minStack: 0, maxStack: StackLimit}

	// PUSH1..PUSH32.
	for i := 1; i <= 32; i++ {
		tbl[PUSH1+OpCode(i-1)] = &operation{
			execute:  makePush(uint64(i)),
			minStack: 0,
			maxStack: StackLimit - 1,
		}
	}

	// DUP1..DUP16.
	for i := 1; i <= 16; i++ {
		tbl[DUP1+OpCode(i-1)] = &operation{
			execute:  makeDup(i),
			minStack: i,
			maxStack: StackLimit - 1,
		}
	}

	// SWAP1..SWAP16.
	for i := 1; i <= 16; i++ {
		tbl[SWAP1+OpCode(i-1)] = &operation{
			execute:  makeSwap(i),
			minStack: i + 1,
			maxStack: StackLimit,
		}
	}

	return &tbl
}
