package vm

import (
	"fmt"

	"github.com/brotchie/toyeth/core/word"
	"github.com/brotchie/toyeth/crypto"
)

// executionFunc is the signature for opcode execution functions. The
// interpreter loop advances the program counter by one after execution
// unless the operation jumps; PUSH handlers additionally skip their
// immediates through pc.
type executionFunc func(pc *uint64, st *State) error

func boolToWord(b bool) word.Word {
	if b {
		return word.One
	}
	return word.Zero
}

func opStop(pc *uint64, st *State) error {
	return nil
}

func opAdd(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Add(b))
	return nil
}

func opMul(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Mul(b))
	return nil
}

func opSub(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Sub(b))
	return nil
}

func opDiv(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Div(b))
	return nil
}

func opSdiv(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Sdiv(b))
	return nil
}

func opMod(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Mod(b))
	return nil
}

func opSmod(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Smod(b))
	return nil
}

func opAddmod(pc *uint64, st *State) error {
	a, b, m := st.Stack.Pop(), st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.AddMod(b, m))
	return nil
}

func opMulmod(pc *uint64, st *State) error {
	a, b, m := st.Stack.Pop(), st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.MulMod(b, m))
	return nil
}

func opExp(pc *uint64, st *State) error {
	base, exponent := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(base.Exp(exponent))
	return nil
}

func opSignExtend(pc *uint64, st *State) error {
	index, value := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(value.SignExtend(index))
	return nil
}

func opLt(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(boolToWord(a.Lt(b)))
	return nil
}

func opGt(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(boolToWord(a.Gt(b)))
	return nil
}

func opSlt(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(boolToWord(a.Slt(b)))
	return nil
}

func opSgt(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(boolToWord(a.Sgt(b)))
	return nil
}

func opEq(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(boolToWord(a.Eq(b)))
	return nil
}

func opIsZero(pc *uint64, st *State) error {
	a := st.Stack.Pop()
	st.Stack.Push(boolToWord(a.IsZero()))
	return nil
}

func opAnd(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.And(b))
	return nil
}

func opOr(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Or(b))
	return nil
}

func opXor(pc *uint64, st *State) error {
	a, b := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(a.Xor(b))
	return nil
}

func opNot(pc *uint64, st *State) error {
	a := st.Stack.Pop()
	st.Stack.Push(a.Not())
	return nil
}

func opByte(pc *uint64, st *State) error {
	index, value := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(value.Byte(index))
	return nil
}

func opSHL(pc *uint64, st *State) error {
	shift, value := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(value.Shl(shift))
	return nil
}

func opSHR(pc *uint64, st *State) error {
	shift, value := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(value.Shr(shift))
	return nil
}

func opSAR(pc *uint64, st *State) error {
	shift, value := st.Stack.Pop(), st.Stack.Pop()
	st.Stack.Push(value.Sar(shift))
	return nil
}

func opKeccak256(pc *uint64, st *State) error {
	offset, size := st.Stack.Pop(), st.Stack.Pop()
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return fmt.Errorf("%w: keccak256 offset %s", ErrMemoryOverflow, offset)
	}
	sz, overflow := size.Uint64WithOverflow()
	if overflow {
		return fmt.Errorf("%w: keccak256 size %s", ErrMemoryOverflow, size)
	}
	data, err := st.Memory.Read(off, sz)
	if err != nil {
		return fmt.Errorf("%w: keccak256 range [%d, %d+%d)", err, off, off, sz)
	}
	st.Stack.Push(crypto.Keccak256Word(data))
	return nil
}

func opPop(pc *uint64, st *State) error {
	st.Stack.Pop()
	return nil
}

func opMload(pc *uint64, st *State) error {
	offset := st.Stack.Pop()
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return fmt.Errorf("%w: mload at %s", ErrMemoryOverflow, offset)
	}
	val, err := st.Memory.ReadWord(off)
	if err != nil {
		return fmt.Errorf("%w: mload at %d", err, off)
	}
	st.Stack.Push(val)
	return nil
}

func opMstore(pc *uint64, st *State) error {
	offset, val := st.Stack.Pop(), st.Stack.Pop()
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return fmt.Errorf("%w: mstore at %s", ErrMemoryOverflow, offset)
	}
	if err := st.Memory.WriteWord(off, val); err != nil {
		return fmt.Errorf("%w: mstore at %d", err, off)
	}
	return nil
}

func opMstore8(pc *uint64, st *State) error {
	offset, val := st.Stack.Pop(), st.Stack.Pop()
	off, overflow := offset.Uint64WithOverflow()
	if overflow {
		return fmt.Errorf("%w: mstore8 at %s", ErrMemoryOverflow, offset)
	}
	if err := st.Memory.StoreByte(off, val); err != nil {
		return fmt.Errorf("%w: mstore8 at %d", err, off)
	}
	return nil
}

func opJump(pc *uint64, st *State) error {
	pos := st.Stack.Pop()
	if !st.validJumpdest(pos) {
		return fmt.Errorf("%w: %s", ErrInvalidJump, pos)
	}
	dest, _ := pos.Uint64WithOverflow()
	*pc = dest
	return nil
}

func opJumpi(pc *uint64, st *State) error {
	pos, cond := st.Stack.Pop(), st.Stack.Pop()
	if cond.IsZero() {
		*pc++
		return nil
	}
	if !st.validJumpdest(pos) {
		return fmt.Errorf("%w: %s", ErrInvalidJump, pos)
	}
	dest, _ := pos.Uint64WithOverflow()
	*pc = dest
	return nil
}

func opJumpdest(pc *uint64, st *State) error {
	return nil
}

func opPc(pc *uint64, st *State) error {
	st.Stack.Push(word.FromUint64(*pc))
	return nil
}

func opMsize(pc *uint64, st *State) error {
	st.Stack.Push(word.FromUint64(st.Memory.Size()))
	return nil
}

func opGas(pc *uint64, st *State) error {
	st.Stack.Push(word.FromUint64(st.Gas))
	return nil
}

// makePush returns an executionFunc that pushes the next size immediate
// bytes from code. Immediates truncated by the end of code are zero-padded
// on the right.
func makePush(size uint64) executionFunc {
	return func(pc *uint64, st *State) error {
		start := *pc + 1
		end := start + size
		codeLen := uint64(len(st.Code))

		var data []byte
		if start >= codeLen {
			data = make([]byte, size)
		} else if end > codeLen {
			data = make([]byte, size)
			copy(data, st.Code[start:codeLen])
		} else {
			data = st.Code[start:end]
		}

		val, err := word.FromBytes(data)
		if err != nil {
			return err
		}
		st.Stack.Push(val)
		*pc += size
		return nil
	}
}

// makeDup returns an executionFunc that duplicates the nth stack item.
func makeDup(n int) executionFunc {
	return func(pc *uint64, st *State) error {
		st.Stack.Dup(n)
		return nil
	}
}

// makeSwap returns an executionFunc that swaps the top with the nth item
// below it.
func makeSwap(n int) executionFunc {
	return func(pc *uint64, st *State) error {
		st.Stack.Swap(n)
		return nil
	}
}
