package vm

import "github.com/brotchie/toyeth/core/word"

// StackLimit is the maximum number of words on the operand stack.
const StackLimit = 1024

// Stack is the machine's operand stack (max 1024 items, 256-bit words).
// Depth requirements are validated by the interpreter against each
// operation's stack metadata before execution, so Pop and friends assume
// enough items are present.
type Stack struct {
	data []word.Word
}

// NewStack returns a new empty stack.
func NewStack() *Stack {
	return &Stack{data: make([]word.Word, 0, 16)}
}

// Push pushes a value onto the stack.
func (st *Stack) Push(val word.Word) {
	st.data = append(st.data, val)
}

// Pop removes and returns the top element.
func (st *Stack) Pop() word.Word {
	ret := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return ret
}

// Peek returns the top element without removing it.
func (st *Stack) Peek() word.Word {
	return st.data[len(st.data)-1]
}

// Back returns the nth element from the top (0-indexed: 0 = top).
func (st *Stack) Back(n int) word.Word {
	return st.data[len(st.data)-1-n]
}

// Swap exchanges the top element with the nth element below it.
func (st *Stack) Swap(n int) {
	top := len(st.data) - 1
	st.data[top], st.data[top-n] = st.data[top-n], st.data[top]
}

// Dup pushes a copy of the nth element from the top (1-indexed).
func (st *Stack) Dup(n int) {
	st.data = append(st.data, st.data[len(st.data)-n])
}

// Len returns the number of items on the stack.
func (st *Stack) Len() int {
	return len(st.data)
}

// Data returns the underlying stack slice (bottom to top).
func (st *Stack) Data() []word.Word {
	return st.data
}
