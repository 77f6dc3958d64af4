package vm

import (
	"math"

	"github.com/brotchie/toyeth/core/word"
)

// Memory is the machine's byte-addressable memory: conceptually an infinite
// zero-initialized byte array, backed by a contiguous buffer that grows on
// demand. A separate counter tracks the highest 32-byte word ever touched;
// it only grows and is what MSIZE reports, independent of how the backing
// buffer is sized.
type Memory struct {
	store       []byte
	activeWords uint64
}

// NewMemory returns a new empty Memory.
func NewMemory() *Memory {
	return &Memory{}
}

// touch grows the backing store to cover [offset, offset+size) and bumps
// the active word count to ceil((offset+size)/32). It reports
// ErrMemoryOverflow when the end of the range, rounded up to a word
// boundary, does not fit in a uint64.
func (m *Memory) touch(offset, size uint64) error {
	if size == 0 {
		return nil
	}
	end := offset + size
	if end < offset || end > math.MaxUint64-31 {
		return ErrMemoryOverflow
	}
	words := (end + 31) / 32
	if words > m.activeWords {
		m.activeWords = words
	}
	if byteLen := words * 32; uint64(len(m.store)) < byteLen {
		m.store = append(m.store, make([]byte, byteLen-uint64(len(m.store)))...)
	}
	return nil
}

// ReadWord returns the 32 bytes at offset as a word. Positions never
// written read as zero; the read itself counts as touching the region.
func (m *Memory) ReadWord(offset uint64) (word.Word, error) {
	if err := m.touch(offset, 32); err != nil {
		return word.Word{}, err
	}
	var w word.Word
	copy(w[:], m.store[offset:offset+32])
	return w, nil
}

// WriteWord stores the 32-byte big-endian representation of val at offset.
func (m *Memory) WriteWord(offset uint64, val word.Word) error {
	if err := m.touch(offset, 32); err != nil {
		return err
	}
	copy(m.store[offset:offset+32], val[:])
	return nil
}

// StoreByte stores the low-order byte of val at offset.
func (m *Memory) StoreByte(offset uint64, val word.Word) error {
	if err := m.touch(offset, 1); err != nil {
		return err
	}
	m.store[offset] = val[word.Size-1]
	return nil
}

// Read returns a copy of the size bytes at offset, growing the touched
// extent like any other access. A zero size reads nothing and touches
// nothing.
func (m *Memory) Read(offset, size uint64) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	if err := m.touch(offset, size); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, m.store[offset:offset+size])
	return out, nil
}

// ActiveWords returns the number of 32-byte words ever touched.
func (m *Memory) ActiveWords() uint64 {
	return m.activeWords
}

// Size returns the active memory size in bytes (ActiveWords * 32).
func (m *Memory) Size() uint64 {
	return m.activeWords * 32
}

// Len returns the current length of the backing store in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Data returns the full backing slice.
func (m *Memory) Data() []byte {
	return m.store
}
