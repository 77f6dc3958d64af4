// Package word implements the 256-bit machine word: an immutable 32-byte
// big-endian value with unsigned and two's-complement signed views and the
// full EVM arithmetic, comparison and bitwise operation set. All unsigned
// results are reduced modulo 2^256; every operation returns a new Word.
package word

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Size is the width of a Word in bytes.
const Size = 32

// Word is a 256-bit value stored as 32 big-endian bytes. The zero value is
// the number zero.
type Word [Size]byte

var (
	big1    = big.NewInt(1)
	tt256   = new(big.Int).Lsh(big1, 256)                // 2^256
	tt256m1 = new(big.Int).Sub(tt256, big1)              // 2^256 - 1
	tt255   = new(big.Int).Lsh(big1, 255)                // 2^255
	minS256 = new(big.Int).Neg(tt255)                    // -2^255
	negOne  = new(big.Int).Neg(big1)
)

// Zero is the word 0.
var Zero Word

// One is the word 1.
var One = FromUint64(1)

// MinSigned is the most negative signed word, -2^255.
var MinSigned = FromBig(tt255)

// MaxUnsigned is 2^256 - 1 (the all-ones word).
var MaxUnsigned = FromBig(tt256m1)

// FromUint64 returns the word with the given unsigned value.
func FromUint64(v uint64) Word {
	var w Word
	w[24] = byte(v >> 56)
	w[25] = byte(v >> 48)
	w[26] = byte(v >> 40)
	w[27] = byte(v >> 32)
	w[28] = byte(v >> 24)
	w[29] = byte(v >> 16)
	w[30] = byte(v >> 8)
	w[31] = byte(v)
	return w
}

// FromBytes returns the word whose big-endian representation is b,
// left-padded with zeros. It returns an error if b is longer than 32 bytes.
func FromBytes(b []byte) (Word, error) {
	var w Word
	if len(b) > Size {
		return w, fmt.Errorf("word: %d bytes exceeds 256 bits", len(b))
	}
	copy(w[Size-len(b):], b)
	return w, nil
}

// FromBig returns the word equal to v modulo 2^256. Negative values are
// mapped to their two's-complement representation.
func FromBig(v *big.Int) Word {
	u := new(big.Int).And(v, tt256m1)
	var w Word
	u.FillBytes(w[:])
	return w
}

// FromHex parses a 0x-prefixed or bare hex string of at most 64 digits.
func FromHex(s string) (Word, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Word{}, fmt.Errorf("word: %v", err)
	}
	return FromBytes(b)
}

func fromSigned(v *big.Int) Word {
	return FromBig(v) // And with the mask is two's-complement reduction
}

// Unsigned returns the value as a non-negative big integer in [0, 2^256).
func (w Word) Unsigned() *big.Int {
	return new(big.Int).SetBytes(w[:])
}

// Signed returns the two's-complement value in [-2^255, 2^255).
func (w Word) Signed() *big.Int {
	u := w.Unsigned()
	if u.Cmp(tt255) < 0 {
		return u
	}
	return u.Sub(u, tt256)
}

// Bytes32 returns the 32-byte big-endian representation.
func (w Word) Bytes32() [Size]byte {
	return w
}

// Uint64WithOverflow returns the low 64 bits and reports whether the value
// exceeds the uint64 range.
func (w Word) Uint64WithOverflow() (uint64, bool) {
	for _, b := range w[:24] {
		if b != 0 {
			return 0, true
		}
	}
	var v uint64
	for _, b := range w[24:] {
		v = v<<8 | uint64(b)
	}
	return v, false
}

// IsZero reports whether the word is zero.
func (w Word) IsZero() bool {
	return w == Zero
}

// Hex returns the minimal 0x-prefixed hex representation.
func (w Word) Hex() string {
	return fmt.Sprintf("%#x", w.Unsigned())
}

// String implements fmt.Stringer.
func (w Word) String() string {
	return w.Hex()
}

// Add returns w + v mod 2^256.
func (w Word) Add(v Word) Word {
	return FromBig(new(big.Int).Add(w.Unsigned(), v.Unsigned()))
}

// Sub returns w - v mod 2^256.
func (w Word) Sub(v Word) Word {
	return FromBig(new(big.Int).Sub(w.Unsigned(), v.Unsigned()))
}

// Mul returns w * v mod 2^256.
func (w Word) Mul(v Word) Word {
	return FromBig(new(big.Int).Mul(w.Unsigned(), v.Unsigned()))
}

// Div returns the unsigned quotient w / v, or zero if v is zero.
func (w Word) Div(v Word) Word {
	if v.IsZero() {
		return Zero
	}
	return FromBig(new(big.Int).Div(w.Unsigned(), v.Unsigned()))
}

// Sdiv returns the signed quotient truncated toward zero, or zero if v is
// zero. MinSigned / -1 overflows and wraps to MinSigned.
func (w Word) Sdiv(v Word) Word {
	sx, sy := w.Signed(), v.Signed()
	if sy.Sign() == 0 {
		return Zero
	}
	if sx.Cmp(minS256) == 0 && sy.Cmp(negOne) == 0 {
		return MinSigned
	}
	return fromSigned(new(big.Int).Quo(sx, sy))
}

// Mod returns the unsigned remainder w % v, or zero if v is zero.
func (w Word) Mod(v Word) Word {
	if v.IsZero() {
		return Zero
	}
	return FromBig(new(big.Int).Mod(w.Unsigned(), v.Unsigned()))
}

// Smod returns the signed remainder with the sign of the dividend, or zero
// if v is zero.
func (w Word) Smod(v Word) Word {
	sx, sy := w.Signed(), v.Signed()
	if sy.Sign() == 0 {
		return Zero
	}
	return fromSigned(new(big.Int).Rem(sx, sy))
}

// AddMod returns (w + v) % m computed at full precision, or zero if m is
// zero.
func (w Word) AddMod(v, m Word) Word {
	if m.IsZero() {
		return Zero
	}
	sum := new(big.Int).Add(w.Unsigned(), v.Unsigned())
	return FromBig(sum.Mod(sum, m.Unsigned()))
}

// MulMod returns (w * v) % m computed at full precision, or zero if m is
// zero.
func (w Word) MulMod(v, m Word) Word {
	if m.IsZero() {
		return Zero
	}
	prod := new(big.Int).Mul(w.Unsigned(), v.Unsigned())
	return FromBig(prod.Mod(prod, m.Unsigned()))
}

// Exp returns w raised to the unsigned power v, mod 2^256.
func (w Word) Exp(v Word) Word {
	return FromBig(new(big.Int).Exp(w.Unsigned(), v.Unsigned(), tt256))
}

// SignExtend treats the byte at big-endian position 31-index as the sign
// byte and propagates its high bit through all more-significant bytes.
// Indices of 31 or more leave the word unchanged.
func (w Word) SignExtend(index Word) Word {
	i, overflow := index.Uint64WithOverflow()
	if overflow || i >= 31 {
		return w
	}
	pos := Size - 1 - int(i)
	fill := byte(0x00)
	if w[pos]&0x80 != 0 {
		fill = 0xff
	}
	out := w
	for j := 0; j < pos; j++ {
		out[j] = fill
	}
	return out
}

// Lt reports w < v, unsigned.
func (w Word) Lt(v Word) bool {
	return w.Unsigned().Cmp(v.Unsigned()) < 0
}

// Gt reports w > v, unsigned.
func (w Word) Gt(v Word) bool {
	return w.Unsigned().Cmp(v.Unsigned()) > 0
}

// Slt reports w < v under the signed view.
func (w Word) Slt(v Word) bool {
	return w.Signed().Cmp(v.Signed()) < 0
}

// Sgt reports w > v under the signed view.
func (w Word) Sgt(v Word) bool {
	return w.Signed().Cmp(v.Signed()) > 0
}

// Eq reports w == v.
func (w Word) Eq(v Word) bool {
	return w == v
}

// And returns the bitwise AND of w and v.
func (w Word) And(v Word) Word {
	var out Word
	for i := range out {
		out[i] = w[i] & v[i]
	}
	return out
}

// Or returns the bitwise OR of w and v.
func (w Word) Or(v Word) Word {
	var out Word
	for i := range out {
		out[i] = w[i] | v[i]
	}
	return out
}

// Xor returns the bitwise XOR of w and v.
func (w Word) Xor(v Word) Word {
	var out Word
	for i := range out {
		out[i] = w[i] ^ v[i]
	}
	return out
}

// Not returns the bitwise complement of all 256 bits.
func (w Word) Not() Word {
	var out Word
	for i := range out {
		out[i] = ^w[i]
	}
	return out
}

// Byte returns the single byte at big-endian position index, zero-extended
// to a word. Indices of 32 or more yield zero.
func (w Word) Byte(index Word) Word {
	i, overflow := index.Uint64WithOverflow()
	if overflow || i >= Size {
		return Zero
	}
	return FromUint64(uint64(w[i]))
}

// Shl returns w shifted left by shift bits; shifts of 256 or more yield
// zero.
func (w Word) Shl(shift Word) Word {
	n, overflow := shift.Uint64WithOverflow()
	if overflow || n >= 256 {
		return Zero
	}
	return FromBig(new(big.Int).Lsh(w.Unsigned(), uint(n)))
}

// Shr returns w logically shifted right by shift bits; shifts of 256 or
// more yield zero.
func (w Word) Shr(shift Word) Word {
	n, overflow := shift.Uint64WithOverflow()
	if overflow || n >= 256 {
		return Zero
	}
	return FromBig(new(big.Int).Rsh(w.Unsigned(), uint(n)))
}

// Sar returns w arithmetically shifted right by shift bits under the
// signed view. Shifts of 256 or more yield zero for non-negative words and
// all-ones for negative words.
func (w Word) Sar(shift Word) Word {
	s := w.Signed()
	n, overflow := shift.Uint64WithOverflow()
	if overflow || n >= 256 {
		if s.Sign() >= 0 {
			return Zero
		}
		return MaxUnsigned
	}
	return fromSigned(s.Rsh(s, uint(n)))
}
