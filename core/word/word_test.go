package word

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
)

func fromHexOrDie(t *testing.T, s string) Word {
	t.Helper()
	w, err := FromHex(s)
	if err != nil {
		t.Fatalf("FromHex(%q): %v", s, err)
	}
	return w
}

func TestFromUint64(t *testing.T) {
	w := FromUint64(0xdeadbeef)
	if got := w.Unsigned().Uint64(); got != 0xdeadbeef {
		t.Errorf("Unsigned() = %#x, want 0xdeadbeef", got)
	}
	if v, overflow := w.Uint64WithOverflow(); overflow || v != 0xdeadbeef {
		t.Errorf("Uint64WithOverflow() = %#x, %v", v, overflow)
	}
}

func TestUint64Overflow(t *testing.T) {
	w := FromBig(new(big.Int).Lsh(big.NewInt(1), 64))
	if _, overflow := w.Uint64WithOverflow(); !overflow {
		t.Error("expected overflow for 2^64")
	}
}

func TestFromBytesTooLong(t *testing.T) {
	if _, err := FromBytes(make([]byte, 33)); err == nil {
		t.Error("expected error for 33-byte input")
	}
}

func TestSignedViews(t *testing.T) {
	if MinSigned.Signed().String() != new(big.Int).Neg(tt255).String() {
		t.Errorf("MinSigned.Signed() = %s", MinSigned.Signed())
	}
	if MaxUnsigned.Signed().Int64() != -1 {
		t.Errorf("MaxUnsigned.Signed() = %s, want -1", MaxUnsigned.Signed())
	}
	if One.Signed().Int64() != 1 {
		t.Errorf("One.Signed() = %s, want 1", One.Signed())
	}
}

func TestAddWraps(t *testing.T) {
	if got := MaxUnsigned.Add(One); !got.IsZero() {
		t.Errorf("(2^256-1) + 1 = %s, want 0", got)
	}
}

func TestSubWraps(t *testing.T) {
	if got := Zero.Sub(One); got != MaxUnsigned {
		t.Errorf("0 - 1 = %s, want all-ones", got)
	}
}

func TestDivByZero(t *testing.T) {
	a := FromUint64(1234)
	if got := a.Div(Zero); !got.IsZero() {
		t.Errorf("Div by zero = %s, want 0", got)
	}
	if got := a.Mod(Zero); !got.IsZero() {
		t.Errorf("Mod by zero = %s, want 0", got)
	}
	if got := a.Sdiv(Zero); !got.IsZero() {
		t.Errorf("Sdiv by zero = %s, want 0", got)
	}
	if got := a.Smod(Zero); !got.IsZero() {
		t.Errorf("Smod by zero = %s, want 0", got)
	}
	if got := a.AddMod(a, Zero); !got.IsZero() {
		t.Errorf("AddMod with zero modulus = %s, want 0", got)
	}
	if got := a.MulMod(a, Zero); !got.IsZero() {
		t.Errorf("MulMod with zero modulus = %s, want 0", got)
	}
}

func TestSdivOverflow(t *testing.T) {
	if got := MinSigned.Sdiv(MaxUnsigned); got != MinSigned {
		t.Errorf("MinSigned / -1 = %s, want MinSigned", got)
	}
}

func TestSdivTruncation(t *testing.T) {
	neg7 := FromBig(big.NewInt(-7))
	two := FromUint64(2)
	// -7 / 2 truncates toward zero: -3.
	if got := neg7.Sdiv(two); got.Signed().Int64() != -3 {
		t.Errorf("-7 sdiv 2 = %s, want -3", got.Signed())
	}
	// -7 % 2 takes the dividend's sign: -1.
	if got := neg7.Smod(two); got.Signed().Int64() != -1 {
		t.Errorf("-7 smod 2 = %s, want -1", got.Signed())
	}
}

func TestSignExtend(t *testing.T) {
	// Low byte 0xff, sign byte index 0: top 31 bytes become 0xff.
	v := FromUint64(0xff)
	if got := v.SignExtend(Zero); got != MaxUnsigned {
		t.Errorf("signextend(0, 0xff) = %s, want all-ones", got)
	}
	// Low byte 0x7f is non-negative: unchanged.
	v = FromUint64(0x7f)
	if got := v.SignExtend(Zero); got != v {
		t.Errorf("signextend(0, 0x7f) = %s, want %s", got, v)
	}
	// Sign byte keeps its own value.
	v = FromUint64(0x8042)
	got := v.SignExtend(One)
	want := fromHexOrDie(t, "0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff8042")
	if got != want {
		t.Errorf("signextend(1, 0x8042) = %s, want %s", got, want)
	}
	// Index >= 31 leaves the word unchanged.
	for _, idx := range []Word{FromUint64(31), FromUint64(32), FromUint64(1000), MaxUnsigned} {
		if got := v.SignExtend(idx); got != v {
			t.Errorf("signextend(%s) changed the word: %s", idx, got)
		}
	}
}

func TestByte(t *testing.T) {
	v := fromHexOrDie(t, "0x00000000000000000000000000000000000000000000000000000000000000ff")
	if got := v.Byte(FromUint64(31)); got != FromUint64(0xff) {
		t.Errorf("byte(31) = %s, want 0xff", got)
	}
	if got := v.Byte(FromUint64(30)); !got.IsZero() {
		t.Errorf("byte(30) = %s, want 0", got)
	}
	v = MinSigned // 0x80 followed by zeros
	if got := v.Byte(Zero); got != FromUint64(0x80) {
		t.Errorf("byte(0) = %s, want 0x80", got)
	}
	// Index out of the 32-byte frame is always zero.
	for _, idx := range []Word{FromUint64(32), FromUint64(255), MaxUnsigned} {
		if got := MaxUnsigned.Byte(idx); !got.IsZero() {
			t.Errorf("byte(%s) = %s, want 0", idx, got)
		}
	}
}

func TestShifts(t *testing.T) {
	if got := One.Shl(FromUint64(255)); got != MinSigned {
		t.Errorf("1 << 255 = %s, want 2^255", got)
	}
	if got := MinSigned.Shr(FromUint64(255)); got != One {
		t.Errorf("2^255 >> 255 = %s, want 1", got)
	}
	// Saturation at 256 bits.
	for _, n := range []Word{FromUint64(256), FromUint64(300), MaxUnsigned} {
		if got := MaxUnsigned.Shl(n); !got.IsZero() {
			t.Errorf("shl(%s) = %s, want 0", n, got)
		}
		if got := MaxUnsigned.Shr(n); !got.IsZero() {
			t.Errorf("shr(%s) = %s, want 0", n, got)
		}
		if got := One.Sar(n); !got.IsZero() {
			t.Errorf("sar(%s) of positive = %s, want 0", n, got)
		}
		if got := MinSigned.Sar(n); got != MaxUnsigned {
			t.Errorf("sar(%s) of negative = %s, want all-ones", n, got)
		}
	}
	// Arithmetic right shift fills with the sign bit.
	if got := MinSigned.Sar(One); got != fromHexOrDie(t, "0xc000000000000000000000000000000000000000000000000000000000000000") {
		t.Errorf("MinSigned sar 1 = %s", got)
	}
}

func TestComparisons(t *testing.T) {
	if !Zero.Lt(One) || One.Lt(Zero) {
		t.Error("unsigned Lt broken")
	}
	if !One.Gt(Zero) || Zero.Gt(One) {
		t.Error("unsigned Gt broken")
	}
	// -1 < 1 signed, but 2^256-1 > 1 unsigned.
	if !MaxUnsigned.Slt(One) {
		t.Error("-1 slt 1 should hold")
	}
	if !MaxUnsigned.Gt(One) {
		t.Error("2^256-1 gt 1 should hold")
	}
	if !One.Sgt(MaxUnsigned) {
		t.Error("1 sgt -1 should hold")
	}
	if !One.Eq(FromUint64(1)) || One.Eq(Zero) {
		t.Error("Eq broken")
	}
}

func TestHexRoundTrip(t *testing.T) {
	w := fromHexOrDie(t, "0xdeadbeef")
	if w != FromUint64(0xdeadbeef) {
		t.Errorf("FromHex(0xdeadbeef) = %s", w)
	}
	if w.Hex() != "0xdeadbeef" {
		t.Errorf("Hex() = %s", w.Hex())
	}
	// Odd-length and bare forms.
	if fromHexOrDie(t, "f") != FromUint64(0xf) {
		t.Error("bare odd-length hex not accepted")
	}
	if _, err := FromHex("0xzz"); err == nil {
		t.Error("expected error for invalid hex")
	}
}

// Differential tests against holiman/uint256, the ecosystem implementation
// of the same 256-bit semantics.

func u256(w Word) *uint256.Int {
	return new(uint256.Int).SetBytes(w[:])
}

func wordOf(u *uint256.Int) Word {
	return Word(u.Bytes32())
}

func randomWords(n int) []Word {
	rng := rand.New(rand.NewSource(42))
	words := []Word{Zero, One, FromUint64(2), MaxUnsigned, MinSigned,
		MinSigned.Sub(One), FromUint64(1 << 63)}
	for i := 0; i < n; i++ {
		var w Word
		// Vary density so low/high halves and sparse patterns all occur.
		nbytes := rng.Intn(Size + 1)
		for j := 0; j < nbytes; j++ {
			w[Size-1-rng.Intn(Size)] = byte(rng.Intn(256))
		}
		words = append(words, w)
	}
	return words
}

func TestBinaryOpsAgainstUint256(t *testing.T) {
	ops := []struct {
		name   string
		word   func(a, b Word) Word
		oracle func(z, x, y *uint256.Int) *uint256.Int
	}{
		{"add", Word.Add, (*uint256.Int).Add},
		{"sub", Word.Sub, (*uint256.Int).Sub},
		{"mul", Word.Mul, (*uint256.Int).Mul},
		{"div", Word.Div, (*uint256.Int).Div},
		{"sdiv", Word.Sdiv, (*uint256.Int).SDiv},
		{"mod", Word.Mod, (*uint256.Int).Mod},
		{"smod", Word.Smod, (*uint256.Int).SMod},
		{"exp", Word.Exp, (*uint256.Int).Exp},
		{"and", Word.And, (*uint256.Int).And},
		{"or", Word.Or, (*uint256.Int).Or},
		{"xor", Word.Xor, (*uint256.Int).Xor},
	}
	words := randomWords(40)
	for _, op := range ops {
		for _, a := range words {
			for _, b := range words {
				got := op.word(a, b)
				want := wordOf(op.oracle(new(uint256.Int), u256(a), u256(b)))
				if got != want {
					t.Fatalf("%s(%s, %s) = %s, oracle says %s", op.name, a, b, got, want)
				}
			}
		}
	}
}

func TestModularOpsAgainstUint256(t *testing.T) {
	words := randomWords(12)
	for _, a := range words {
		for _, b := range words {
			for _, m := range words {
				if got, want := a.AddMod(b, m), wordOf(new(uint256.Int).AddMod(u256(a), u256(b), u256(m))); got != want {
					t.Fatalf("addmod(%s, %s, %s) = %s, oracle says %s", a, b, m, got, want)
				}
				if got, want := a.MulMod(b, m), wordOf(new(uint256.Int).MulMod(u256(a), u256(b), u256(m))); got != want {
					t.Fatalf("mulmod(%s, %s, %s) = %s, oracle says %s", a, b, m, got, want)
				}
			}
		}
	}
}

func TestComparisonsAgainstUint256(t *testing.T) {
	words := randomWords(40)
	for _, a := range words {
		for _, b := range words {
			ua, ub := u256(a), u256(b)
			if a.Lt(b) != ua.Lt(ub) {
				t.Fatalf("lt(%s, %s) disagrees with oracle", a, b)
			}
			if a.Gt(b) != ua.Gt(ub) {
				t.Fatalf("gt(%s, %s) disagrees with oracle", a, b)
			}
			if a.Slt(b) != ua.Slt(ub) {
				t.Fatalf("slt(%s, %s) disagrees with oracle", a, b)
			}
			if a.Sgt(b) != ua.Sgt(ub) {
				t.Fatalf("sgt(%s, %s) disagrees with oracle", a, b)
			}
			if a.Eq(b) != ua.Eq(ub) {
				t.Fatalf("eq(%s, %s) disagrees with oracle", a, b)
			}
		}
	}
}

func TestUnaryOpsAgainstUint256(t *testing.T) {
	words := randomWords(200)
	for _, a := range words {
		if got, want := a.Not(), wordOf(new(uint256.Int).Not(u256(a))); got != want {
			t.Fatalf("not(%s) = %s, oracle says %s", a, got, want)
		}
		if a.IsZero() != u256(a).IsZero() {
			t.Fatalf("iszero(%s) disagrees with oracle", a)
		}
	}
}

func TestByteAndSignExtendAgainstUint256(t *testing.T) {
	words := randomWords(60)
	for _, a := range words {
		for i := uint64(0); i < 40; i++ {
			idx := FromUint64(i)
			if got, want := a.Byte(idx), wordOf(u256(a).Byte(uint256.NewInt(i))); got != want {
				t.Fatalf("byte(%d, %s) = %s, oracle says %s", i, a, got, want)
			}
			if got, want := a.SignExtend(idx), wordOf(new(uint256.Int).ExtendSign(u256(a), uint256.NewInt(i))); got != want {
				t.Fatalf("signextend(%d, %s) = %s, oracle says %s", i, a, got, want)
			}
		}
	}
}

func TestShiftsAgainstUint256(t *testing.T) {
	words := randomWords(60)
	for _, a := range words {
		for _, n := range []uint64{0, 1, 7, 8, 63, 64, 127, 128, 255} {
			shift := FromUint64(n)
			if got, want := a.Shl(shift), wordOf(new(uint256.Int).Lsh(u256(a), uint(n))); got != want {
				t.Fatalf("shl(%d, %s) = %s, oracle says %s", n, a, got, want)
			}
			if got, want := a.Shr(shift), wordOf(new(uint256.Int).Rsh(u256(a), uint(n))); got != want {
				t.Fatalf("shr(%d, %s) = %s, oracle says %s", n, a, got, want)
			}
			if got, want := a.Sar(shift), wordOf(new(uint256.Int).SRsh(u256(a), uint(n))); got != want {
				t.Fatalf("sar(%d, %s) = %s, oracle says %s", n, a, got, want)
			}
		}
	}
}

func TestAddModMatchesBigInt(t *testing.T) {
	// Spot-check full-precision reduction: (2^256-1 + 2^256-1) mod 7.
	m := FromUint64(7)
	got := MaxUnsigned.AddMod(MaxUnsigned, m)
	sum := new(big.Int).Add(tt256m1, tt256m1)
	want := FromBig(sum.Mod(sum, big.NewInt(7)))
	if got != want {
		t.Errorf("addmod full precision: got %s, want %s", got, want)
	}
}
