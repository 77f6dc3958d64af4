// Package asm assembles mnemonic source into machine bytecode and
// disassembles bytecode back into listings.
package asm

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/brotchie/toyeth/core/vm"
	"github.com/brotchie/toyeth/core/word"
)

// Assemble translates line-oriented mnemonic source into bytecode. Each
// line holds one instruction: an opcode name, optionally followed by an
// immediate for PUSH. A bare PUSH picks the smallest width that fits the
// immediate; an explicit PUSHn pads or rejects as needed. Text after ';'
// or '#' is a comment. Names are case-insensitive.
func Assemble(src string) ([]byte, error) {
	var code []byte
	for ln, line := range strings.Split(src, "\n") {
		if i := strings.IndexAny(line, ";#"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		// A leading token ending in ':' is an offset or label, as emitted
		// by Disassemble; listings reassemble as-is.
		if strings.HasSuffix(fields[0], ":") {
			fields = fields[1:]
			if len(fields) == 0 {
				continue
			}
		}
		name := strings.ToUpper(fields[0])

		if name == "PUSH" {
			if len(fields) != 2 {
				return nil, fmt.Errorf("asm: line %d: PUSH needs an immediate", ln+1)
			}
			imm, err := parseImmediate(fields[1])
			if err != nil {
				return nil, fmt.Errorf("asm: line %d: %v", ln+1, err)
			}
			size := len(imm)
			if size == 0 {
				imm, size = []byte{0}, 1
			}
			code = append(code, byte(vm.PUSH1)+byte(size-1))
			code = append(code, imm...)
			continue
		}

		op, ok := vm.LookupOpCode(name)
		if !ok {
			return nil, fmt.Errorf("asm: line %d: unknown instruction %q", ln+1, fields[0])
		}

		if op.IsPush() {
			if len(fields) != 2 {
				return nil, fmt.Errorf("asm: line %d: %s needs an immediate", ln+1, name)
			}
			imm, err := parseImmediate(fields[1])
			if err != nil {
				return nil, fmt.Errorf("asm: line %d: %v", ln+1, err)
			}
			size := op.PushSize()
			if len(imm) > size {
				return nil, fmt.Errorf("asm: line %d: immediate %s does not fit %s", ln+1, fields[1], name)
			}
			padded := make([]byte, size)
			copy(padded[size-len(imm):], imm)
			code = append(code, byte(op))
			code = append(code, padded...)
			continue
		}

		if len(fields) != 1 {
			return nil, fmt.Errorf("asm: line %d: %s takes no operand", ln+1, name)
		}
		code = append(code, byte(op))
	}
	return code, nil
}

// parseImmediate parses a hex (0x-prefixed) or decimal literal into its
// minimal big-endian bytes. Zero parses to an empty slice.
func parseImmediate(s string) ([]byte, error) {
	var (
		v  *big.Int
		ok bool
	)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok = new(big.Int).SetString(s[2:], 16)
	} else {
		v, ok = new(big.Int).SetString(s, 10)
	}
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("bad immediate %q", s)
	}
	if v.BitLen() > 8*word.Size {
		return nil, fmt.Errorf("immediate %q exceeds 256 bits", s)
	}
	return v.Bytes(), nil
}

// Disassemble renders bytecode as one instruction per line, prefixed with
// the instruction's offset. PUSH immediates print as hex; immediates cut
// short by the end of code are marked truncated. Unknown bytes render
// through the opcode formatter rather than stopping the listing.
func Disassemble(code []byte) string {
	var b strings.Builder
	for pc := 0; pc < len(code); {
		op := vm.OpCode(code[pc])
		fmt.Fprintf(&b, "%05x: %s", pc, op)
		if size := op.PushSize(); size > 0 {
			end := pc + 1 + size
			if end > len(code) {
				fmt.Fprintf(&b, " %#x (truncated)", code[pc+1:])
				b.WriteByte('\n')
				break
			}
			fmt.Fprintf(&b, " %#x", code[pc+1:end])
			pc = end
		} else {
			pc++
		}
		b.WriteByte('\n')
	}
	return b.String()
}
