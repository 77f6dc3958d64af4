// Package crypto provides the Keccak-256 hash used by the virtual
// machine's KECCAK256 instruction.
package crypto

import (
	"golang.org/x/crypto/sha3"

	"github.com/brotchie/toyeth/core/word"
)

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Word calculates Keccak-256 and returns the digest as a machine
// word.
func Keccak256Word(data ...[]byte) word.Word {
	var w word.Word
	copy(w[:], Keccak256(data...))
	return w
}
