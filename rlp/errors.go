package rlp

import "errors"

var (
	// ErrExpectedString is returned when a list is found where a string
	// was expected.
	ErrExpectedString = errors.New("rlp: expected string")

	// ErrCanonSize is returned when a header uses a non-canonical size
	// encoding, such as a long form for a value the short form covers.
	ErrCanonSize = errors.New("rlp: non-canonical size information")

	// ErrCanonInt is returned when an integer encoding has leading zero
	// bytes.
	ErrCanonInt = errors.New("rlp: non-canonical integer encoding")

	// ErrUint64Range is returned when a decoded integer exceeds uint64
	// range.
	ErrUint64Range = errors.New("rlp: uint64 overflow")

	// ErrTrailingBytes is returned when input continues past the end of
	// the decoded item.
	ErrTrailingBytes = errors.New("rlp: trailing bytes after value")
)
