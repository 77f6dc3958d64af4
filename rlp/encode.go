package rlp

import "io"

// Encode writes the RLP encoding of it to w.
func Encode(w io.Writer, it Item) error {
	_, err := w.Write(EncodeToBytes(it))
	return err
}

// EncodeToBytes returns the RLP encoding of it.
func EncodeToBytes(it Item) []byte {
	if it.isList {
		var payload []byte
		for _, child := range it.list {
			payload = append(payload, EncodeToBytes(child)...)
		}
		return wrapList(payload)
	}
	return encodeString(it.str)
}

// encodeString produces the RLP encoding of a byte string: a single byte
// below 0x80 is its own encoding, short strings get a 0x80+len prefix, long
// strings a 0xb7+lenOfLen prefix followed by the big-endian length.
func encodeString(data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] <= 0x7f {
		return []byte{data[0]}
	}
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0x80 + byte(n)
		copy(buf[1:], data)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xb7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], data)
	return buf
}

// wrapList wraps an already-encoded payload in a list header: 0xc0+len for
// short lists, 0xf7+lenOfLen plus the big-endian length for long ones.
func wrapList(payload []byte) []byte {
	n := len(payload)
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0xc0 + byte(n)
		copy(buf[1:], payload)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xf7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], payload)
	return buf
}

// putUintBigEndian encodes u as big-endian with no leading zeros.
func putUintBigEndian(u uint64) []byte {
	var b []byte
	for u > 0 {
		b = append([]byte{byte(u)}, b...)
		u >>= 8
	}
	if b == nil {
		b = []byte{0}
	}
	return b
}
