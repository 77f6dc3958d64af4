package rlp

import "io"

// DecodeBytes decodes b as a single RLP item. Trailing bytes after the
// item are an error, as are truncated payloads and non-canonical headers.
func DecodeBytes(b []byte) (Item, error) {
	it, rest, err := decodeItem(b)
	if err != nil {
		return Item{}, err
	}
	if len(rest) > 0 {
		return Item{}, ErrTrailingBytes
	}
	return it, nil
}

// decodeItem decodes the first item in b and returns the remainder.
func decodeItem(b []byte) (Item, []byte, error) {
	if len(b) == 0 {
		return Item{}, nil, io.ErrUnexpectedEOF
	}
	prefix := b[0]

	switch {
	case prefix <= 0x7f:
		return Item{str: b[:1]}, b[1:], nil

	case prefix <= 0xb7:
		size := int(prefix - 0x80)
		if len(b) < 1+size {
			return Item{}, nil, io.ErrUnexpectedEOF
		}
		if size == 1 && b[1] <= 0x7f {
			return Item{}, nil, ErrCanonSize
		}
		return Item{str: b[1 : 1+size]}, b[1+size:], nil

	case prefix <= 0xbf:
		size, header, err := readLongSize(b, prefix-0xb7)
		if err != nil {
			return Item{}, nil, err
		}
		if len(b) < header+size {
			return Item{}, nil, io.ErrUnexpectedEOF
		}
		return Item{str: b[header : header+size]}, b[header+size:], nil

	case prefix <= 0xf7:
		size := int(prefix - 0xc0)
		if len(b) < 1+size {
			return Item{}, nil, io.ErrUnexpectedEOF
		}
		items, err := decodeListPayload(b[1 : 1+size])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{list: items, isList: true}, b[1+size:], nil

	default:
		size, header, err := readLongSize(b, prefix-0xf7)
		if err != nil {
			return Item{}, nil, err
		}
		if len(b) < header+size {
			return Item{}, nil, io.ErrUnexpectedEOF
		}
		items, err := decodeListPayload(b[header : header+size])
		if err != nil {
			return Item{}, nil, err
		}
		return Item{list: items, isList: true}, b[header+size:], nil
	}
}

// readLongSize reads the lenOfLen-byte big-endian payload size following a
// long-form prefix, returning the size and the total header length. Sizes
// with a leading zero byte or small enough for the short form are rejected.
func readLongSize(b []byte, lenOfLen byte) (size, header int, err error) {
	n := int(lenOfLen)
	if len(b) < 1+n {
		return 0, 0, io.ErrUnexpectedEOF
	}
	sizeBytes := b[1 : 1+n]
	if sizeBytes[0] == 0 {
		return 0, 0, ErrCanonSize
	}
	var s uint64
	for _, x := range sizeBytes {
		s = (s << 8) | uint64(x)
	}
	if s <= 55 {
		return 0, 0, ErrCanonSize
	}
	if s > uint64(len(b)) {
		return 0, 0, io.ErrUnexpectedEOF
	}
	return int(s), 1 + n, nil
}

// decodeListPayload decodes the concatenated items filling payload.
func decodeListPayload(payload []byte) ([]Item, error) {
	items := []Item{}
	for len(payload) > 0 {
		it, rest, err := decodeItem(payload)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		payload = rest
	}
	return items, nil
}
