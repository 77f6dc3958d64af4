// Package rlp implements the Recursive Length Prefix serialization format.
// Values form a tree: an item is either a byte string or a list of items.
package rlp

import "github.com/brotchie/toyeth/core/word"

// Item is a node in an RLP value tree: either a byte string or a list.
// The zero Item is the empty string.
type Item struct {
	str    []byte
	list   []Item
	isList bool
}

// Bytes returns a string item wrapping b. The slice is not copied.
func Bytes(b []byte) Item {
	return Item{str: b}
}

// String returns a string item holding the bytes of s.
func String(s string) Item {
	return Item{str: []byte(s)}
}

// Uint returns a string item holding the minimal big-endian encoding of u.
// Zero encodes as the empty string.
func Uint(u uint64) Item {
	if u == 0 {
		return Item{}
	}
	return Item{str: putUintBigEndian(u)}
}

// Word returns a string item holding the minimal big-endian encoding of w,
// with leading zero bytes stripped.
func Word(w word.Word) Item {
	b := w.Bytes32()
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return Item{str: b[i:]}
}

// List returns a list item over the given children.
func List(items ...Item) Item {
	if items == nil {
		items = []Item{}
	}
	return Item{list: items, isList: true}
}

// IsList reports whether the item is a list.
func (it Item) IsList() bool {
	return it.isList
}

// Str returns the byte string of a string item. It returns nil for lists.
func (it Item) Str() []byte {
	if it.isList {
		return nil
	}
	return it.str
}

// Items returns the children of a list item. It returns nil for strings.
func (it Item) Items() []Item {
	if !it.isList {
		return nil
	}
	return it.list
}

// Uint64 interprets a string item as a big-endian unsigned integer. It
// rejects lists, encodings with a leading zero byte, and values wider than
// eight bytes.
func (it Item) Uint64() (uint64, error) {
	if it.isList {
		return 0, ErrExpectedString
	}
	b := it.str
	if len(b) == 0 {
		return 0, nil
	}
	if b[0] == 0 {
		return 0, ErrCanonInt
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	var val uint64
	for _, x := range b {
		val = (val << 8) | uint64(x)
	}
	return val, nil
}
