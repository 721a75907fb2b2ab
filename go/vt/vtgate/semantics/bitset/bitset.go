/*
Copyright 2026 The Vitess Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package bitset implements an immutable set of small non-negative integers.
package bitset

import (
	"math/bits"
	"unsafe"
)

// A Bitset is an immutable set of small non-negative integers. Every
// operation returns a new Bitset. The backing storage is a string with no
// trailing zero bytes, so two Bitsets holding the same bits compare equal
// with == and can be used as map keys. The zero value is the empty set.
type Bitset string

const wordBits = 8

func words(maxBit int) int {
	return maxBit/wordBits + 1
}

// fromBytes turns b into a Bitset without copying it. b must not be written
// to afterwards.
func fromBytes(b []byte) Bitset {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	if n == 0 {
		return ""
	}
	return Bitset(unsafe.String(unsafe.SliceData(b), n))
}

// Build returns a Bitset with the given bits set.
func Build(bits ...int) Bitset {
	if len(bits) == 0 {
		return ""
	}
	hi := bits[0]
	for _, b := range bits[1:] {
		hi = max(hi, b)
	}
	buf := make([]byte, words(hi))
	for _, b := range bits {
		buf[b/wordBits] |= 1 << (b % wordBits)
	}
	return fromBytes(buf)
}

// Single returns a Bitset with only the given bit set.
func Single(bit int) Bitset {
	return Build(bit)
}

// Contains returns true if bit is set.
func (bs Bitset) Contains(bit int) bool {
	w := bit / wordBits
	return bit >= 0 && w < len(bs) && bs[w]&(1<<(bit%wordBits)) != 0
}

// Set returns a copy of bs with bit set.
func (bs Bitset) Set(bit int) Bitset {
	if bs.Contains(bit) {
		return bs
	}
	buf := make([]byte, max(len(bs), words(bit)))
	copy(buf, bs)
	buf[bit/wordBits] |= 1 << (bit % wordBits)
	return fromBytes(buf)
}

// Or returns the union of both Bitsets.
func (bs Bitset) Or(other Bitset) Bitset {
	switch {
	case len(bs) == 0:
		return other
	case len(other) == 0:
		return bs
	}
	long, short := bs, other
	if len(short) > len(long) {
		long, short = short, long
	}
	buf := []byte(long)
	for i := 0; i < len(short); i++ {
		buf[i] |= short[i]
	}
	return fromBytes(buf)
}

// And returns the intersection of both Bitsets.
func (bs Bitset) And(other Bitset) Bitset {
	n := min(len(bs), len(other))
	if n == 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = bs[i] & other[i]
	}
	return fromBytes(buf)
}

// AndNot returns the bits of bs that are not set in other.
func (bs Bitset) AndNot(other Bitset) Bitset {
	if len(bs) == 0 || len(other) == 0 {
		return bs
	}
	buf := []byte(bs)
	for i := 0; i < min(len(buf), len(other)); i++ {
		buf[i] &^= other[i]
	}
	return fromBytes(buf)
}

// Overlaps returns true if both Bitsets have at least one bit in common.
func (bs Bitset) Overlaps(other Bitset) bool {
	for i := 0; i < min(len(bs), len(other)); i++ {
		if bs[i]&other[i] != 0 {
			return true
		}
	}
	return false
}

// IsContainedBy returns true if every bit of bs is also set in other.
func (bs Bitset) IsContainedBy(other Bitset) bool {
	if len(bs) > len(other) {
		return false
	}
	for i := 0; i < len(bs); i++ {
		if bs[i]&^other[i] != 0 {
			return false
		}
	}
	return true
}

// Popcount returns the number of bits set.
func (bs Bitset) Popcount() int {
	n := 0
	for i := 0; i < len(bs); i++ {
		n += bits.OnesCount8(bs[i])
	}
	return n
}

// SingleBit returns the only bit set in bs, or -1 if bs is empty or has
// more than one bit set.
func (bs Bitset) SingleBit() int {
	if bs.Popcount() != 1 {
		return -1
	}
	last := len(bs) - 1
	return last*wordBits + bits.TrailingZeros8(bs[last])
}

// ForEach calls yield for every bit set, in increasing order.
func (bs Bitset) ForEach(yield func(int)) {
	for i := 0; i < len(bs); i++ {
		for w := bs[i]; w != 0; w &= w - 1 {
			yield(i*wordBits + bits.TrailingZeros8(w))
		}
	}
}
