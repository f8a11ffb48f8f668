// Package keyperm derives deterministic index permutations from string keys.
//
// The key is hashed with the classic 31-based polynomial hash over UTF-16
// code units (32-bit wraparound), and the hash seeds a 48-bit linear
// congruential generator. Both are reimplemented here bit-for-bit rather
// than delegated to built-in hashing so that permuted watermarks remain
// portable across implementations sharing the same convention.
package keyperm

import "unicode/utf16"

// HashKey returns the 32-bit polynomial hash of the key:
// h = 31*h + u over the key's UTF-16 code units.
func HashKey(key string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(key)) {
		h = 31*h + int32(u)
	}
	return h
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgIncrement  = 0xB
	lcgMask       = (1 << 48) - 1
)

// lcg is a 48-bit linear congruential generator.
type lcg struct {
	state int64
}

func newLCG(seed int64) *lcg {
	return &lcg{state: (seed ^ lcgMultiplier) & lcgMask}
}

func (r *lcg) next(bits uint) int32 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) & lcgMask
	return int32(r.state >> (48 - bits))
}

// intn returns a uniform value in [0, bound).
func (r *lcg) intn(bound int32) int32 {
	if bound&(-bound) == bound { // power of two
		return int32((int64(bound) * int64(r.next(31))) >> 31)
	}
	for {
		bits := r.next(31)
		val := bits % bound
		if bits-val+(bound-1) >= 0 {
			return val
		}
	}
}

// Table returns the shuffle table for the key over n flattened positions:
// a Fisher-Yates shuffle of 0..n-1 driven by the key-seeded generator.
// Position i of the source maps to Table(key, n)[i] in the permuted layout.
func Table(key string, n int) []int {
	table := make([]int, n)
	for i := range table {
		table[i] = i
	}
	rng := newLCG(int64(HashKey(key)))
	for i := n - 1; i > 0; i-- {
		j := rng.intn(int32(i + 1))
		table[i], table[j] = table[j], table[i]
	}
	return table
}

// Scatter applies the forward permutation: dst[table[i]] = src[i].
func Scatter(src []bool, key string) []bool {
	table := Table(key, len(src))
	dst := make([]bool, len(src))
	for i, v := range src {
		dst[table[i]] = v
	}
	return dst
}

// Gather applies the inverse permutation: dst[i] = src[table[i]].
// Gather(Scatter(x, key), key) equals x for any key.
func Gather(src []bool, key string) []bool {
	table := Table(key, len(src))
	dst := make([]bool, len(src))
	for i := range src {
		dst[i] = src[table[i]]
	}
	return dst
}
