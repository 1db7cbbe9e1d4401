package cryptonight

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	"math/bits"
	"testing"

	"lukechampine.com/uint128"
)

// the mixing loop leans on the widening multiply; anchor it against a
// 128-bit reference
func TestWideningMul(t *testing.T) {
	check := func(a, b uint64) {
		t.Helper()
		hi, lo := bits.Mul64(a, b)
		expected := uint128.From64(a).Mul64(b)
		if hi != expected.Hi || lo != expected.Lo {
			t.Fatalf("%d * %d = (%x, %x), want (%x, %x)", a, b, hi, lo, expected.Hi, expected.Lo)
		}
	}

	boundaries := []uint64{0, 1, 1<<32 - 1, 1 << 32, math.MaxUint64}
	for _, a := range boundaries {
		for _, b := range boundaries {
			check(a, b)
		}
	}

	var buf [16]byte
	for range 10000 {
		_, _ = rand.Read(buf[:])
		check(binary.LittleEndian.Uint64(buf[:]), binary.LittleEndian.Uint64(buf[8:]))
	}

	check(10, 20)
	check(10<<32, 20<<32)
}
