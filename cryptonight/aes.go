package cryptonight

import (
	"math/bits"
)

// This file generates the AES constants - the S-box and the four combined
// round tables, 4352 bytes of initialized data - and implements the portable
// round engine and the key schedule.

// https://csrc.nist.gov/publications/fips/fips197/fips-197.pdf

// AES is based on the mathematical behavior of binary polynomials
// (polynomials over GF(2)) modulo the irreducible polynomial x⁸ + x⁴ + x³ + x + 1.
// Addition of these binary polynomials corresponds to binary xor.
// Reducing mod poly corresponds to binary xor with poly every
// time a 0x100 bit appears.
const poly = 1<<8 | 1<<4 | 1<<3 | 1<<1 | 1<<0 // x⁸ + x⁴ + x³ + x + 1

// Multiply b and c as GF(2) polynomials modulo poly
func mul(b, c uint32) uint32 {
	i := b
	j := c
	s := uint32(0)
	for k := uint32(1); k < 0x100 && j != 0; k <<= 1 {
		// Invariant: k == 1<<n, i == b * xⁿ

		if j&k != 0 {
			// s += i in GF(2); xor in binary
			s ^= i
			j ^= k // turn off bit to end loop early
		}

		// i *= x in GF(2) modulo the polynomial
		i <<= 1
		if i&0x100 != 0 {
			i ^= poly
		}
	}
	return s
}

// sbox0 FIPS-197 Figure 7. S-box substitution values generation
var sbox0 = func() (sbox [256]byte) {
	var p, q uint8 = 1, 1
	for {
		/* multiply p by 3 */
		if p&0x80 != 0 {
			p ^= (p << 1) ^ 0x1b
		} else {
			p ^= p << 1
		}

		/* divide q by 3 (equals multiplication by 0xf6) */
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		/* compute the affine transformation */
		xformed := q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^ bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		sbox[p] = xformed ^ 0x63

		if p == 1 {
			break
		}
	}

	/* 0 is a special case since it has no inverse */
	sbox[0] = 0x63
	return sbox
}()

// encLut Lookup tables for encryption, the combined
// SubBytes/ShiftRows/MixColumns column contributions
var encLut = func() (te [4][256]uint32) {
	for i := range 256 {
		s := uint32(sbox0[i])
		s2 := mul(s, 2)
		s3 := mul(s, 3)
		w := s2<<24 | s<<16 | s<<8 | s3

		for j := range 4 {
			te[j][i] = bits.ReverseBytes32(w)
			w = w<<24 | w>>8
		}
	}
	return te
}()

var te0, te1, te2, te3 = encLut[0], encLut[1], encLut[2], encLut[3]

//go:nosplit
func soft_aesenc(state *[4]uint32, key *[4]uint32) {

	s0 := state[0]
	s1 := state[1]
	s2 := state[2]
	s3 := state[3]

	state[0] = key[0] ^ te0[uint8(s0)] ^ te1[uint8(s1>>8)] ^ te2[uint8(s2>>16)] ^ te3[uint8(s3>>24)]
	state[1] = key[1] ^ te0[uint8(s1)] ^ te1[uint8(s2>>8)] ^ te2[uint8(s3>>16)] ^ te3[uint8(s0>>24)]
	state[2] = key[2] ^ te0[uint8(s2)] ^ te1[uint8(s3>>8)] ^ te2[uint8(s0>>16)] ^ te3[uint8(s1>>24)]
	state[3] = key[3] ^ te0[uint8(s3)] ^ te1[uint8(s0>>8)] ^ te2[uint8(s1>>16)] ^ te3[uint8(s2>>24)]
}

// powx Powers of x mod poly in GF(2), the Rcon progression.
var powx = [16]byte{
	0x01,
	0x02,
	0x04,
	0x08,
	0x10,
	0x20,
	0x40,
	0x80,
	0x1b,
	0x36,
	0x6c,
	0xd8,
	0xab,
	0x4d,
	0x9a,
	0x2f,
}

// Apply sbox0 to each byte in w.
func subw(w uint32) uint32 {
	return uint32(sbox0[w>>24])<<24 |
		uint32(sbox0[w>>16&0xff])<<16 |
		uint32(sbox0[w>>8&0xff])<<8 |
		uint32(sbox0[w&0xff])
}

// Rotate
func rotw(w uint32) uint32 { return w<<8 | w>>24 }

const aesRounds = 10

// aes_expand_key AES-256 key schedule over the four state lanes at key,
// producing the ten round keys. All engines use this expansion; it is
// bit-identical to what aeskeygenassist would build.
func aes_expand_key(key []uint64, roundKeys *[aesRounds * 4]uint32) {
	for i := range 4 {
		roundKeys[2*i] = bits.ReverseBytes32(uint32(key[i]))
		roundKeys[2*i+1] = bits.ReverseBytes32(uint32(key[i] >> 32))
	}

	for i := 8; i < aesRounds*4; i++ {
		t := roundKeys[i-1]
		if i%8 == 0 {
			t = subw(rotw(t)) ^ (uint32(powx[i/8-1]) << 24)
		} else if i%8 == 4 {
			t = subw(t)
		}
		roundKeys[i] = roundKeys[i-8] ^ t
	}
	// the schedule runs big-endian word ordering; columns are little-endian
	for i := range roundKeys {
		roundKeys[i] = bits.ReverseBytes32(roundKeys[i])
	}
}

// splitBlock a 128-bit block of two little-endian lanes as four columns
//
//go:nosplit
func splitBlock(lo, hi uint64) [4]uint32 {
	return [4]uint32{uint32(lo), uint32(lo >> 32), uint32(hi), uint32(hi >> 32)}
}

//go:nosplit
func joinBlock(s *[4]uint32) (lo, hi uint64) {
	return uint64(s[0]) | uint64(s[1])<<32, uint64(s[2]) | uint64(s[3])<<32
}

func aes_rounds_generic(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32) {
	for j := 0; j < 16; j += 2 {
		s := splitBlock(blocks[j], blocks[j+1])
		for r := range aesRounds {
			soft_aesenc(&s, (*[4]uint32)(roundKeys[r*4:r*4+4]))
		}
		blocks[j], blocks[j+1] = joinBlock(&s)
	}
}

func aes_single_round_generic(dst, src, roundKey *[2]uint64) {
	s := splitBlock(src[0], src[1])
	k := splitBlock(roundKey[0], roundKey[1])
	soft_aesenc(&s, &k)
	dst[0], dst[1] = joinBlock(&s)
}
