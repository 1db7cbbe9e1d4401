// Package cryptonight implements the CryptoNight proof-of-work hash.
//
// The hash operates by first using Keccak 1600, the 1600 bit variant of the
// Keccak hash used in SHA-3, to create a 200 byte buffer of pseudorandom data
// from the supplied input. It then uses this random data to fill a large 2MB
// scratchpad with pseudorandom data by iteratively encrypting it using 10
// rounds of AES per entry. After this initialization, it executes 524,288
// rounds of mixing through the random 2MB buffer using AES (typically
// provided in hardware on modern CPUs) and a 64 bit multiply. Finally, it
// re-mixes the large buffer back into the 200 byte "text" buffer, and hashes
// this buffer using one of four pseudorandomly selected hash functions
// (Blake, Groestl, JH, or Skein) to populate the output.
//
// The 2MB buffer and choice of functions for mixing are designed to make the
// algorithm "CPU-friendly" (and thus, reduce the advantage of GPU, FPGA,
// or ASIC-based implementations): the functions used are fast on modern
// CPUs, and the 2MB size matches the typical amount of L3 cache available per
// core on 2013-era CPUs. When available, this implementation will use
// hardware AES support.
//
// A diagram of the inner loop of this function can be found at
// https://www.cs.cmu.edu/~dga/crypto/xmr/cryptonight.png
package cryptonight

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"time"

	"git.gammaspectra.live/P2Pool/go-cryptonight/types"
)

const (
	// Memory Total size of scratchpad memory
	Memory = 1 << 21
	// Iterations Number of scratchpad iterations; the mixing loop runs Iterations/2 turns
	Iterations = 1 << 20
	// AESBlockSize Size of an AES block
	AESBlockSize = 16
	// AESKeySize Size of an AES key
	AESKeySize = 32
	// InitBlocks Number of blocks initialized from the keccak state at once
	InitBlocks = 8
	// InitBytes Number of scratchpad bytes initialized simultaneously
	InitBytes = InitBlocks * AESBlockSize
	// TotalBlocks Total number of AES blocks in the scratchpad
	TotalBlocks = Memory / AESBlockSize

	// scratchpadMask byte-offset mask of the memory-dependent reads
	scratchpadMask = (TotalBlocks - 1) << 4
)

// Context holds the working memory of one hashing thread. Reuse between
// hashes; every Sum overwrites all of it. Not thread-safe.
type Context struct {
	keccakState [25]uint64
	_           [8]byte // padded to keep blocks 16-byte aligned

	blocks    [16]uint64            // the 128-byte "text" carried through explode/implode
	roundKeys [aesRounds * 4]uint32 // 10 rounds, instead of 14 as in standard AES-256
	_         [8]byte               // padded to keep 16-byte align

	scratchpad []uint64 // Memory/8 words, page-aligned mapping where available

	engine roundEngine

	// stageTimes wall time per pipeline stage, accumulated across hashes;
	// the final slot accumulates whole-hash time
	stageTimes [9]time.Duration

	release func()
}

// Option configures a Context at construction.
type Option func(*Context)

// SoftwareAES forces the portable table-based round engine regardless of
// detected cpu support.
func SoftwareAES() Option {
	return func(c *Context) {
		c.engine = softEngine
	}
}

// NewContext allocates the 2 MiB scratchpad and binds the fastest available
// round engine. Allocation failure is the only error path; treat it as fatal
// to the hashing worker.
func NewContext(opts ...Option) (*Context, error) {
	c := &Context{
		engine: defaultEngine(),
	}
	for _, opt := range opts {
		opt(c)
	}

	scratchpad, release, err := allocScratchpad()
	if err != nil {
		return nil, fmt.Errorf("cryptonight: scratchpad allocation: %w", err)
	}
	c.scratchpad = scratchpad
	c.release = release

	return c, nil
}

// Close releases the scratchpad mapping. The context must not be used after.
func (c *Context) Close() {
	if c.release != nil {
		c.release()
		c.release = nil
		c.scratchpad = nil
	}
}

// EngineName the round engine bound to this context
func (c *Context) EngineName() string {
	return c.engine.name
}

// StageTimes accumulated per-stage wall time: keccak init, key expansion,
// explode, mixing loop, key re-expansion, implode, final keccak, tail hash,
// whole hash.
func (c *Context) StageTimes() [9]time.Duration {
	return c.stageTimes
}

// InitKeccak absorbs data into the keccak state, CNS008 sec.3
func (c *Context) InitKeccak(data []byte) {
	keccak1600(data, &c.keccakState)
}

// ExpandRoundKeys expands the 32 bytes of keccak state at the given byte
// offset (0 before explode, 32 before implode) into the ten round keys.
func (c *Context) ExpandRoundKeys(offset int) {
	aes_expand_key(c.keccakState[offset/8:offset/8+4], &c.roundKeys)
}

// ExplodeScratchpad fills the scratchpad from state bytes 64..191,
// carrying the encrypted text forward between rows.
func (c *Context) ExplodeScratchpad() {
	copy(c.blocks[:], c.keccakState[8:24])
	for i := 0; i < Memory/8; i += InitBytes / 8 {
		c.engine.rounds(&c.blocks, &c.roundKeys)
		copy(c.scratchpad[i:i+InitBytes/8], c.blocks[:])
	}
}

// Iterate runs the memory-hard mixing loop, CNS008 sec.4. A and B derive
// from the keccak state on entry; a full hash runs Iterations/2 turns.
func (c *Context) Iterate(turns int) {
	var a, b, cc, d [2]uint64

	var addr uint32

	a[0] = c.keccakState[0] ^ c.keccakState[4]
	a[1] = c.keccakState[1] ^ c.keccakState[5]
	b[0] = c.keccakState[2] ^ c.keccakState[6]
	b[1] = c.keccakState[3] ^ c.keccakState[7]

	for range turns {
		addr = uint32((a[0] & scratchpadMask) >> 3)
		c.engine.singleRound(&cc, (*[2]uint64)(c.scratchpad[addr:]), &a)

		c.scratchpad[addr+0] = b[0] ^ cc[0]
		c.scratchpad[addr+1] = b[1] ^ cc[1]

		addr = uint32((cc[0] & scratchpadMask) >> 3)
		d[0] = c.scratchpad[addr]
		d[1] = c.scratchpad[addr+1]

		// byteMul
		hi, lo := bits.Mul64(cc[0], d[0])

		// byteAdd
		a[0] += hi
		a[1] += lo

		c.scratchpad[addr+0] = a[0]
		c.scratchpad[addr+1] = a[1]

		a[0] ^= d[0]
		a[1] ^= d[1]

		b = cc
	}
}

// ImplodeScratchpad reabsorbs the scratchpad into state bytes 64..191,
// CNS008 sec.5. Requires the offset-32 round keys.
func (c *Context) ImplodeScratchpad() {
	copy(c.blocks[:], c.keccakState[8:24])
	for i := 0; i < Memory/8; i += InitBytes / 8 {
		for j := range InitBytes / 8 {
			c.blocks[j] ^= c.scratchpad[i+j]
		}
		c.engine.rounds(&c.blocks, &c.roundKeys)
	}
	copy(c.keccakState[8:24], c.blocks[:])
}

// FinalizeKeccak runs the final 24-round permutation over the full state.
// Lane values carry little-endian byte semantics, so the byte-order swap the
// reference implementation performs around this permutation on big-endian
// hosts is absorbed by keeping lanes as values throughout.
func (c *Context) FinalizeKeccak() {
	keccakF1600(&c.keccakState)
}

// HashKind the tail hash selected by the finalized state
type HashKind uint8

const (
	KindBlake HashKind = iota
	KindGroestl
	KindJH
	KindSkein
)

func (k HashKind) String() string {
	switch k {
	case KindBlake:
		return "blake256"
	case KindGroestl:
		return "groestl256"
	case KindJH:
		return "jh256"
	case KindSkein:
		return "skein256"
	}
	return "unknown"
}

// HashKind the tail hash the finalized state selects, low two bits of byte 0
func (c *Context) HashKind() HashKind {
	return HashKind(c.keccakState[0] & 0x03)
}

// StateBytes the 200-byte keccak state in its little-endian byte form, for
// callers validating intermediate stages.
func (c *Context) StateBytes() (out [200]byte) {
	for i, v := range c.keccakState {
		binary.LittleEndian.PutUint64(out[i*8:], v)
	}
	return out
}

// CalculateResult applies the selected tail hash over the full 200-byte
// state. Requires all previous stages to have run in order.
func (c *Context) CalculateResult() types.Hash {
	state := c.StateBytes()

	var sum types.Hash
	finalHash(uint8(c.keccakState[0]), state[:], sum[:])
	return sum
}

// Sum computes the CryptoNight hash of data, running all stages in order
// and accumulating stage times.
func (c *Context) Sum(data []byte) types.Hash {
	var times [10]time.Time

	stage := 0
	times[stage] = time.Now()
	stage++

	c.InitKeccak(data)
	times[stage] = time.Now()
	stage++

	c.ExpandRoundKeys(0)
	times[stage] = time.Now()
	stage++

	c.ExplodeScratchpad()
	times[stage] = time.Now()
	stage++

	c.Iterate(Iterations / 2)
	times[stage] = time.Now()
	stage++

	c.ExpandRoundKeys(32)
	times[stage] = time.Now()
	stage++

	c.ImplodeScratchpad()
	times[stage] = time.Now()
	stage++

	c.FinalizeKeccak()
	times[stage] = time.Now()
	stage++

	sum := c.CalculateResult()
	times[stage] = time.Now()

	for i := 0; i < stage; i++ {
		c.stageTimes[i] += times[i+1].Sub(times[i])
	}
	c.stageTimes[8] += times[stage].Sub(times[0])

	return sum
}

// stateIndex the 16-byte-aligned scratchpad byte offset a 64-bit lane selects
func stateIndex(v uint64) uint32 {
	return uint32((v>>4)&(TotalBlocks-1)) << 4
}
