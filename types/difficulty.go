package types

import (
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"
	"strconv"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

const DifficultySize = 16

//nolint:recvcheck
type Difficulty uint128.Uint128

var ZeroDifficulty = Difficulty(uint128.Zero)
var MaxDifficulty = Difficulty(uint128.Max)

// base2exp256 2^256, the PoW quotient base
var base2exp256 = new(big.Int).Lsh(big.NewInt(1), 256)

func NewDifficulty(lo, hi uint64) Difficulty {
	return Difficulty(uint128.New(lo, hi))
}

func DifficultyFrom64(v uint64) Difficulty {
	return Difficulty(uint128.From64(v))
}

func DifficultyFromString(s string) (Difficulty, error) {
	if buf, err := fasthex.DecodeString(s); err != nil {
		return ZeroDifficulty, err
	} else {
		if len(buf) != DifficultySize {
			return ZeroDifficulty, errors.New("wrong difficulty size")
		}
		return DifficultyFromBytes(buf), nil
	}
}

// DifficultyFromBytes big-endian 16-byte representation
func DifficultyFromBytes(buf []byte) Difficulty {
	return NewDifficulty(binary.BigEndian.Uint64(buf[8:]), binary.BigEndian.Uint64(buf[:8]))
}

func (d Difficulty) Bytes() []byte {
	var buf [DifficultySize]byte
	binary.BigEndian.PutUint64(buf[:], d.Hi)
	binary.BigEndian.PutUint64(buf[8:], d.Lo)
	return buf[:]
}

func (d Difficulty) String() string {
	return fasthex.EncodeToString(d.Bytes())
}

func (d Difficulty) Uint128() uint128.Uint128 {
	return uint128.Uint128(d)
}

func (d Difficulty) Big() *big.Int {
	return uint128.Uint128(d).Big()
}

func (d Difficulty) IsZero() bool {
	return uint128.Uint128(d).IsZero()
}

func (d Difficulty) Equals(other Difficulty) bool {
	return uint128.Uint128(d).Equals(uint128.Uint128(other))
}

func (d Difficulty) Equals64(v uint64) bool {
	return uint128.Uint128(d).Equals64(v)
}

func (d Difficulty) Cmp(other Difficulty) int {
	return uint128.Uint128(d).Cmp(uint128.Uint128(other))
}

func (d Difficulty) Add(other Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Add(uint128.Uint128(other)))
}

func (d Difficulty) Sub(other Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Sub(uint128.Uint128(other)))
}

func (d Difficulty) Div(other Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Div(uint128.Uint128(other)))
}

func (d Difficulty) Mul64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Mul64(v))
}

func (d Difficulty) Div64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Div64(v))
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	var buf [DifficultySize*2 + 2]byte
	buf[0] = '"'
	buf[DifficultySize*2+1] = '"'
	fasthex.Encode(buf[1:], d.Bytes())
	return buf[:], nil
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return errors.New("invalid difficulty")
		}
		b = b[1 : len(b)-1]
	}

	s := string(b)
	if strings.HasPrefix(s, "0x") {
		diff, err := difficultyFromHex(s[2:])
		if err != nil {
			return err
		}
		*d = diff
		return nil
	}

	if len(s) == DifficultySize*2 {
		diff, err := DifficultyFromString(s)
		if err != nil {
			return err
		}
		*d = diff
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	*d = DifficultyFrom64(v)
	return nil
}

func difficultyFromHex(s string) (Difficulty, error) {
	if len(s) == 0 || len(s) > DifficultySize*2 {
		return ZeroDifficulty, errors.New("invalid difficulty")
	}
	if len(s) > 16 {
		hi, err := strconv.ParseUint(s[:len(s)-16], 16, 64)
		if err != nil {
			return ZeroDifficulty, err
		}
		lo, err := strconv.ParseUint(s[len(s)-16:], 16, 64)
		if err != nil {
			return ZeroDifficulty, err
		}
		return NewDifficulty(lo, hi), nil
	}
	lo, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return ZeroDifficulty, err
	}
	return DifficultyFrom64(lo), nil
}

// DifficultyFromPoW the highest difficulty a given PoW hash satisfies,
// floor(2^256 / value), where value reads the digest as a little-endian
// 256-bit integer. Saturates at MaxDifficulty.
func DifficultyFromPoW(pow Hash) Difficulty {
	if pow == ZeroHash {
		return ZeroDifficulty
	}

	var be [HashSize]byte
	for i := range pow {
		be[HashSize-1-i] = pow[i]
	}

	q := new(big.Int).Div(base2exp256, new(big.Int).SetBytes(be[:]))
	if q.BitLen() > 128 {
		return MaxDifficulty
	}
	return Difficulty(uint128.FromBig(q))
}

// CheckPoW whether the digest satisfies this difficulty target, that is
// value * difficulty < 2^256 with value reading the digest little-endian.
func (d Difficulty) CheckPoW(pow Hash) bool {
	var w [4]uint64
	for i := range w {
		w[i] = binary.LittleEndian.Uint64(pow[i*8:])
	}

	// 256 x 128 bit schoolbook product; only the top two words matter
	var p [6]uint64

	var carry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(w[i], d.Lo)
		var c uint64
		p[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	p[4] = carry

	carry = 0
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(w[i], d.Hi)
		t, c1 := bits.Add64(p[i+1], lo, 0)
		t, c2 := bits.Add64(t, carry, 0)
		p[i+1] = t
		carry = hi + c1 + c2
	}
	p[5] = carry

	return p[4] == 0 && p[5] == 0
}

// CheckPoW_Native reference form of CheckPoW over big.Int, kept for
// cross-checking the carry chain.
//
//nolint:revive
func (d Difficulty) CheckPoW_Native(pow Hash) bool {
	var be [HashSize]byte
	for i := range pow {
		be[HashSize-1-i] = pow[i]
	}

	product := new(big.Int).Mul(new(big.Int).SetBytes(be[:]), d.Big())
	return product.BitLen() <= 256
}
