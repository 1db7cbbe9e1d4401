package cryptonight

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

func blockFromBytes(buf []byte) (out [2]uint64) {
	out[0] = binary.LittleEndian.Uint64(buf)
	out[1] = binary.LittleEndian.Uint64(buf[8:])
	return out
}

func blockBytes(b [2]uint64) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out, b[0])
	binary.LittleEndian.PutUint64(out[8:], b[1])
	return out
}

func TestSoftAESRound_KnownVectors(t *testing.T) {
	// aesenc semantics: SubBytes, ShiftRows, MixColumns, then the key xor
	for _, v := range []struct {
		src, key, expected string
	}{
		{"00000000000000000000000000000000", "00000000000000000000000000000000", "63636363636363636363636363636363"},
		{"00000000000000000000000000000000", "000102030405060708090a0b0c0d0e0f", "63626160676665646b6a69686f6e6d6c"},
		{"000102030405060708090a0b0c0d0e0f", "00000000000000000000000000000000", "6a6a5c452c6d3351b0d95d61279c215c"},
	} {
		src := blockFromBytes(mustHex(v.src))
		key := blockFromBytes(mustHex(v.key))

		var dst [2]uint64
		aes_single_round_generic(&dst, &src, &key)

		require.Equal(t, v.expected, fasthex.EncodeToString(blockBytes(dst)))
	}
}

func TestAESRound_EngineAgreement(t *testing.T) {
	if hardwareEngine.singleRound == nil {
		t.Skip("no hardware round engine on this host")
	}

	var buf [32]byte
	for range 256 {
		_, _ = rand.Read(buf[:])

		src := blockFromBytes(buf[:16])
		key := blockFromBytes(buf[16:])

		var soft, hard [2]uint64
		aes_single_round_generic(&soft, &src, &key)
		hardwareEngine.singleRound(&hard, &src, &key)

		require.Equal(t, soft, hard, "src %x key %x", buf[:16], buf[16:])
	}
}

func TestAESRounds_EngineAgreement(t *testing.T) {
	if hardwareEngine.rounds == nil {
		t.Skip("no hardware round engine on this host")
	}

	var seed [200]byte
	for range 64 {
		_, _ = rand.Read(seed[:])

		var key [4]uint64
		for i := range key {
			key[i] = binary.LittleEndian.Uint64(seed[128+i*8:])
		}
		var roundKeys [aesRounds * 4]uint32
		aes_expand_key(key[:], &roundKeys)

		var soft, hard [16]uint64
		for i := range soft {
			soft[i] = binary.LittleEndian.Uint64(seed[i*8:])
		}
		hard = soft

		aes_rounds_generic(&soft, &roundKeys)
		hardwareEngine.rounds(&hard, &roundKeys)

		require.Equal(t, soft, hard)
	}
}

func TestExpandKey_FirstKeysAreInput(t *testing.T) {
	var seed [32]byte
	_, _ = rand.Read(seed[:])

	var key [4]uint64
	for i := range key {
		key[i] = binary.LittleEndian.Uint64(seed[i*8:])
	}

	var roundKeys [aesRounds * 4]uint32
	aes_expand_key(key[:], &roundKeys)

	// round keys 0 and 1 are the input halves
	for i := range 8 {
		require.Equal(t, binary.LittleEndian.Uint32(seed[i*4:]), roundKeys[i])
	}
}
