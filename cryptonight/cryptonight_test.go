package cryptonight

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"testing"

	fasthex "github.com/tmthrgd/go-hex"
)

var testInput = []byte("This is a test")

func mustHex(s string) []byte {
	buf, err := fasthex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return buf
}

// kindAny skips the tail assertion where the reference suite does not pin it
const kindAny = HashKind(0xff)

type testVector struct {
	Input []byte
	Kind  HashKind
	// Output full digest, or the published prefix
	Output []byte
}

var testVectors = []testVector{
	// From CNS008
	{Input: []byte(""), Kind: kindAny, Output: mustHex("eb14e8a833fac6fe9a43b57b336789c46ffe93f2868452240720607b14387e11")},
	{Input: []byte("This is a test"), Kind: KindGroestl, Output: mustHex("a084f01d1437a09c6985401b60d43554ae105802c5f5d8a9b3253649c0be6605")},

	// Monero tests-slow.txt
	{Input: []byte("de omnibus dubitandum"), Kind: kindAny, Output: mustHex("2f8e3df40bd11f9ac90c743ca8e32bb391da4fb98612aa3b6cdc639ee00b31f5")},
	{Input: []byte("abundans cautela non nocet"), Kind: kindAny, Output: mustHex("722fa8ccd594d40e4a41f3822734304c8d5eff7e1b528408e2229da38ba553c4")},
	{Input: []byte("caveat emptor"), Kind: kindAny, Output: mustHex("bbec2cacf69866a8e740380fe7b818fc78f8571221742d729d9d02d7f8989b87")},
	{Input: []byte("ex nihilo nihil fit"), Kind: kindAny, Output: mustHex("b1257de4efc5ce28c6b40ceb1c6c8f812a64634eb3e81c5220bee9b2b76a6f05")},

	// one input per tail branch
	{Input: []byte("This is a quick test"), Kind: KindBlake, Output: mustHex("1e27321ce12b20c2773b28b5076187a1")},
	{Input: []byte("This is another test"), Kind: KindJH, Output: mustHex("189105428a6b0923e4fa417e8836634c")},
	{Input: []byte("This is yet another quick test"), Kind: KindSkein, Output: mustHex("4847cd48bcd6a59b7f81e3d5cbe2bbc7")},
}

func mustContext(t testing.TB, opts ...Option) *Context {
	t.Helper()
	ctx, err := NewContext(opts...)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(ctx.Close)
	return ctx
}

func (c *Context) setStateBytes(buf [200]byte) {
	for i := range c.keccakState {
		c.keccakState[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func (c *Context) roundKeyBytes(i int) []byte {
	out := make([]byte, AESBlockSize)
	for j := range 4 {
		binary.LittleEndian.PutUint32(out[j*4:], c.roundKeys[i*4+j])
	}
	return out
}

func (c *Context) scratchpadBytes(offset uint32, n int) []byte {
	out := make([]byte, n)
	for j := 0; j < n/8; j++ {
		binary.LittleEndian.PutUint64(out[j*8:], c.scratchpad[int(offset)/8+j])
	}
	return out
}

func (c *Context) setScratchpadBytes(offset uint32, buf []byte) {
	for j := 0; j < len(buf)/8; j++ {
		c.scratchpad[int(offset)/8+j] = binary.LittleEndian.Uint64(buf[j*8:])
	}
}

func (c *Context) zeroScratchpad() {
	clear(c.scratchpad)
}

func expectBytes(t *testing.T, what string, actual, expected []byte) {
	t.Helper()
	if !bytes.Equal(actual, expected) {
		t.Errorf("%s = %x, want %x", what, actual, expected)
	}
}

func TestSum(t *testing.T) {
	ctx := mustContext(t)

	for _, v := range testVectors {
		t.Run(fmt.Sprintf("%x..._%d", v.Input[:min(len(v.Input), 8)], len(v.Input)), func(t *testing.T) {
			result := ctx.Sum(v.Input)
			if !bytes.Equal(result[:len(v.Output)], v.Output) {
				t.Errorf("Sum(...) = %x, want %x...", result.Slice(), v.Output)
			}
			if kind := ctx.HashKind(); v.Kind != kindAny && kind != v.Kind {
				t.Errorf("HashKind() = %s, want %s", kind, v.Kind)
			}
		})
	}
}

func TestSum_Deterministic(t *testing.T) {
	ctx := mustContext(t)

	// boundary lengths around the sponge rate, plus tiny inputs
	for _, n := range []int{0, 1, 135, 136, 137, 272} {
		input := make([]byte, n)
		_, _ = rand.Read(input)

		first := ctx.Sum(input)
		second := ctx.Sum(input)
		if first != second {
			t.Errorf("len %d: %s != %s", n, first, second)
		}
	}
}

func TestSum_EngineAgreement(t *testing.T) {
	if hardwareEngine.rounds == nil {
		t.Skip("no hardware round engine on this host")
	}

	hw := mustContext(t)
	soft := mustContext(t, SoftwareAES())

	if hw.EngineName() == soft.EngineName() {
		t.Skip("hardware engine not selected")
	}

	for _, v := range testVectors {
		if got, want := hw.Sum(v.Input), soft.Sum(v.Input); got != want {
			t.Errorf("input %q: %s != %s", v.Input, got, want)
		}
	}

	var input [76]byte
	for range 16 {
		_, _ = rand.Read(input[:])
		if got, want := hw.Sum(input[:]), soft.Sum(input[:]); got != want {
			t.Errorf("input %x: %s != %s", input, got, want)
		}
	}
}

func TestInitKeccak(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)

	state := ctx.StateBytes()
	expectBytes(t, "state[0:16]", state[:16], mustHex("93b90fab55adf4e98787d33a38e71106"))
	expectBytes(t, "state[64:80]", state[64:80], mustHex("405e91deec2a0478578825373af7ea64"))
}

func TestExpandRoundKeys(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)

	expectBytes(t, "roundKey(0)", ctx.roundKeyBytes(0), mustHex("93b90fab55adf4e98787d33a38e71106"))
	expectBytes(t, "roundKey(6)", ctx.roundKeyBytes(6), mustHex("e816be1b69c15346af4def56167d130d"))
}

func TestExplodeScratchpad(t *testing.T) {
	ctx := mustContext(t)
	ctx.setStateBytes([200]byte{})
	keyPattern := mustHex("000102030405060708090a0b0c0d0e0f")
	for i := range aesRounds {
		for j := range 4 {
			ctx.roundKeys[i*4+j] = binary.LittleEndian.Uint32(keyPattern[j*4:])
		}
	}

	ctx.ExplodeScratchpad()

	expected := mustHex("183a35d25be8860ae5f05b8799319214")
	expectBytes(t, "scratchpad[0:16]", ctx.scratchpadBytes(0, 16), expected)
	expectBytes(t, "scratchpad[64:80]", ctx.scratchpadBytes(64, 16), expected)
	expectBytes(t, "scratchpad[1MiB:+16]", ctx.scratchpadBytes(1024*1024, 16), mustHex("1467334ba28b01ef91679ac3c067fde3"))
}

func TestIterate_SingleRound(t *testing.T) {
	ctx := mustContext(t)

	// zero state and scratchpad: C = aesenc(0, 0), all 0x63
	ctx.setStateBytes([200]byte{})
	ctx.zeroScratchpad()
	ctx.Iterate(1)
	expectBytes(t, "scratchpad[0:16]", ctx.scratchpadBytes(0, 16), mustHex("63636363636363636363636363636363"))

	// a known block under a zero key
	ctx.setStateBytes([200]byte{})
	ctx.zeroScratchpad()
	ctx.setScratchpadBytes(0, mustHex("000102030405060708090a0b0c0d0e0f"))
	ctx.Iterate(1)
	expectBytes(t, "scratchpad[0:16]", ctx.scratchpadBytes(0, 16), mustHex("6a6a5c452c6d3351b0d95d61279c215c"))
}

func TestIterate_XOR(t *testing.T) {
	ctx := mustContext(t)

	// B = state[16:32] ^ state[48:64] xors into the written block
	var state [200]byte
	copy(state[16:], mustHex("000102030405060708090a0b0c0d0e0f"))
	ctx.setStateBytes(state)
	ctx.zeroScratchpad()
	ctx.Iterate(1)
	expectBytes(t, "scratchpad[0:16]", ctx.scratchpadBytes(0, 16), mustHex("63626160676665646b6a69686f6e6d6c"))
}

func TestIterate_MulSumXOR(t *testing.T) {
	a := mustHex("000102030405060708090a0b0c0d0e0f")
	aIndex := stateIndex(binary.LittleEndian.Uint64(a))
	encrypted := mustHex("6a6b5e4628683556b8d0576a2b912f53")
	encryptedIndex := stateIndex(binary.LittleEndian.Uint64(encrypted))

	t.Run("Simple", func(t *testing.T) {
		ctx := mustContext(t)
		var state [200]byte
		copy(state[:16], a)
		ctx.setStateBytes(state)
		ctx.zeroScratchpad()
		ctx.setScratchpadBytes(aIndex, mustHex("000102030405060708090a0b0c0d0e0f"))

		ctx.Iterate(1)

		// index(a) encoded with a is written back
		expectBytes(t, "scratchpad[index(a)]", ctx.scratchpadBytes(aIndex, 16), encrypted)
		// the mul-sum result lands at the index the encrypted block selects
		expectBytes(t, "scratchpad[index(c)]", ctx.scratchpadBytes(encryptedIndex, 16), mustHex("000102030405060708090a0b0c0d0e0f"))
	})

	t.Run("Occupied", func(t *testing.T) {
		ctx := mustContext(t)
		var state [200]byte
		copy(state[:16], a)
		ctx.setStateBytes(state)
		ctx.zeroScratchpad()
		ctx.setScratchpadBytes(aIndex, mustHex("000102030405060708090a0b0c0d0e0f"))
		ctx.setScratchpadBytes(encryptedIndex, mustHex("000102030405060708090a0b0c0d0e0f"))

		ctx.Iterate(1)

		expectBytes(t, "scratchpad[index(a)]", ctx.scratchpadBytes(aIndex, 16), encrypted)
		expectBytes(t, "scratchpad[index(c)]", ctx.scratchpadBytes(encryptedIndex, 16), mustHex("20f3c1f2cd8163090873497ef99ca8e9"))
	})
}

func TestIterate_Stepwise(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()

	// A and B derive from the state on entry
	a := make([]byte, 16)
	b := make([]byte, 16)
	binary.LittleEndian.PutUint64(a, ctx.keccakState[0]^ctx.keccakState[4])
	binary.LittleEndian.PutUint64(a[8:], ctx.keccakState[1]^ctx.keccakState[5])
	binary.LittleEndian.PutUint64(b, ctx.keccakState[2]^ctx.keccakState[6])
	binary.LittleEndian.PutUint64(b[8:], ctx.keccakState[3]^ctx.keccakState[7])

	expectBytes(t, "A", a, mustHex("f464b81238a43f1f9db3e375d0212ab4"))
	expectBytes(t, "B", b, mustHex("03079ff3250b03506c4a61045f0fe9b7"))

	address := stateIndex(binary.LittleEndian.Uint64(a))
	if address != 1598704 {
		t.Errorf("stateIndex(A) = %d, want 1598704", address)
	}
	expectBytes(t, "scratchpad[index(A)]", ctx.scratchpadBytes(address, 16), mustHex("1a5c804498e70d0a496d9e6dbbfd2f5a"))

	ctx.Iterate(1)
	expectBytes(t, "scratchpad[87728]", ctx.scratchpadBytes(87728, 16), mustHex("d4405cee33cc6747b56b449b8158bb34"))

	ctx.ExplodeScratchpad()
	ctx.Iterate(2)
	expectBytes(t, "scratchpad[1082800]", ctx.scratchpadBytes(1082800, 16), mustHex("e2a3c0a2d462b8d0417156067ebdeca6"))

	ctx.ExplodeScratchpad()
	ctx.Iterate(3)
	expectBytes(t, "scratchpad[1978496]", ctx.scratchpadBytes(1978496, 16), mustHex("73fe5bb0fd4269ee6d630d7ce945da81"))
}

func TestIterate_Full(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()
	ctx.Iterate(Iterations / 2)

	expectBytes(t, "scratchpad[0:16]", ctx.scratchpadBytes(0, 16), mustHex("cfe2dd39007e448433a0915775f03a72"))
	expectBytes(t, "scratchpad[64:80]", ctx.scratchpadBytes(64, 16), mustHex("cad279276c8003d1bc20239ea6b1ef58"))
	expectBytes(t, "scratchpad[1MiB:+16]", ctx.scratchpadBytes(1024*1024, 16), mustHex("602919fbcb36e9757d38a922f022c60b"))
}

func TestExpandRoundKeys_SecondSet(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()
	ctx.Iterate(Iterations / 2)
	ctx.ExpandRoundKeys(32)

	expectBytes(t, "roundKey(0)", ctx.roundKeyBytes(0), mustHex("67ddb7b96d09cbf61a34304fe8c63bb2"))
	expectBytes(t, "roundKey(6)", ctx.roundKeyBytes(6), mustHex("65f78a668e96e9bdee7d6b22edda334b"))
}

func TestImplodeScratchpad(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()
	ctx.Iterate(Iterations / 2)
	ctx.ExpandRoundKeys(32)
	ctx.ImplodeScratchpad()

	state := ctx.StateBytes()
	expectBytes(t, "state[64:80]", state[64:80], mustHex("aeefd118bbd15be215cc40109e225bb6"))
}

func TestFinalizeKeccak(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()
	ctx.Iterate(Iterations / 2)
	ctx.ExpandRoundKeys(32)
	ctx.ImplodeScratchpad()
	ctx.FinalizeKeccak()

	state := ctx.StateBytes()
	expectBytes(t, "state[64:80]", state[64:80], mustHex("fcd11c24fcb0f50c9ff3732555228b94"))
}

func TestCalculateResult(t *testing.T) {
	ctx := mustContext(t)
	ctx.InitKeccak(testInput)
	ctx.ExpandRoundKeys(0)
	ctx.ExplodeScratchpad()
	ctx.Iterate(Iterations / 2)
	ctx.ExpandRoundKeys(32)
	ctx.ImplodeScratchpad()
	ctx.FinalizeKeccak()

	if kind := ctx.HashKind(); kind != KindGroestl {
		t.Errorf("HashKind() = %s, want %s", kind, KindGroestl)
	}

	result := ctx.CalculateResult()
	expectBytes(t, "result[0:16]", result[:16], mustHex("a084f01d1437a09c6985401b60d43554"))
}

func TestStateIndex_Domain(t *testing.T) {
	var buf [8]byte
	for range 10000 {
		_, _ = rand.Read(buf[:])
		v := binary.LittleEndian.Uint64(buf[:])
		idx := stateIndex(v)
		if idx >= Memory {
			t.Fatalf("stateIndex(%x) = %d, out of range", v, idx)
		}
		if idx%AESBlockSize != 0 {
			t.Fatalf("stateIndex(%x) = %d, unaligned", v, idx)
		}
	}
}

func TestStageTimes(t *testing.T) {
	ctx := mustContext(t)
	_ = ctx.Sum(testInput)

	times := ctx.StageTimes()
	for i, d := range times {
		if d < 0 {
			t.Errorf("stage %d: negative duration %s", i, d)
		}
	}
	if times[8] == 0 {
		t.Error("whole-hash time not accumulated")
	}
}

func BenchmarkSum(b *testing.B) {
	run := func(b *testing.B, opts ...Option) {
		b.ReportAllocs()
		ctx := mustContext(b, opts...)

		var input [76]byte
		_, _ = rand.Read(input[:])

		var iterations uint64
		for b.Loop() {
			binary.LittleEndian.PutUint64(input[39:], iterations)
			iterations++
			ctx.Sum(input[:])
		}
	}

	b.Run("Default", func(b *testing.B) {
		run(b)
	})
	b.Run("Soft", func(b *testing.B) {
		run(b, SoftwareAES())
	})
}
