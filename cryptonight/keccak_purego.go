//go:build purego

package cryptonight

func keccakF1600(a *[25]uint64) {
	keccakF(a, 24)
}
