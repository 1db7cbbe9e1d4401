//go:build darwin && arm64 && !purego

package cryptonight

//go:nosplit
//go:noescape
func aes_rounds_internal(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32)

//go:nosplit
//go:noescape
func aes_single_round_internal(dst, src, roundKey *[2]uint64)

// Assume all M1+ have AES
//
// See https://github.com/golang/go/issues/43046
// See https://github.com/golang/go/commit/c15593197453b8bf90fc3a9080ba2afeaf7934ea

var hardwareEngine = roundEngine{
	name:        "armv8-aes",
	rounds:      aes_rounds_internal,
	singleRound: aes_single_round_internal,
}
