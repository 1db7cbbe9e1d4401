//go:build !darwin && arm64 && !purego

package cryptonight

import "golang.org/x/sys/cpu"

//go:nosplit
//go:noescape
func aes_rounds_internal(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32)

//go:nosplit
//go:noescape
func aes_single_round_internal(dst, src, roundKey *[2]uint64)

var hardwareEngine = func() roundEngine {
	if cpu.ARM64.HasAES {
		return roundEngine{
			name:        "armv8-aes",
			rounds:      aes_rounds_internal,
			singleRound: aes_single_round_internal,
		}
	}
	return roundEngine{}
}()
