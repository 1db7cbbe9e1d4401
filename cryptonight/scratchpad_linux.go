//go:build linux

package cryptonight

import (
	"golang.org/x/sys/unix"

	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
)

func adviseScratchpad(mem []byte) {
	_ = unix.Madvise(mem, unix.MADV_RANDOM)
	_ = unix.Madvise(mem, unix.MADV_WILLNEED)
	if err := unix.Madvise(mem, unix.MADV_HUGEPAGE); err != nil {
		utils.Debugf("CryptoNight", "scratchpad madvise hugepage: %s", err)
	}
}
