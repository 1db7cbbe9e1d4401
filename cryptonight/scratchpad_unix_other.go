//go:build unix && !linux

package cryptonight

import "golang.org/x/sys/unix"

func adviseScratchpad(mem []byte) {
	_ = unix.Madvise(mem, unix.MADV_RANDOM)
	_ = unix.Madvise(mem, unix.MADV_WILLNEED)
}
