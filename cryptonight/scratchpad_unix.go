//go:build unix

package cryptonight

import (
	"unsafe"

	"golang.org/x/sys/unix"

	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
)

// allocScratchpad maps the 2 MiB scratchpad anonymously. Page alignment
// covers the 16-byte alignment the vector loads want; madvise and mlock are
// hints, never failures.
func allocScratchpad() ([]uint64, func(), error) {
	mem, err := unix.Mmap(-1, 0, Memory, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, nil, err
	}

	adviseScratchpad(mem)

	if err = unix.Mlock(mem); err != nil {
		// not fatal, requires privileges on most systems
		utils.Debugf("CryptoNight", "scratchpad mlock: %s", err)
	}

	// #nosec G103 -- fixed-size mapping
	words := unsafe.Slice((*uint64)(unsafe.Pointer(&mem[0])), Memory/8)

	return words, func() {
		_ = unix.Munmap(mem)
	}, nil
}
