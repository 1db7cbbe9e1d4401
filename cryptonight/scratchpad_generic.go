//go:build !unix

package cryptonight

// allocScratchpad heap fallback where anonymous mappings are unavailable
func allocScratchpad() ([]uint64, func(), error) {
	return make([]uint64, Memory/8), func() {}, nil
}
