//go:build (!amd64 && !arm64) || purego

package cryptonight

// hardwareEngine no hardware AES rounds on this platform; contexts take the
// portable engine.
var hardwareEngine roundEngine
