//go:build !amd64 && !arm64
// +build !amd64,!arm64

package wordcmp

// detectFeaturesImpl is the fallback for architectures without a known-fast
// unaligned word load; ExtendMatch sticks to 4- and 1-byte strides there,
// and RunLength to single bytes.
func detectFeaturesImpl() {
	hasFastUnalignedWord = false
}
