//go:build arm64
// +build arm64

package wordcmp

// detectFeaturesImpl is the arm64 override: all arm64 targets Go supports
// allow fast unaligned word loads, so there is nothing further to detect.
func detectFeaturesImpl() {
	hasFastUnalignedWord = true
}
