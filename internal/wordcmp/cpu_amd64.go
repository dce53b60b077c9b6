//go:build amd64
// +build amd64

package wordcmp

import "golang.org/x/sys/cpu"

// detectFeaturesImpl refines the arch-level default using runtime feature
// bits. Unaligned word access is part of the amd64 baseline, so this mainly
// exists to keep the same "architecture-specific override" shape as the
// other arch files.
func detectFeaturesImpl() {
	hasFastUnalignedWord = cpu.X86.HasSSE2
}
