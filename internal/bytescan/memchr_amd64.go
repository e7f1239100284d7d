//go:build amd64

package bytescan

import "golang.org/x/sys/cpu"

// hasAVX2 selects the 32-bytes-per-iteration kernel at package init.
var hasAVX2 = cpu.X86.HasAVX2

// memchrAVX2 is implemented in memchr_amd64.s.
//
//go:noescape
func memchrAVX2(p []byte, c byte) int

// Memchr returns the index of the first instance of c in p, or -1 if c is
// not present. Inputs of 32 bytes and up use the AVX2 kernel when the CPU
// supports it; everything else takes the SWAR path.
func Memchr(p []byte, c byte) int {
	if hasAVX2 && len(p) >= 32 {
		return memchrAVX2(p, c)
	}
	return memchrSWAR(p, c)
}
