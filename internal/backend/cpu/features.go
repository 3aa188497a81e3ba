package cpu

import (
	"runtime"
	"strings"

	cpuid "golang.org/x/sys/cpu"
)

// Features returns the vector extensions of the host CPU that matter to
// float kernels, or "generic" when none are detected.
func Features() string {
	var f []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpuid.X86.HasAVX512F {
			f = append(f, "avx512f")
		}
		if cpuid.X86.HasAVX2 {
			f = append(f, "avx2")
		}
		if cpuid.X86.HasFMA {
			f = append(f, "fma")
		}
		if cpuid.X86.HasSSE41 {
			f = append(f, "sse4.1")
		}
	case "arm64":
		if cpuid.ARM64.HasASIMD {
			f = append(f, "neon")
		}
		if cpuid.ARM64.HasFPHP {
			f = append(f, "fp16")
		}
		if cpuid.ARM64.HasSVE {
			f = append(f, "sve")
		}
	}
	if len(f) == 0 {
		return "generic"
	}
	return strings.Join(f, " ")
}
