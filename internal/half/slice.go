package half

// FromFloat32s converts src into dst element by element.
// It converts min(len(dst), len(src)) values and returns that count.
func FromFloat32s(dst []Float16, src []float32) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = FromFloat32(src[i])
	}
	return n
}

// ToFloat32s widens src into dst element by element.
// It converts min(len(dst), len(src)) values and returns that count.
func ToFloat32s(dst []float32, src []Float16) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i].Float32()
	}
	return n
}
