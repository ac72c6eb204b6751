package utils

import "math"

// NormalizeL2 scales a question embedding in place to unit length, so a
// plain dot product between two normalized vectors is their cosine
// similarity. Zero vectors are left untouched.
func NormalizeL2(v []float32) {
	var ss float64
	for _, f := range v {
		ss += float64(f) * float64(f)
	}
	if ss == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(ss))
	for i := range v {
		v[i] *= inv
	}
}
