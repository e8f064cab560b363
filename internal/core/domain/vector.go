package domain

// IsZeroVector reports whether every component of v is zero.
// Empty or whitespace-only text embeds to a zero vector, which is
// non-matchable: it must never be compared as if it carried meaning.
func IsZeroVector(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// DotProduct returns the dot product of two vectors.
// Both sides are expected to be L2-normalised, which makes the dot
// product equal to their cosine similarity. Mismatched lengths
// compare only the shared prefix and are a caller bug.
func DotProduct(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
