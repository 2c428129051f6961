// Package patch resolves optional request fields against configured defaults.
package patch

// Coalesce returns *ptr unless ptr is nil or points at the zero value.
// An explicitly empty redirect URL therefore falls back like a missing one.
func Coalesce[T comparable](ptr *T, fallback T) T {
	var zero T
	if ptr == nil || *ptr == zero {
		return fallback
	}
	return *ptr
}

// FirstNonZero returns the first value that is not the zero value.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
