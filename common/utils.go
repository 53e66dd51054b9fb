package common

// Coalesce returns the first value that is not the zero value of T. Config layers use it to fall back to a
// default when a field was left unset or explicitly zeroed where zero is not a valid setting.
//
// Parameters:
//   - values: candidates in priority order
//
// Returns:
//   - T: the first non-zero candidate, or the zero value when every candidate is zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for i := range values {
		if values[i] != zero {
			return values[i]
		}
	}
	return zero
}
