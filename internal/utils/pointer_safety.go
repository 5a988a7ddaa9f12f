package utils

// Value dereferences v, giving the zero value for nil. Optional API fields
// such as a quote's timestamps are read through it.
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Ptr returns a pointer to a copy of v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}
