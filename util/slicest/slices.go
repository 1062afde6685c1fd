package slicest

// Map converts each element of s with fn.
func Map[T any, S ~[]T, U any](s S, fn func(T) U) []U {
	result := make([]U, len(s))
	for i, t := range s {
		result[i] = fn(t)
	}
	return result
}

// Filter returns the elements of s for which fn is true.
func Filter[T any, S ~[]T](s S, fn func(T) bool) []T {
	result := make([]T, 0, len(s))
	for _, t := range s {
		if fn(t) {
			result = append(result, t)
		}
	}
	return result
}

// Reduce reduces slice S to type U.
func Reduce[T any, S ~[]T, U any](s S, fn func(T, U) U) U {
	var result U
	for _, t := range s {
		result = fn(t, result)
	}
	return result
}

// ToMap converts slice S to a map using fn to derive key/value pairs.
func ToMap[T any, K comparable, V any, S ~[]T](s S, fn func(T) (K, V)) map[K]V {
	result := make(map[K]V, len(s))
	for _, t := range s {
		k, v := fn(t)
		result[k] = v
	}
	return result
}
