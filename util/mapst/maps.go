package mapst

import "sort"

// Keys returns the keys of m in unspecified order.
func Keys[K comparable, V any, M ~map[K]V](m M) []K {
	result := make([]K, 0, len(m))
	for k := range m {
		result = append(result, k)
	}
	return result
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any, M ~map[string]V](m M) []string {
	keys := Keys(m)
	sort.Strings(keys)
	return keys
}
