package linq

// ToList projects a map through a selector into a slice. Iteration
// order is the map's, i.e. unspecified.
func ToList[K comparable, V any, T any](data map[K]V, selector func(K, V) T) []T {
	r := make([]T, len(data))
	c := 0
	for k, v := range data {
		r[c] = selector(k, v)
		c++
	}
	return r
}
