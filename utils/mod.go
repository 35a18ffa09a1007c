package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) != -1
}

// Remove returns slice without the first occurrence of item.
func Remove[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	if i == -1 {
		return slice
	}
	out := make([]T, 0, len(slice)-1)
	out = append(out, slice[:i]...)
	return append(out, slice[i+1:]...)
}

// CopyMap returns a shallow copy of m, nil stays nil.
func CopyMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Permutations returns every order of slice, slice itself first.
func Permutations[T any](slice []T) [][]T {
	if len(slice) <= 1 {
		return [][]T{append([]T(nil), slice...)}
	}
	var out [][]T
	for i := range slice {
		rest := make([]T, 0, len(slice)-1)
		rest = append(rest, slice[:i]...)
		rest = append(rest, slice[i+1:]...)
		for _, p := range Permutations(rest) {
			out = append(out, append([]T{slice[i]}, p...))
		}
	}
	return out
}
