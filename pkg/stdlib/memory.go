// Package stdlib holds small memory helpers over slices, used by the
// compositor for canvas fills and rectangle copies.
package stdlib

// Memset fills data with value.
func Memset[T any](data []T, value T) {
	for i := range data {
		data[i] = value
	}
}

// MemCpy copies src into dst, bounded by the shorter of the two.
func MemCpy[T any](dst, src []T) int {
	return copy(dst, src)
}
