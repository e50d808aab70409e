package compose

// reduce collapses items into at most one node: nothing for an empty list,
// the element itself for a singleton, wrap(items) otherwise.
func reduce[T any](items []T, wrap func([]T) T) (T, bool) {
	var zero T
	switch len(items) {
	case 0:
		return zero, false
	case 1:
		return items[0], true
	default:
		return wrap(items), true
	}
}
