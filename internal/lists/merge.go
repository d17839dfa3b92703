// Package lists implements the client-side behavior of the entity list
// pages: filtering, sorting, and the local merge of create/update/delete
// results. Lists are patched in place after a mutation rather than
// refetched; navigating back to a page always refetches wholesale.
package lists

// MergeCreated appends a newly created item to the list.
func MergeCreated[T any](items []T, created T) []T {
	return append(items, created)
}

// MergeUpdated replaces the item whose id matches updated, leaving order
// untouched. If no item matches, the list is returned unchanged.
func MergeUpdated[T any](items []T, updated T, id func(T) int64) []T {
	target := id(updated)
	out := make([]T, len(items))
	copy(out, items)
	for i, item := range out {
		if id(item) == target {
			out[i] = updated
			break
		}
	}
	return out
}

// RemoveByID deletes the item with the given id from the list.
func RemoveByID[T any](items []T, target int64, id func(T) int64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}
