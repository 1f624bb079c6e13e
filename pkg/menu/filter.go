package menu

// Filter returns the entries related to current: current itself, its siblings,
// its children and its parent. Top-level entries are never siblings of each other.
// Relative order is preserved and items is not modified.
func Filter(items []Item, current Item) []Item {
	out := make([]Item, 0, len(items))

	for _, it := range items {
		if related(it, current) {
			out = append(out, it)
		}
	}

	return out
}

func related(it, current Item) bool {
	switch {
	case it.ID == current.ID:
		return true
	case !it.IsTopLevel() && it.Parent == current.Parent:
		return true
	case it.Parent == current.ID:
		return true
	case it.ID == current.Parent:
		return true
	default:
		return false
	}
}

// FilterFunc returns a function that narrows a menu to the entries around current.
func FilterFunc(current Item) func([]Item) []Item {
	return func(items []Item) []Item {
		return Filter(items, current)
	}
}
