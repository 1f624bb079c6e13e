package menu

import "slices"

// Resolve finds the entry representing the subject in a single pass over items.
//
// The first entry linking to the subject itself, or whose URL equals currentURL,
// wins and ends the scan. Until such an entry is found, entries linking to one of
// the ancestors with the type matching the subject kind are kept as a fallback;
// a later ancestor entry replaces an earlier one regardless of which ancestor is nearer.
//
// The returned bool is false when nothing matched.
func Resolve(items []Item, subject Subject, ancestors []int64, currentURL string) (Item, bool) {
	return search(items, subject, ancestors, currentURL, true)
}

// Current resolves the current entry for a page. When a content record has no entry of
// its own (or of its ancestors), its terms are tried in order without URL comparison and
// the first term that resolves wins.
func Current(items []Item, subject Subject, currentURL string) (Item, bool) {
	if it, ok := Resolve(items, subject, subject.Ancestors, currentURL); ok {
		return it, true
	}

	if subject.Kind != SubjectContent {
		return Item{}, false
	}

	for _, term := range subject.Terms {
		if it, ok := search(items, term, term.Ancestors, "", false); ok {
			return it, true
		}
	}

	return Item{}, false
}

func search(items []Item, subject Subject, ancestors []int64, currentURL string, matchURL bool) (Item, bool) {
	var (
		found Item
		ok    bool
	)

	for _, it := range items {
		if subject.matches(it) || (matchURL && currentURL != "" && it.URL == currentURL) {
			return it, true
		}

		if subject.Kind == SubjectNone || len(ancestors) == 0 {
			continue
		}

		// overwrite on every hit, an exact match further down still wins
		if it.ObjectType == subject.objectType() && slices.Contains(ancestors, it.ObjectID) {
			found, ok = it, true
		}
	}

	return found, ok
}
