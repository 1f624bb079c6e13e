package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(items []Item) []int64 {
	out := make([]int64, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}

	return out
}

func tree() []Item {
	return []Item{
		{ID: 1, Parent: TopLevel},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 1},
		{ID: 4, Parent: 2},
		{ID: 5, Parent: TopLevel},
	}
}

func TestFilter(t *testing.T) {
	items := tree()

	tests := []struct {
		name    string
		current int64
		want    []int64
	}{
		{name: "middle entry", current: 2, want: []int64{1, 2, 3, 4}},
		{name: "leaf", current: 4, want: []int64{2, 4}},
		{name: "top level with children", current: 1, want: []int64{1, 2, 3}},
		{name: "top level alone", current: 5, want: []int64{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var current Item
			for _, it := range items {
				if it.ID == tt.current {
					current = it
				}
			}

			assert.Equal(t, tt.want, ids(Filter(items, current)))
		})
	}
}

func TestFilterIdempotent(t *testing.T) {
	items := tree()
	current := items[1]

	once := Filter(items, current)
	assert.Equal(t, once, Filter(once, current))
}

func TestFilterDoesNotModifyInput(t *testing.T) {
	items := tree()
	before := append([]Item(nil), items...)

	_ = Filter(items, items[3])
	assert.Equal(t, before, items)
}

func TestFilterDanglingParent(t *testing.T) {
	items := []Item{
		{ID: 1, Parent: TopLevel},
		{ID: 2, Parent: 1},
		{ID: 3, Parent: 42},
	}

	assert.Equal(t, []int64{1, 2}, ids(Filter(items, items[1])))
	assert.Equal(t, []int64{3}, ids(Filter(items, items[2])))
}

func TestFilterFunc(t *testing.T) {
	items := []Item{
		{ID: 1, Parent: TopLevel, URL: "https://example.com/a"},
		{ID: 2, Parent: 1, URL: "https://example.com/a/b"},
		{ID: 3, Parent: TopLevel, URL: "https://example.com/c"},
	}

	current, ok := Current(items, Subject{}, "https://example.com/a/b")
	require.True(t, ok)

	fn := FilterFunc(current)
	assert.Equal(t, []int64{1, 2}, ids(fn(items)))
	assert.Equal(t, ids(fn(items)), ids(fn(fn(items))))

	_, ok = Current(items, Subject{}, "https://example.com/missing")
	assert.False(t, ok)
}
