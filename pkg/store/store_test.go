package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/site"
)

const testFile = "testdata/site.yaml"

func loadDoc(t *testing.T) *site.Document {
	t.Helper()

	f, err := os.Open(testFile)
	require.NoError(t, err)
	defer f.Close()

	doc, err := site.Decode(f)
	require.NoError(t, err)

	return doc
}

// checkStore runs the behavior every Store must share against the test document.
func checkStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	menus, err := s.Menus(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 2)
	for _, m := range menus {
		assert.Empty(t, m.Items)
	}

	m, err := s.Menu(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, menu.Menu{ID: 2, Name: "Main"}, m)

	_, err = s.Menu(ctx, 404)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	items, err := s.Items(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, menu.Item{ID: 11, Parent: 10, ObjectID: 2, ObjectType: menu.ObjectContent, URL: "https://example.com/about/team", Title: "Team"}, items[1])

	items, err = s.Items(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = s.Items(ctx, 404)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	o, ok, err := s.ObjectByURL(ctx, "https://example.com/about/team")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, site.Object{ID: 2, Kind: menu.ObjectContent, Parent: 1, URL: "https://example.com/about/team", Terms: []int64{5}}, o)

	_, ok, err = s.ObjectByURL(ctx, "https://example.com/missing")
	require.NoError(t, err)
	assert.False(t, ok)

	o, ok, err = s.Object(ctx, menu.ObjectTaxonomy, 5)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "category", o.Taxonomy)

	_, ok, err = s.Object(ctx, menu.ObjectContent, 5)
	require.NoError(t, err)
	assert.False(t, ok)

	sub, err := site.Subject(ctx, s, "https://example.com/about/team")
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, sub.Ancestors)
	require.Len(t, sub.Terms, 1)
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(testFile)
	require.NoError(t, err)
	assert.Equal(t, testFile, s.Path())

	checkStore(t, s)

	menus, err := s.Menus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Main", menus[0].Name, "document order is kept")
}

func TestFileStoreItemsAreCopied(t *testing.T) {
	s := NewDocumentStore(loadDoc(t))
	ctx := context.Background()

	items, err := s.Items(ctx, 2)
	require.NoError(t, err)
	items[0].Title = "changed"

	again, err := s.Items(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "About", again[0].Title)
}

func TestFileStoreMissingFile(t *testing.T) {
	_, err := NewFileStore("testdata/nope.yaml")
	assert.Error(t, err)
}
