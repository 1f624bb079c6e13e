package site

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/currentmenu/pkg/menu"
)

type mapDir struct {
	objects []Object
	err     error
}

func (d mapDir) ObjectByURL(_ context.Context, url string) (Object, bool, error) {
	if d.err != nil {
		return Object{}, false, d.err
	}
	for _, o := range d.objects {
		if o.URL == url {
			return o, true, nil
		}
	}
	return Object{}, false, nil
}

func (d mapDir) Object(_ context.Context, kind menu.ObjectType, id int64) (Object, bool, error) {
	for _, o := range d.objects {
		if o.Kind == kind && o.ID == id {
			return o, true, nil
		}
	}
	return Object{}, false, nil
}

const testDoc = `
menus:
  - id: 2
    name: Main
    items:
      - {id: 10, object_id: 1, object_type: content, url: "https://example.com/about", title: About}
      - {id: 11, parent: 10, object_id: 2, object_type: content, url: "https://example.com/about/team", title: Team}
content:
  - {id: 1, url: "https://example.com/about"}
  - {id: 2, parent: 1, url: "https://example.com/about/team"}
  - {id: 3, parent: 2, url: "https://example.com/about/team/jo", terms: [7, 99, 8]}
terms:
  - {id: 5, taxonomy: category, url: "https://example.com/c/root"}
  - {id: 7, taxonomy: category, parent: 5, url: "https://example.com/c/root/people"}
  - {id: 8, taxonomy: tag, parent: 5, url: "https://example.com/t/staff"}
`

func testDir(t *testing.T) mapDir {
	t.Helper()

	doc, err := Decode(strings.NewReader(testDoc))
	require.NoError(t, err)

	return mapDir{objects: doc.Objects()}
}

func TestSubjectContent(t *testing.T) {
	dir := testDir(t)

	sub, err := Subject(context.Background(), dir, "https://example.com/about/team/jo")
	require.NoError(t, err)

	assert.Equal(t, menu.SubjectContent, sub.Kind)
	assert.Equal(t, int64(3), sub.ID)
	assert.Equal(t, []int64{2, 1}, sub.Ancestors)

	require.Len(t, sub.Terms, 2, "missing term 99 is skipped")
	assert.Equal(t, menu.Subject{Kind: menu.SubjectTerm, ID: 7, Taxonomy: "category", Ancestors: []int64{5}}, sub.Terms[0])
	assert.Equal(t, int64(8), sub.Terms[1].ID)
	assert.Empty(t, sub.Terms[1].Ancestors, "parent in another taxonomy is not an ancestor")
}

func TestSubjectTerm(t *testing.T) {
	sub, err := Subject(context.Background(), testDir(t), "https://example.com/c/root/people")
	require.NoError(t, err)

	assert.Equal(t, menu.SubjectTerm, sub.Kind)
	assert.Equal(t, "category", sub.Taxonomy)
	assert.Equal(t, []int64{5}, sub.Ancestors)
	assert.Empty(t, sub.Terms)
}

func TestSubjectUnknownURL(t *testing.T) {
	sub, err := Subject(context.Background(), testDir(t), "https://example.com/nowhere")
	require.NoError(t, err)
	assert.Equal(t, menu.SubjectNone, sub.Kind)
}

func TestSubjectLookupError(t *testing.T) {
	_, err := Subject(context.Background(), mapDir{err: errors.New("boom")}, "https://example.com/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestAncestorsCycle(t *testing.T) {
	dir := mapDir{objects: []Object{
		{ID: 1, Kind: menu.ObjectContent, Parent: 2},
		{ID: 2, Kind: menu.ObjectContent, Parent: 3},
		{ID: 3, Kind: menu.ObjectContent, Parent: 1},
	}}

	anc, err := Ancestors(context.Background(), dir, dir.objects[0])
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, anc)
}

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(testDoc))
	require.NoError(t, err)

	require.Len(t, doc.Menus, 1)
	assert.Equal(t, "Main", doc.Menus[0].Name)
	assert.Equal(t, menu.Item{ID: 11, Parent: 10, ObjectID: 2, ObjectType: menu.ObjectContent, URL: "https://example.com/about/team", Title: "Team"}, doc.Menus[0].Items[1])
	assert.Len(t, doc.Objects(), 6)
	assert.Equal(t, menu.ObjectTaxonomy, doc.Terms[0].Kind)
}

func TestDecodeEmpty(t *testing.T) {
	doc, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, doc.Menus)
}

func TestDecodeInvalid(t *testing.T) {
	tests := map[string]string{
		"duplicate menu":    "menus: [{id: 1}, {id: 1}]",
		"duplicate entry":   "menus: [{id: 1, items: [{id: 2}, {id: 2}]}]",
		"entry without id":  "menus: [{id: 1, items: [{url: x}]}]",
		"duplicate content": "content: [{id: 1}, {id: 1}]",
		"not yaml":          "menus: {",
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}
