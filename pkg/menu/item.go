package menu

// TopLevel is the parent id of entries that sit at the top of the menu.
const TopLevel int64 = 0

// ObjectType identifies what kind of object a menu entry links to.
type ObjectType string

const (
	// ObjectContent marks an entry linking to a content record.
	ObjectContent ObjectType = "content"

	// ObjectTaxonomy marks an entry linking to a taxonomy term.
	ObjectTaxonomy ObjectType = "taxonomy"
)

// Item represents one entry of a flattened menu tree.
// The tree is encoded by Parent, which refers to the ID of another item in the same list.
type Item struct {
	// ID is the unique identifier of the entry within its menu.
	ID int64 `json:"id" yaml:"id"`

	// Parent is the ID of the parent entry, or TopLevel.
	Parent int64 `json:"parent,omitempty" yaml:"parent,omitempty"`

	// ObjectID is the content record or taxonomy term the entry links to.
	// Zero for entries pointing at arbitrary URLs.
	ObjectID int64 `json:"object_id,omitempty" yaml:"object_id,omitempty"`

	// ObjectType is the kind of object ObjectID refers to.
	ObjectType ObjectType `json:"object_type,omitempty" yaml:"object_type,omitempty"`

	// URL is the absolute URL the entry resolves to.
	URL string `json:"url" yaml:"url"`

	// Title is the label of the entry. It may contain inline HTML.
	Title string `json:"title" yaml:"title"`
}

// IsTopLevel reports whether the entry has no parent.
func (i Item) IsTopLevel() bool {
	return i.Parent == TopLevel
}
