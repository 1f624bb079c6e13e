package menu

// SubjectKind tells what the viewed page is about.
type SubjectKind int

const (
	// SubjectNone is an unknown subject; only URL matching applies.
	SubjectNone SubjectKind = iota

	// SubjectContent is a content record.
	SubjectContent

	// SubjectTerm is a taxonomy term.
	SubjectTerm
)

// String returns the name of the kind.
func (k SubjectKind) String() string {
	switch k {
	case SubjectContent:
		return "content"
	case SubjectTerm:
		return "term"
	default:
		return "none"
	}
}

// Subject is the thing the current page is about.
type Subject struct {
	// Kind discriminates the subject.
	Kind SubjectKind

	// ID of the content record or term. Ignored for SubjectNone.
	ID int64

	// Taxonomy is the taxonomy name of a term subject.
	Taxonomy string

	// Ancestors are the ids of the subject's ancestors, nearest first.
	Ancestors []int64

	// Terms are the taxonomy terms attached to a content record, in the order
	// they are tried when the record itself has no entry.
	Terms []Subject
}

// objectType maps the subject kind to the entry type its ancestors are linked as.
func (s Subject) objectType() ObjectType {
	if s.Kind == SubjectTerm {
		return ObjectTaxonomy
	}

	return ObjectContent
}

// matches reports whether the entry links to the subject itself.
func (s Subject) matches(it Item) bool {
	if s.Kind == SubjectNone || it.ObjectID == 0 {
		return false
	}

	return it.ObjectID == s.ID
}
