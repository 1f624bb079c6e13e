// Package site describes the content of a site: the records and taxonomy terms pages
// are about, and the menus linking to them. It turns a request URL into the
// menu.Subject the current entry is resolved against.
package site

import (
	"context"
	"fmt"

	"github.com/mchmarny/currentmenu/pkg/menu"
)

// Object is a content record or a taxonomy term.
type Object struct {
	// ID is unique among objects of the same kind.
	ID int64 `json:"id" yaml:"id"`

	// Kind is either menu.ObjectContent or menu.ObjectTaxonomy.
	Kind menu.ObjectType `json:"kind" yaml:"-"`

	// Taxonomy names the taxonomy of a term, e.g. "category".
	Taxonomy string `json:"taxonomy,omitempty" yaml:"taxonomy,omitempty"`

	// Parent is the ID of the parent object of the same kind, 0 when none.
	Parent int64 `json:"parent,omitempty" yaml:"parent,omitempty"`

	// URL is the absolute URL the object is published at.
	URL string `json:"url" yaml:"url"`

	// Terms are the ids of the terms attached to a content record.
	Terms []int64 `json:"terms,omitempty" yaml:"terms,omitempty"`
}

// Directory looks objects up. Lookups report a missing object with false, not an error.
type Directory interface {
	// ObjectByURL returns the object published at url.
	ObjectByURL(ctx context.Context, url string) (Object, bool, error)

	// Object returns the object of the given kind and id.
	Object(ctx context.Context, kind menu.ObjectType, id int64) (Object, bool, error)
}

// Subject builds the subject of the page at url. Pages that are neither a content
// record nor a term yield a menu.SubjectNone subject.
func Subject(ctx context.Context, dir Directory, url string) (menu.Subject, error) {
	obj, ok, err := dir.ObjectByURL(ctx, url)
	if err != nil {
		return menu.Subject{}, fmt.Errorf("failed to look up %q: %w", url, err)
	}

	if !ok {
		return menu.Subject{Kind: menu.SubjectNone}, nil
	}

	sub, err := subjectOf(ctx, dir, obj)
	if err != nil {
		return menu.Subject{}, err
	}

	if obj.Kind != menu.ObjectContent {
		return sub, nil
	}

	for _, id := range obj.Terms {
		term, found, err := dir.Object(ctx, menu.ObjectTaxonomy, id)
		if err != nil {
			return menu.Subject{}, fmt.Errorf("failed to look up term %d: %w", id, err)
		}

		if !found {
			continue
		}

		ts, err := subjectOf(ctx, dir, term)
		if err != nil {
			return menu.Subject{}, err
		}

		sub.Terms = append(sub.Terms, ts)
	}

	return sub, nil
}

func subjectOf(ctx context.Context, dir Directory, obj Object) (menu.Subject, error) {
	kind := menu.SubjectContent
	if obj.Kind == menu.ObjectTaxonomy {
		kind = menu.SubjectTerm
	}

	anc, err := Ancestors(ctx, dir, obj)
	if err != nil {
		return menu.Subject{}, err
	}

	return menu.Subject{
		Kind:      kind,
		ID:        obj.ID,
		Taxonomy:  obj.Taxonomy,
		Ancestors: anc,
	}, nil
}

// Ancestors returns the ids of obj's ancestors, nearest first. The walk stops at a
// missing parent, at a term of another taxonomy, or when a parent repeats.
func Ancestors(ctx context.Context, dir Directory, obj Object) ([]int64, error) {
	var (
		out  []int64
		seen = map[int64]bool{obj.ID: true}
	)

	for cur := obj; cur.Parent != 0 && !seen[cur.Parent]; {
		parent, ok, err := dir.Object(ctx, obj.Kind, cur.Parent)
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent %d of %d: %w", cur.Parent, cur.ID, err)
		}

		if !ok || parent.Taxonomy != obj.Taxonomy {
			break
		}

		seen[parent.ID] = true
		out = append(out, parent.ID)
		cur = parent
	}

	return out, nil
}
