package site

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mchmarny/currentmenu/pkg/menu"
)

// Document is the serialized form of a site.
type Document struct {
	Menus   []menu.Menu `yaml:"menus"`
	Content []Object    `yaml:"content"`
	Terms   []Object    `yaml:"terms"`
}

// Decode reads a YAML document and stamps the object kinds.
func Decode(r io.Reader) (*Document, error) {
	var doc Document

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode site document: %w", err)
	}

	for i := range doc.Content {
		doc.Content[i].Kind = menu.ObjectContent
	}

	for i := range doc.Terms {
		doc.Terms[i].Kind = menu.ObjectTaxonomy
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Objects returns content records followed by terms.
func (d *Document) Objects() []Object {
	out := make([]Object, 0, len(d.Content)+len(d.Terms))
	out = append(out, d.Content...)

	return append(out, d.Terms...)
}

// Validate checks that ids are unique. Dangling parents are allowed.
func (d *Document) Validate() error {
	menus := make(map[int64]bool, len(d.Menus))
	for _, m := range d.Menus {
		if menus[m.ID] {
			return fmt.Errorf("duplicate menu id %d", m.ID)
		}
		menus[m.ID] = true

		items := make(map[int64]bool, len(m.Items))
		for _, it := range m.Items {
			if it.ID == 0 {
				return fmt.Errorf("menu %d: entry without id", m.ID)
			}
			if items[it.ID] {
				return fmt.Errorf("menu %d: duplicate entry id %d", m.ID, it.ID)
			}
			items[it.ID] = true
		}
	}

	seen := make(map[string]bool)
	for _, o := range d.Objects() {
		key := fmt.Sprintf("%s/%d", o.Kind, o.ID)
		if seen[key] {
			return fmt.Errorf("duplicate %s id %d", o.Kind, o.ID)
		}
		seen[key] = true
	}

	return nil
}
