package store

import (
	"context"
	"fmt"
	"os"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/site"
)

type objectKey struct {
	kind menu.ObjectType
	id   int64
}

// FileStore serves a site document loaded from a YAML file.
type FileStore struct {
	path    string
	menus   []menu.Menu
	byID    map[int64]int
	objects map[objectKey]site.Object
	byURL   map[string]site.Object
}

// NewFileStore loads the YAML site document at path.
func NewFileStore(path string) (*FileStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := site.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	s := NewDocumentStore(doc)
	s.path = path

	return s, nil
}

// NewDocumentStore indexes an already decoded document.
// When several objects share a URL, the first one listed is used.
func NewDocumentStore(doc *site.Document) *FileStore {
	s := &FileStore{
		menus:   doc.Menus,
		byID:    make(map[int64]int, len(doc.Menus)),
		objects: make(map[objectKey]site.Object),
		byURL:   make(map[string]site.Object),
	}

	for i, m := range doc.Menus {
		s.byID[m.ID] = i
	}

	for _, o := range doc.Objects() {
		s.objects[objectKey{o.Kind, o.ID}] = o
		if _, dup := s.byURL[o.URL]; !dup && o.URL != "" {
			s.byURL[o.URL] = o
		}
	}

	return s
}

// Path returns the file the store was loaded from.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Menus(_ context.Context) ([]menu.Menu, error) {
	out := make([]menu.Menu, 0, len(s.menus))
	for _, m := range s.menus {
		out = append(out, menu.Menu{ID: m.ID, Name: m.Name})
	}

	return out, nil
}

func (s *FileStore) Menu(_ context.Context, id int64) (menu.Menu, error) {
	i, ok := s.byID[id]
	if !ok {
		return menu.Menu{}, fmt.Errorf("menu %d: %w", id, ErrMenuNotFound)
	}

	return menu.Menu{ID: s.menus[i].ID, Name: s.menus[i].Name}, nil
}

// Items returns a copy of the menu entries.
func (s *FileStore) Items(_ context.Context, menuID int64) ([]menu.Item, error) {
	i, ok := s.byID[menuID]
	if !ok {
		return nil, fmt.Errorf("menu %d: %w", menuID, ErrMenuNotFound)
	}

	return append([]menu.Item(nil), s.menus[i].Items...), nil
}

func (s *FileStore) ObjectByURL(_ context.Context, url string) (site.Object, bool, error) {
	o, ok := s.byURL[url]
	return o, ok, nil
}

func (s *FileStore) Object(_ context.Context, kind menu.ObjectType, id int64) (site.Object, bool, error) {
	o, ok := s.objects[objectKey{kind, id}]
	return o, ok, nil
}
