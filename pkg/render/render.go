// Package render turns a flat list of menu entries into an HTML list.
package render

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/mchmarny/currentmenu/pkg/menu"
)

const (
	// Unlimited nests entries under their parents at any depth.
	Unlimited = 0

	// Flat renders all entries in a single list.
	Flat = -1

	// CurrentClass marks the list element of the entry for the current page.
	CurrentClass = "current-menu-item"
)

// Options control a single render call.
type Options struct {
	// Depth is Unlimited, Flat, or the number of levels to render.
	Depth int

	// Class is set on the outer list.
	Class string

	// CurrentID is the id of the current entry, marked with CurrentClass. Zero marks none.
	CurrentID int64

	// Filter, when set, narrows the entries before rendering. It applies to this call only.
	Filter func([]menu.Item) []menu.Item
}

// Renderer produces markup for menu entries. An empty result means nothing to show.
type Renderer interface {
	Render(ctx context.Context, items []menu.Item, opts Options) (string, error)
}

// HTMLRenderer renders nested <ul> lists. Entry titles may contain inline HTML;
// the generated markup is passed through a sanitizing policy.
type HTMLRenderer struct {
	policy *bluemonday.Policy
	titles *bluemonday.Policy
}

// NewHTMLRenderer creates a renderer with the default policy.
func NewHTMLRenderer() *HTMLRenderer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").OnElements("ul", "li")

	return &HTMLRenderer{policy: p, titles: newTitlePolicy()}
}

// Render applies opts.Filter and renders the remaining entries. Entries whose parent is
// not in the list are rendered at the top level.
func (r *HTMLRenderer) Render(ctx context.Context, items []menu.Item, opts Options) (string, error) {
	if opts.Filter != nil {
		items = opts.Filter(items)
	}

	if len(items) == 0 {
		return "", nil
	}

	if opts.Depth < Flat {
		return "", fmt.Errorf("invalid depth %d", opts.Depth)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	t := newTree(items, opts.Depth == Flat)
	t.title = func(s string) string { return balance(r.titles.Sanitize(s)) }

	var b strings.Builder
	b.WriteString(`<ul`)
	if opts.Class != "" {
		fmt.Fprintf(&b, ` class="%s"`, html.EscapeString(opts.Class))
	}
	b.WriteString(`>`)

	for _, it := range t.roots {
		t.write(&b, it, 1, opts)
	}

	// entries only reachable through a parent cycle
	if opts.Depth == Unlimited {
		for _, it := range items {
			t.write(&b, it, 1, opts)
		}
	}

	b.WriteString(`</ul>`)

	return r.policy.Sanitize(b.String()), nil
}

type tree struct {
	roots    []menu.Item
	children map[int64][]menu.Item
	seen     map[int64]bool
	title    func(string) string
}

func newTree(items []menu.Item, flat bool) *tree {
	t := &tree{
		children: make(map[int64][]menu.Item),
		seen:     make(map[int64]bool),
	}

	if flat {
		t.roots = items
		return t
	}

	present := make(map[int64]bool, len(items))
	for _, it := range items {
		present[it.ID] = true
	}

	for _, it := range items {
		if it.IsTopLevel() || !present[it.Parent] || it.Parent == it.ID {
			t.roots = append(t.roots, it)
			continue
		}
		t.children[it.Parent] = append(t.children[it.Parent], it)
	}

	return t
}

func (t *tree) write(b *strings.Builder, it menu.Item, level int, opts Options) {
	if t.seen[it.ID] {
		return
	}
	t.seen[it.ID] = true

	class := fmt.Sprintf("menu-item menu-item-%d", it.ID)
	if opts.CurrentID != 0 && it.ID == opts.CurrentID {
		class += " " + CurrentClass
	}

	fmt.Fprintf(b, `<li class="%s"><a href="%s">%s</a>`, class, html.EscapeString(it.URL), t.title(it.Title))

	kids := t.children[it.ID]
	if len(kids) > 0 && (opts.Depth == Unlimited || level < opts.Depth) {
		b.WriteString(`<ul class="sub-menu">`)
		for _, k := range kids {
			t.write(b, k, level+1, opts)
		}
		b.WriteString(`</ul>`)
	}

	b.WriteString(`</li>`)
}
