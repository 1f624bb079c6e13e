// Package block renders the "current menu" block: the part of a navigation menu
// around the entry for the page being viewed.
package block

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/metric"
	"github.com/mchmarny/currentmenu/pkg/render"
	"github.com/mchmarny/currentmenu/pkg/site"
	"github.com/mchmarny/currentmenu/pkg/store"
)

const (
	// ContextEdit is the render context of the editor preview.
	ContextEdit = "edit"

	// DefaultClass is set on the rendered list.
	DefaultClass = "wp-block-current-menu"

	// NoMenuMessage is shown in the editor when no menu is selected.
	NoMenuMessage = "No menu selected."

	noEntryFormat = `No "%s" menu entry for this path.`
)

// Render outcomes, used as the metric label.
const (
	OutcomeNoMenu   = "no_menu"
	OutcomeNoMatch  = "no_match"
	OutcomeRendered = "rendered"
	OutcomeError    = "error"
)

// Request is a single render invocation.
type Request struct {
	// MenuID is the selected menu, nil when none is configured.
	MenuID *int64

	// Context is ContextEdit in the editor preview, anything else on a live page.
	Context string

	// URL is the absolute URL of the page being rendered.
	URL string
}

// IsEdit reports whether the request comes from the editor preview.
func (r Request) IsEdit() bool {
	return r.Context == ContextEdit
}

// NoEntryMessage is shown in the editor when the page has no entry in the menu.
func NoEntryMessage(menuName string) string {
	return fmt.Sprintf(noEntryFormat, menuName)
}

// Block renders the current menu from a store.
type Block struct {
	store      store.Store
	renderer   render.Renderer
	counter    metric.IncrementalCounter
	menuFilter func([]menu.Menu) []menu.Menu
	depth      int
	class      string
}

// Option configures a Block.
type Option func(*Block)

// WithRenderer replaces the default HTML renderer.
func WithRenderer(r render.Renderer) Option {
	return func(b *Block) { b.renderer = r }
}

// WithCounter counts render outcomes.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(b *Block) { b.counter = c }
}

// WithMenuFilter lets callers adjust the menus offered in the editor.
func WithMenuFilter(fn func([]menu.Menu) []menu.Menu) Option {
	return func(b *Block) { b.menuFilter = fn }
}

// WithDepth sets the render depth, render.Unlimited by default.
func WithDepth(d int) Option {
	return func(b *Block) { b.depth = d }
}

// WithClass sets the class of the rendered list.
func WithClass(c string) Option {
	return func(b *Block) { b.class = c }
}

// New creates a block reading from s.
func New(s store.Store, opts ...Option) *Block {
	b := &Block{
		store:    s,
		renderer: render.NewHTMLRenderer(),
		depth:    render.Unlimited,
		class:    DefaultClass,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Block) count(outcome string) {
	if b.counter != nil {
		b.counter.Increment(outcome)
	}
}

// Render renders the block for req. Pages with nothing to show yield an empty string
// on live pages and a short message in the editor.
func (b *Block) Render(ctx context.Context, req Request) (string, error) {
	out, outcome, err := b.render(ctx, req)
	if err != nil {
		b.count(OutcomeError)
		return "", err
	}

	b.count(outcome)

	slog.Debug("block rendered",
		"url", req.URL,
		"context", req.Context,
		"outcome", outcome,
	)

	return out, nil
}

func (b *Block) render(ctx context.Context, req Request) (string, string, error) {
	if req.MenuID == nil {
		return b.message(req, NoMenuMessage), OutcomeNoMenu, nil
	}

	id := *req.MenuID

	items, err := b.store.Items(ctx, id)
	if errors.Is(err, store.ErrMenuNotFound) {
		slog.Warn("selected menu does not exist", "menu", id)
		return b.message(req, NoMenuMessage), OutcomeNoMenu, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to load menu %d: %w", id, err)
	}

	subject, err := site.Subject(ctx, b.store, req.URL)
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve subject: %w", err)
	}

	current, found := menu.Current(items, subject, req.URL)

	var out string
	if found {
		// the filter lives only as long as this call
		out, err = b.renderer.Render(ctx, items, render.Options{
			Depth:     b.depth,
			Class:     b.class,
			CurrentID: current.ID,
			Filter:    menu.FilterFunc(current),
		})
		if err != nil {
			return "", "", fmt.Errorf("failed to render menu %d: %w", id, err)
		}
	}

	if out != "" {
		return out, OutcomeRendered, nil
	}

	if !req.IsEdit() {
		return "", OutcomeNoMatch, nil
	}

	m, err := b.store.Menu(ctx, id)
	if err != nil {
		return "", "", fmt.Errorf("failed to load menu %d: %w", id, err)
	}

	return NoEntryMessage(m.Name), OutcomeNoMatch, nil
}

func (b *Block) message(req Request, msg string) string {
	if req.IsEdit() {
		return msg
	}

	return ""
}

// Options returns the menus the editor can choose from.
func (b *Block) Options(ctx context.Context) ([]menu.Option, error) {
	menus, err := b.store.Menus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}

	if b.menuFilter != nil {
		menus = b.menuFilter(menus)
	}

	return menu.Options(menus), nil
}
