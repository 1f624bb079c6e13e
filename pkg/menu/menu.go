package menu

// Menu represents a named navigation menu.
type Menu struct {
	// ID is the menu identifier used by blocks to select it.
	ID int64 `json:"term_id" yaml:"id"`

	// Name of the menu
	Name string `json:"name" yaml:"name"`

	// Items is the flat list of menu entries
	Items []Item `json:"items,omitempty" yaml:"items,omitempty"`
}

// Option is the editor's view of a menu: its name and id.
type Option struct {
	Name   string `json:"name"`
	TermID int64  `json:"term_id"`
}

// Options converts menus into editor choices, preserving order.
func Options(menus []Menu) []Option {
	opts := make([]Option, 0, len(menus))
	for _, m := range menus {
		opts = append(opts, Option{Name: m.Name, TermID: m.ID})
	}

	return opts
}
