package render

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inline elements an entry title may use
var titleElements = []string{"b", "strong", "i", "em", "span", "small", "mark", "code", "sub", "sup", "br"}

func newTitlePolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(titleElements...)

	return p
}

// balance re-serializes a title fragment the way it parses inside a link:
// open elements are closed and stray end tags are dropped.
func balance(fragment string) string {
	ctx := &xhtml.Node{Type: xhtml.ElementNode, Data: "a", DataAtom: atom.A}

	nodes, err := xhtml.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return html.EscapeString(fragment)
	}

	var b strings.Builder
	for _, n := range nodes {
		if err := xhtml.Render(&b, n); err != nil {
			return html.EscapeString(fragment)
		}
	}

	return b.String()
}
