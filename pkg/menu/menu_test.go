package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	menus := []Menu{{ID: 3, Name: "Main"}, {ID: 8, Name: "Footer", Items: []Item{{ID: 1}}}}

	assert.Equal(t, []Option{{Name: "Main", TermID: 3}, {Name: "Footer", TermID: 8}}, Options(menus))
	assert.Empty(t, Options(nil))
}
