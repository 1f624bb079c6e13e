// Package store provides the menu and site data sources the block renders from.
package store

import (
	"context"
	"errors"

	"github.com/mchmarny/currentmenu/pkg/menu"
	"github.com/mchmarny/currentmenu/pkg/site"
)

// ErrMenuNotFound is returned when a menu id is unknown.
var ErrMenuNotFound = errors.New("menu not found")

// Store is a read-only source of menus and site objects.
type Store interface {
	site.Directory

	// Menus returns all menus without their items.
	Menus(ctx context.Context) ([]menu.Menu, error)

	// Menu returns the menu with the given id, without items.
	Menu(ctx context.Context, id int64) (menu.Menu, error)

	// Items returns the flat entry list of a menu.
	Items(ctx context.Context, menuID int64) ([]menu.Item, error)
}
