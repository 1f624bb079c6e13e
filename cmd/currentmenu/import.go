package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mchmarny/currentmenu/pkg/site"
	"github.com/mchmarny/currentmenu/pkg/store"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Load a YAML site document into Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.cfg.Store.RedisURL == "" {
				return errors.New("import requires --redis-url")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			doc, err := site.Decode(f)
			if err != nil {
				return err
			}

			s, err := store.NewRedisStoreFromURL(opts.cfg.Store.RedisURL, opts.cfg.Store.RedisPrefix)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Import(cmd.Context(), doc); err != nil {
				return err
			}

			slog.Info("site imported", "file", args[0], "menus", len(doc.Menus), "objects", len(doc.Objects()))

			return nil
		},
	}
}
