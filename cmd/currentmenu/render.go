package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mchmarny/currentmenu/pkg/block"
)

func newRenderCmd(opts *rootOptions) *cobra.Command {
	var (
		menuID string
		edit   bool
	)

	cmd := &cobra.Command{
		Use:   "render URL",
		Short: "Render the block for a page URL to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := openStore(opts.cfg)
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer closeStore()

			req := block.Request{URL: args[0]}
			if edit {
				req.Context = block.ContextEdit
			}

			if menuID != "" {
				id, err := strconv.ParseInt(menuID, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid menu id %q", menuID)
				}
				req.MenuID = &id
			}

			out, err := newBlock(opts.cfg, s).Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVar(&menuID, "menu", "", "menu id")
	cmd.Flags().BoolVar(&edit, "edit", false, "render as the editor preview")

	return cmd
}
