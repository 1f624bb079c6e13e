package block

import (
	"context"
	"log/slog"

	"github.com/mchmarny/currentmenu/pkg/server"
)

// Run serves the block endpoints and blocks until the context is canceled or an error occurs.
func (b *Block) Run(ctx context.Context, opt ...server.Option) error {
	slog.Info("starting block server")

	opt = append(opt,
		server.WithHandler(RenderPath, b.RenderHandler()),
		server.WithHandler(MenusPath, b.MenusHandler()),
	)

	return server.New(opt...).Serve(ctx)
}
