// Command storefront runs the storefront gateway, the interactive shop and the
// mock library backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/pkg/config"
	"github.com/bookshelf/storefront/pkg/logger"
)

// app carries what every subcommand needs once PersistentPreRunE has run.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Library storefront: session, cart and checkout",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: "storefront",
			})
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newBooksCmd(a),
		newBillsCmd(a),
		newShopCmd(a),
		newMockBackendCmd(a),
	)
	return root
}
