package main

import (
	"github.com/spf13/cobra"

	"github.com/bookshelf/storefront/internal/mockbackend"
	"github.com/bookshelf/storefront/pkg/logger"
)

func newMockBackendCmd(a *app) *cobra.Command {
	var (
		port string
		seed bool
	)

	cmd := &cobra.Command{
		Use:   "mock-backend",
		Short: "Run an in-memory library backend for local development",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = a.cfg.Mock.Port
			}

			lib := mockbackend.NewLibrary()
			auth := mockbackend.NewAuthService(lib, a.cfg.Mock.JWTSecret, a.cfg.Mock.TokenTTL)
			if seed {
				if err := mockbackend.Seed(lib, auth); err != nil {
					return err
				}
			}

			a.log.Info().
				Str("port", port).
				Bool("seeded", seed).
				Str("admin", mockbackend.SeedAdminEmail).
				Str("reader", mockbackend.SeedUserEmail).
				Msg("mock backend starting")

			return run(cmd.Context(), mockbackend.NewRouter(lib, auth, logger.Component("mock-backend")), ":"+port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $MOCK_PORT)")
	cmd.Flags().BoolVar(&seed, "seed", true, "create demo accounts and books")
	return cmd
}
