package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/langkawi/directory-access/internal/core/service"
	"github.com/langkawi/directory-access/internal/infrastructure/queue"
	"github.com/langkawi/directory-access/internal/pkg/config"
	"github.com/langkawi/directory-access/pkg/logger"
)

// cli carries state shared by every subcommand.
type cli struct {
	v   *viper.Viper
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:          "accessctl",
		Short:        "Directory access operator tool",
		Long:         `Issue and inspect tokens, hash and check passwords, and inspect project configurations.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			c.log = logger.New(logger.Options{
				Level:  c.v.GetString("log-level"),
				Pretty: true,
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	pf.String("secret", "", "token signing secret (env JWT_SECRET)")
	pf.String("access-ttl", "7d", "access token lifetime (env JWT_EXPIRES_IN)")
	pf.String("refresh-ttl", "30d", "refresh token lifetime (env JWT_REFRESH_EXPIRES_IN)")
	_ = c.v.BindPFlag("log-level", pf.Lookup("log-level"))
	_ = c.v.BindPFlag("secret", pf.Lookup("secret"))
	_ = c.v.BindPFlag("access-ttl", pf.Lookup("access-ttl"))
	_ = c.v.BindPFlag("refresh-ttl", pf.Lookup("refresh-ttl"))
	_ = c.v.BindEnv("secret", "JWT_SECRET")
	_ = c.v.BindEnv("access-ttl", "JWT_EXPIRES_IN")
	_ = c.v.BindEnv("refresh-ttl", "JWT_REFRESH_EXPIRES_IN")

	root.AddCommand(c.tokenCmd(), c.passwordCmd(), c.configCmd())
	return root
}

// credentials builds a credential service for the duration of one command.
// The hash pool stops when ctx ends.
func (c *cli) credentials(cmd *cobra.Command, cost int) (*service.CredentialService, error) {
	pool := queue.NewHashPool(1, c.log)
	pool.Start(cmd.Context())

	accessTTL, err := config.ParseLifetime(c.v.GetString("access-ttl"))
	if err != nil {
		return nil, fmt.Errorf("access-ttl: %w", err)
	}
	refreshTTL, err := config.ParseLifetime(c.v.GetString("refresh-ttl"))
	if err != nil {
		return nil, fmt.Errorf("refresh-ttl: %w", err)
	}

	return service.NewCredentialService(service.CredentialOptions{
		Secret:     c.v.GetString("secret"),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		BcryptCost: cost,
	}, pool)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}


