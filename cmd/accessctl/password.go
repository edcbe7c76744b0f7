package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/service"
)

func (c *cli) passwordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Hash, check, generate and grade passwords",
	}
	cmd.AddCommand(c.passwordHashCmd(), c.passwordCheckCmd(), passwordGenerateCmd(), passwordStrengthCmd())
	return cmd
}

// hashOnlySecret stands in for the signing secret when a command only hashes.
const hashOnlySecret = "accessctl"

func (c *cli) passwordHashCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash <password>",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := c.hashingCredentials(cmd, cost)
			if err != nil {
				return err
			}
			hash, err := creds.HashPassword(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", service.DefaultBcryptCost, "bcrypt cost")
	return cmd
}

func (c *cli) passwordCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <password> <hash>",
		Short: "Check a password against a bcrypt hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := c.hashingCredentials(cmd, 0)
			if err != nil {
				return err
			}
			ok, err := creds.ComparePassword(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("password does not match")
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "match")
			return err
		},
	}
}

func (c *cli) hashingCredentials(cmd *cobra.Command, cost int) (*service.CredentialService, error) {
	if c.v.GetString("secret") == "" {
		c.v.Set("secret", hashOnlySecret)
	}
	return c.credentials(cmd, cost)
}

func passwordGenerateCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := service.GenerateRandomPassword(length)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pw)
			return err
		},
	}
	cmd.Flags().IntVar(&length, "length", service.DefaultPasswordLength, "password length")
	return cmd
}

func passwordStrengthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strength <password>",
		Short: "Report which strength rules a password violates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := domain.ValidatePasswordStrength(args[0])
			if err := printJSON(cmd.OutOrStdout(), struct {
				Valid      bool     `json:"valid"`
				Violations []string `json:"violations"`
			}{res.Valid, res.Messages()}); err != nil {
				return err
			}
			if !res.Valid {
				return domain.ErrWeakPassword
			}
			return nil
		},
	}
}
