package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/langkawi/directory-access/internal/core/domain"
	"github.com/langkawi/directory-access/internal/core/service"
)

func (c *cli) tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue, verify and decode bearer tokens",
	}
	cmd.AddCommand(c.tokenIssueCmd(), c.tokenVerifyCmd(), c.tokenDecodeCmd())
	return cmd
}

func (c *cli) tokenIssueCmd() *cobra.Command {
	var (
		subject domain.TokenSubject
		role    string
		refresh bool
	)
	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Sign a token for a subject",
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject.Role = domain.Role(role)
			if !subject.Role.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			creds, err := c.credentials(cmd, 0)
			if err != nil {
				return err
			}

			issue := creds.IssueAccessToken
			if refresh {
				issue = creds.IssueRefreshToken
			}
			token, err := issue(subject)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&subject.UserID, "user-id", "", "subject user id")
	f.StringVar(&subject.Email, "email", "", "subject email")
	f.StringVar(&role, "role", string(domain.RolePublicUser), "subject role")
	f.BoolVar(&refresh, "refresh", false, "issue a refresh token instead of an access token")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func (c *cli) tokenVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Check a token's signature and expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := c.credentials(cmd, 0)
			if err != nil {
				return err
			}
			payload, err := creds.VerifyToken(args[0])
			if err != nil {
				if service.TokenExpired(err) {
					return errors.New("token expired")
				}
				return err
			}
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
}

func (c *cli) tokenDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Print a token's claims without checking the signature",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, ok := service.DecodeToken(args[0])
			if !ok {
				return errors.New("malformed token")
			}
			return printJSON(cmd.OutOrStdout(), payload)
		},
	}
}
