package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mindsprint_backend/internals/configs"
	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/identity"
)

// NewTokenCommand mints a development token signed with JWT_SECRET.
func NewTokenCommand() *cobra.Command {
	var (
		sub  string
		role string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development JWT",
		RunE: func(cmd *cobra.Command, args []string) error {
			configs.LoadEnv()
			secret := configs.GetEnv("JWT_SECRET")
			if secret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if !constants.IsKnownRole(role) {
				return fmt.Errorf("unknown role %q", role)
			}

			p, err := identity.NewJWTProvider(secret)
			if err != nil {
				return err
			}
			tok, err := p.Issue(identity.Identity{ID: sub, Role: role}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}

	cmd.Flags().StringVar(&sub, "sub", "", "subject id")
	cmd.Flags().StringVar(&role, "role", constants.RoleClient, "client, therapist or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
