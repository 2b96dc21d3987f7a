package cmd

import (
	"fmt"
	"time"

	"dispatch-tracker/config"
	"dispatch-tracker/middleware"
	"dispatch-tracker/models"

	"github.com/spf13/cobra"
)

// tokenCommand issues a bearer token. Authentication itself lives outside
// this service, the command exists for operators and local testing.
func tokenCommand(cfg *config.Config) *cobra.Command {
	var (
		userID uint
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed JWT for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return fmt.Errorf("--user-id is required")
			}
			r := models.Role(role)
			if !r.Valid() {
				return fmt.Errorf("invalid role %q", role)
			}
			if ttl <= 0 {
				ttl = time.Duration(cfg.JWTExpiration) * time.Second
			}

			tok, err := middleware.GenerateToken(cfg.JWTSecret, userID, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().UintVar(&userID, "user-id", 0, "User id placed in the token")
	cmd.Flags().StringVar(&role, "role", string(models.RoleOperator), "Role placed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, defaults to JWT_EXPIRATION")
	return cmd
}
