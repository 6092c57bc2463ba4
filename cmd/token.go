package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ProjectsTask/TraitSigner/base/kit/auth"
	"github.com/ProjectsTask/TraitSigner/src/config"
)

var (
	tokenSubject string
	tokenRole    string
)

// TokenCmd 使用配置中的 jwt_secret 签发管理员 token
var TokenCmd = &cobra.Command{
	Use:   "token",
	Short: "issue an admin jwt for the trait admin routes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.UnmarshalCmdConfig()
		if err != nil {
			return err
		}

		m := auth.NewJWTManager(cfg.Auth.JwtSecret, cfg.Auth.JwtIssuer, time.Duration(cfg.Auth.TokenTTL)*time.Hour)
		token, err := m.Generate(tokenSubject, tokenRole)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	TokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject")
	TokenCmd.Flags().StringVar(&tokenRole, "role", auth.RoleAdmin, "token role")
	rootCmd.AddCommand(TokenCmd)
}
