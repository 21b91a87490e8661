package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/rajivgeraev/deals-api/internal/config"
	"github.com/rajivgeraev/deals-api/internal/utils"
)

// newTokenCmd выпускает JWT для существующего пользователя (локальная разработка)
func newTokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Выпустить JWT для пользователя",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			token, err := utils.NewJWTService(cfg.JWTSecret).GenerateToken(id, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "UUID пользователя")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "время жизни токена")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
