package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ashwinyue/next-blog/internal/model"
	"github.com/ashwinyue/next-blog/internal/pkg/jwt"
	"github.com/ashwinyue/next-blog/internal/service/auth"
)

var (
	adminEmail    string
	adminUsername string
	adminPassword string
	adminRole     string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create a back-office user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repos, closeDB, err := openRepositories()
		if err != nil {
			return err
		}
		defer closeDB()

		svc := auth.NewService(repos, jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes), zl)
		user, err := svc.CreateUser(cmd.Context(), &auth.CreateUserRequest{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
			Role:     adminRole,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Login email")
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "Display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Password (at least 6 characters)")
	createAdminCmd.Flags().StringVar(&adminRole, "role", model.RoleAdmin, "Role: admin or editor")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("username")
	_ = createAdminCmd.MarkFlagRequired("password")
}
