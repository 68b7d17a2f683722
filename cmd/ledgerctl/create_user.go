package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slogsolutions/Audit-Management-Platform/internal/application/usecase/auth"
)

func createUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Register a ledger user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			injector, closeApp, err := openApp()
			if err != nil {
				return err
			}
			defer closeApp()

			out, err := injector.RegisterUser.Execute(cmd.Context(), auth.RegisterUserInput{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s <%s>\n", out.User.Role, out.User.ID, out.User.Email)
			return nil
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "login email")
	cmd.Flags().String("password", "", "initial password")
	cmd.Flags().String("role", "MEMBER", "ADMIN or MEMBER")
	for _, f := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}
