package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Lilsadiq8345/Todo/gateway"

	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	loginCmd = &cobra.Command{
		Use:   "login",
		Short: "Log in to the Todo server.",
		Long:  "Log in to the Todo server. On success the token is stored in the credential file and reused by later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := app.Session.Login(cmd.Context(), loginEmail, loginPassword)
			if err != nil {
				if errors.Is(err, gateway.ErrUnauthorized) {
					return fmt.Errorf("login failed: invalid email or password")
				}
				return fmt.Errorf("login failed: %s", gateway.UserMessage(err))
			}

			fmt.Printf("Login was successful! Role: %s\n", cred.Role)
			return nil
		},
	}
)

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email (required)")
	loginCmd.MarkFlagRequired("email")

	loginCmd.Flags().StringVarP(
		&loginPassword,
		"password",
		"p",
		os.Getenv("TODO_PASSWORD"),
		"Account password. Can also be passed as environment variable `TODO_PASSWORD`",
	)

	rootCmd.AddCommand(loginCmd)
}
