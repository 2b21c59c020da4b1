package cmd

import (
	"fmt"
	"os"

	"github.com/Lilsadiq8345/Todo/gateway"

	"github.com/spf13/cobra"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Create a new account on the Todo server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Session.Register(cmd.Context(), registerUsername, registerEmail, registerPassword)
			if err != nil {
				return fmt.Errorf("registration failed: %s", gateway.UserMessage(err))
			}

			fmt.Println("Account created. You can log in now.")
			return nil
		},
	}
)

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "New user username (required)")
	registerCmd.MarkFlagRequired("username")

	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "New user email (required)")
	registerCmd.MarkFlagRequired("email")

	registerCmd.Flags().StringVarP(
		&registerPassword,
		"password",
		"p",
		os.Getenv("TODO_PASSWORD"),
		"New user password. Can also be passed as environment variable `TODO_PASSWORD`",
	)

	rootCmd.AddCommand(registerCmd)
}
