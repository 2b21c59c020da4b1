package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored credential.",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Session.Logout()
		// Zavisni menadžeri se eksplicitno prazne pri odjavi
		app.Tasks.Reset()
		app.Users.Reset()

		fmt.Println("Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
