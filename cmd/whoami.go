package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cred, ok := app.Session.Current()
		if !ok {
			fmt.Println("Not logged in.")
			return nil
		}

		fmt.Printf("Logged in with role: %s\n", cred.Role)

		// Tvrdnje iz tokena su informativne; server je taj koji ih proverava
		info, err := app.Session.TokenInfo()
		if err != nil {
			return nil
		}
		if info.Subject != "" {
			fmt.Printf("Subject: %s\n", info.Subject)
		}
		if !info.ExpiresAt.IsZero() {
			fmt.Printf("Token expires: %s", info.ExpiresAt.Format("2006-01-02 15:04:05"))
			if info.Expired {
				fmt.Print(" (expired)")
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
