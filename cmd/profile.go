package cmd

import (
	"fmt"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/models"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update your profile.",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		profile, err := app.Profile.Fetch(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", gateway.UserMessage(err))
		}

		fmt.Printf("Name:  %s\nEmail: %s\n", profile.Name, profile.Email)
		return nil
	},
}

var (
	profileName        string
	profileEmail       string
	profileCurrentPass string
	profileNewPass     string

	profileUpdateCmd = &cobra.Command{
		Use:   "update",
		Short: "Update name, email and optionally the password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			update := models.ProfileUpdate{
				Name:            profileName,
				Email:           profileEmail,
				CurrentPassword: profileCurrentPass,
				NewPassword:     profileNewPass,
			}

			profile, err := app.Profile.Update(cmd.Context(), update)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("Profile updated successfully! Name: %s, Email: %s\n", profile.Name, profile.Email)
			return nil
		},
	}
)

func init() {
	profileUpdateCmd.Flags().StringVarP(&profileName, "name", "n", "", "Display name (required)")
	profileUpdateCmd.MarkFlagRequired("name")
	profileUpdateCmd.Flags().StringVarP(&profileEmail, "email", "e", "", "Email (required)")
	profileUpdateCmd.MarkFlagRequired("email")
	profileUpdateCmd.Flags().StringVar(&profileCurrentPass, "current-password", "", "Current password, required when changing the password")
	profileUpdateCmd.Flags().StringVar(&profileNewPass, "new-password", "", "New password")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
