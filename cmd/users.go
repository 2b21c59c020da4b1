package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/models"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Administer user accounts (admin only).",
}

var (
	usersSearch string

	usersListCmd = &cobra.Command{
		Use:   "list",
		Short: "List user accounts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			app.Users.SetSearchTerm(usersSearch)
			if err := app.Users.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tACTIVE")
			for _, u := range app.Users.DerivedView() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", u.ID, u.Username, u.Email, u.Role, u.IsActive)
			}
			w.Flush()
			return nil
		},
	}
)

var (
	userUsername string
	userEmail    string
	userPassword string
	userRole     string

	usersAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a user account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			draft := models.UserDraft{
				Username: userUsername,
				Email:    userEmail,
				Password: userPassword,
				Role:     userRole,
			}

			created, err := app.Users.Create(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("User created successfully! ID: %d\n", created.ID)
			return nil
		},
	}

	usersEditCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a user account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			patch := models.UserPatch{}
			if cmd.Flags().Changed("username") {
				patch.Username = &userUsername
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &userEmail
			}
			if cmd.Flags().Changed("password") {
				patch.Password = &userPassword
			}
			if cmd.Flags().Changed("role") {
				patch.Role = &userRole
			}

			updated, err := app.Users.Update(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("User %d updated successfully!\n", updated.ID)
			return nil
		},
	}

	usersRmCmd = &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a user account.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %s", args[0])
			}

			if err := app.Users.Remove(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("User %d deleted successfully!\n", id)
			return nil
		},
	}
)

func init() {
	usersListCmd.Flags().StringVarP(&usersSearch, "search", "s", "", "Case-insensitive search over username and email")

	usersAddCmd.Flags().StringVarP(&userUsername, "username", "u", "", "Username (required)")
	usersAddCmd.MarkFlagRequired("username")
	usersAddCmd.Flags().StringVarP(&userEmail, "email", "e", "", "Email (required)")
	usersAddCmd.MarkFlagRequired("email")
	usersAddCmd.Flags().StringVarP(&userPassword, "password", "p", "", "Password (required)")
	usersAddCmd.MarkFlagRequired("password")
	usersAddCmd.Flags().StringVarP(&userRole, "role", "r", models.RoleUser, "Role: admin or user")

	usersEditCmd.Flags().StringVarP(&userUsername, "username", "u", "", "New username")
	usersEditCmd.Flags().StringVarP(&userEmail, "email", "e", "", "New email")
	usersEditCmd.Flags().StringVarP(&userPassword, "password", "p", "", "New password")
	usersEditCmd.Flags().StringVarP(&userRole, "role", "r", "", "New role")

	usersCmd.AddCommand(usersListCmd, usersAddCmd, usersEditCmd, usersRmCmd)
	rootCmd.AddCommand(usersCmd)
}
