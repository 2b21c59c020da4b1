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

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Work with your tasks.",
}

var (
	tasksSearch string
	tasksStatus string

	tasksListCmd = &cobra.Command{
		Use:   "list",
		Short: "List tasks, optionally filtered by search term and status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			app.Tasks.SetSearchTerm(tasksSearch)
			if err := app.Tasks.SetStatusFilter(tasksStatus); err != nil {
				return err
			}

			if err := app.Tasks.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			view := app.Tasks.DerivedView()
			total, completed := app.Tasks.Counts()

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDUE\tSTATUS\tDONE")
			for _, t := range view {
				done := " "
				if t.IsCompleted {
					done = "x"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.DueDate, t.Status, done)
			}
			w.Flush()

			fmt.Printf("\n%d of %d completed, showing %d\n", completed, total, len(view))
			return nil
		},
	}
)

var (
	taskTitle       string
	taskDescription string
	taskDueDate     string
	taskStatusFlag  string

	tasksAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Create a new task.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			draft := models.TaskDraft{
				Title:       taskTitle,
				Description: taskDescription,
				DueDate:     taskDueDate,
				Status:      models.TaskStatus(taskStatusFlag),
			}

			created, err := app.Tasks.Create(cmd.Context(), draft)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("Task created successfully! ID: %d\n", created.ID)
			return nil
		},
	}

	tasksEditCmd = &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of an existing task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %s", args[0])
			}

			// Šalju se samo eksplicitno prosleđena polja
			patch := models.TaskPatch{}
			if cmd.Flags().Changed("title") {
				patch.Title = &taskTitle
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &taskDescription
			}
			if cmd.Flags().Changed("due") {
				patch.DueDate = &taskDueDate
			}
			if cmd.Flags().Changed("status") {
				status := models.TaskStatus(taskStatusFlag)
				patch.Status = &status
			}

			updated, err := app.Tasks.Update(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("Task %d updated successfully!\n", updated.ID)
			return nil
		},
	}

	tasksDoneCmd = &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle completion of a task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %s", args[0])
			}

			// Lista mora biti učitana da bi se znala trenutna zastavica
			if err := app.Tasks.FetchAll(cmd.Context()); err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			updated, err := app.Tasks.ToggleCompletion(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			if updated.IsCompleted {
				fmt.Printf("Task %d marked as completed.\n", updated.ID)
			} else {
				fmt.Printf("Task %d reopened.\n", updated.ID)
			}
			return nil
		},
	}

	tasksRmCmd = &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a task.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id: %s", args[0])
			}

			if err := app.Tasks.Remove(cmd.Context(), id); err != nil {
				return fmt.Errorf("%s", gateway.UserMessage(err))
			}

			fmt.Printf("Task %d deleted successfully!\n", id)
			return nil
		},
	}
)

func init() {
	tasksListCmd.Flags().StringVarP(&tasksSearch, "search", "s", "", "Case-insensitive search over title and description")
	tasksListCmd.Flags().StringVar(&tasksStatus, "status", "all", "Status filter: all, pending, in_progress, completed")

	tasksAddCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "Task title (required)")
	tasksAddCmd.MarkFlagRequired("title")
	tasksAddCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "Task description")
	tasksAddCmd.Flags().StringVar(&taskDueDate, "due", "", "Due date (YYYY-MM-DD)")
	tasksAddCmd.Flags().StringVar(&taskStatusFlag, "status", "", "Initial status: pending, in_progress, completed")

	tasksEditCmd.Flags().StringVarP(&taskTitle, "title", "t", "", "New title")
	tasksEditCmd.Flags().StringVarP(&taskDescription, "description", "d", "", "New description")
	tasksEditCmd.Flags().StringVar(&taskDueDate, "due", "", "New due date (YYYY-MM-DD)")
	tasksEditCmd.Flags().StringVar(&taskStatusFlag, "status", "", "New status: pending, in_progress, completed")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksEditCmd, tasksDoneCmd, tasksRmCmd)
	rootCmd.AddCommand(tasksCmd)
}
