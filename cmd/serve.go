package cmd

import (
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/webui"

	"github.com/spf13/cobra"
)

var (
	servePort string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the local web dashboard.",
		Long:  "Run the local web dashboard. The dashboard renders the task and user managers in a browser and enforces the same session rules as the CLI.",
		RunE: func(cmd *cobra.Command, args []string) error {
			port := servePort
			if port == "" {
				port = app.Config.ServerPort
			}

			server := webui.NewServer(app.Session, app.Guard, app.Tasks, app.Users, app.Profile)
			if err := server.Run(port); err != nil {
				logging.Logger.Errorf("Event ID: SERVER_FATAL_ERROR, Description: Dashboard failed to start: %v", err)
				return err
			}
			return nil
		},
	}
)

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port for the dashboard (default from SERVER_PORT)")
	rootCmd.AddCommand(serveCmd)
}
