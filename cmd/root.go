package cmd

import (
	"fmt"
	"os"

	"github.com/Lilsadiq8345/Todo/config"
	"github.com/Lilsadiq8345/Todo/gateway"
	"github.com/Lilsadiq8345/Todo/guard"
	"github.com/Lilsadiq8345/Todo/logging"
	"github.com/Lilsadiq8345/Todo/services"
	"github.com/Lilsadiq8345/Todo/session"

	"github.com/spf13/cobra"
)

// App drži sve komponente klijenta; gradi se jednom u korenu aplikacije
// i prosleđuje komandama, nema ambijentalnog stanja.
type App struct {
	Config  config.Config
	Session *session.Store
	Guard   *guard.Guard
	Tasks   *services.TaskService
	Users   *services.UserService
	Profile *services.ProfileService
}

// NewApp povezuje komponente: storage -> store -> gateway -> menadžeri.
func NewApp() *App {
	cfg := config.Load()
	logging.InitLogger(cfg.LogFile)

	storage := session.NewFileStorage(cfg.CredFile)
	store := session.NewStore(storage)
	api := gateway.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, store)
	store.SetClient(api)

	// Sesija iz prethodnog pokretanja se vraća bez provere kod servera
	store.Restore()

	return &App{
		Config:  cfg,
		Session: store,
		Guard:   guard.New(store),
		Tasks:   services.NewTaskService(api),
		Users:   services.NewUserService(api),
		Profile: services.NewProfileService(api),
	}
}

var app *App

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "A CLI client for the Todo task manager",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if app == nil {
			app = NewApp()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// requireAuth je guard za komande koje traže prijavu.
func requireAuth() error {
	if app.Guard.Check(guard.RequireAuth) != guard.Allow {
		return fmt.Errorf("not logged in; run 'todo login' first")
	}
	return nil
}

// requireAdmin je guard za administratorske komande.
func requireAdmin() error {
	if app.Guard.Check(guard.RequireAdmin) != guard.Allow {
		return fmt.Errorf("administrator session required; run 'todo login' with an admin account")
	}
	return nil
}
