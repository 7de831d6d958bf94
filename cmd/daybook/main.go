package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/jwhittle/daybook/internal/cli"
	"github.com/jwhittle/daybook/internal/db"
	"github.com/jwhittle/daybook/internal/repository"
	"github.com/jwhittle/daybook/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath := os.Getenv("DAYBOOK_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".daybook", "daybook.db")
	}

	userID := os.Getenv("DAYBOOK_USER")
	if userID == "" {
		userID = "local"
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	taskRepo := repository.NewSQLiteTaskRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	postponeRepo := repository.NewSQLitePostponeRepo(database)
	recurringRepo := repository.NewSQLiteRecurringRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("DAYBOOK_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Schedule:  service.NewScheduleService(uow, taskRepo, settingsRepo, planRepo, postponeRepo, observer),
		Postpones: service.NewPostponeService(taskRepo, planRepo, postponeRepo, observer),
		Settings:  service.NewSettingsService(settingsRepo, observer),
		Tasks:     service.NewTaskService(taskRepo, observer),
		Recurring: service.NewRecurringService(uow, recurringRepo, taskRepo, observer),
		UserID:    userID,
	}

	// Styled output only when a human is looking at it.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
