package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/api/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "TaskDeck API Server",
		Long:  `TaskDeck is a multi-user task tracking service with per-task notes, priorities and completion state.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewUserCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
