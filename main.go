package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"logia/cmd"
	"logia/config"
	"logia/database"

	log "github.com/sirupsen/logrus"
)

const usage = `usage:
  logia                                   run the Discord bot
  logia migrate up|down [steps]|status    manage database migrations
  logia import <file.csv|file.xlsx>       import brothers from a roster
  logia report attendance|brothers pdf|xlsx [output] [grade]`

func main() {
	if len(os.Args) > 1 {
		if err := handleToolCommand(os.Args[1:]); err != nil {
			log.Fatalf("%s error: %v", os.Args[1], err)
		}
		return
	}

	// Normal bot operation
	config.Get().ConfigureLogging()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	// Run the application
	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func handleToolCommand(args []string) error {
	ctx := context.Background()

	switch args[0] {
	case "migrate":
		return handleMigrationCommand(args[1:])
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("missing roster file\n%s", usage)
		}
		return cmd.ImportBrothers(ctx, args[1])
	case "report":
		if len(args) < 3 {
			return fmt.Errorf("missing report or format\n%s", usage)
		}
		out, grade := optionalArg(args, 3), optionalArg(args, 4)
		return cmd.ExportReport(ctx, args[1], args[2], out, grade)
	case "help", "-h", "--help":
		fmt.Println(usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func handleMigrationCommand(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: logia migrate [up|down|status] [args...]")
	}

	switch args[0] {
	case "up":
		return database.MigrateUp()
	case "down":
		return database.MigrateDown(optionalArg(args, 1, "1"))
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", args[0])
	}
}

// optionalArg returns args[idx], or the fallback when it is missing
func optionalArg(args []string, idx int, fallback ...string) string {
	if idx < len(args) {
		return args[idx]
	}
	if len(fallback) > 0 {
		return fallback[0]
	}
	return ""
}
