package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/osse101/WeddingBot_Go/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, create)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, create")
	}
	subcmd := args[0]

	// create writes a new file next to the embedded migrations; no DB needed
	if subcmd == "create" {
		if len(args) < 2 {
			return fmt.Errorf("migration name required for create")
		}
		migrationType := "sql"
		if len(args) > 2 {
			migrationType = args[2]
		}
		return runCommandVerbose("go", "run", "github.com/pressly/goose/v3/cmd/goose",
			"-dir", "internal/database/migrations", "create", args[1], migrationType)
	}

	ctx := context.Background()
	pool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	switch subcmd {
	case "up":
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Migrations applied")
	case "down":
		if !confirm("Roll back the most recent migration?") {
			PrintWarning("Aborted")
			return nil
		}
		if err := database.MigrateDown(ctx, pool); err != nil {
			return err
		}
		PrintSuccess("Rolled back one migration")
	case "status":
		version, err := database.MigrationStatus(ctx, pool)
		if err != nil {
			return err
		}
		PrintInfo("Schema version: %d", version)
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
	return nil
}

// confirm asks on stdin unless DEVTOOL_ASSUME_YES is set
func confirm(question string) bool {
	if os.Getenv("DEVTOOL_ASSUME_YES") != "" {
		return true
	}
	fmt.Printf("%s Type '%s' to continue: ", question, confirmYes)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(answer) == confirmYes
}
