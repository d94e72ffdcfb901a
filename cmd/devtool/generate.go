package main

import "fmt"

// generatedDir is where sqlc writes the query code
const generatedDir = "internal/database/generated"

type GenerateCommand struct{}

func (c *GenerateCommand) Name() string {
	return "generate"
}

func (c *GenerateCommand) Description() string {
	return "Regenerate sqlc query code (--check fails if it was stale)"
}

func (c *GenerateCommand) Run(args []string) error {
	check := len(args) > 0 && args[0] == "--check"

	PrintHeader("Generating query code")
	// go run uses the sqlc version pinned in tools.go
	if err := runCommandVerbose("go", "run", "github.com/sqlc-dev/sqlc/cmd/sqlc", "generate"); err != nil {
		return fmt.Errorf("sqlc generate failed: %w", err)
	}

	if check {
		if err := runCommand("git", "diff", "--exit-code", "--", generatedDir); err != nil {
			PrintError("Generated code was out of date with internal/database/queries")
			PrintWarning("Commit the regenerated files in %s", generatedDir)
			return fmt.Errorf("generated files are stale")
		}
	}
	PrintSuccess("Query code is up to date")
	return nil
}
