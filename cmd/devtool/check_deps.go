package main

import (
	"fmt"
	"strings"
)

type CheckDepsCommand struct{}

func (c *CheckDepsCommand) Name() string {
	return "check-deps"
}

func (c *CheckDepsCommand) Description() string {
	return "Check for required local tooling"
}

type toolCheck struct {
	name     string
	cmd      []string
	field    int
	required bool
	hint     string
}

var toolChecks = []toolCheck{
	// go version go1.24.0 linux/amd64
	{name: "Go", cmd: []string{"go", "version"}, field: 2, required: true, hint: "https://go.dev/dl/"},
	// Docker version 24.0.5, build ced0996
	{name: "Docker", cmd: []string{"docker", "--version"}, field: 2, required: true, hint: "https://docs.docker.com/get-docker/"},
	// Docker Compose version v2.20.2
	{name: "Docker Compose", cmd: []string{"docker", "compose", "version"}, field: 3, hint: "bundled with recent Docker installs"},
	// goose version: v3.26.0
	{name: "Goose", cmd: []string{"goose", "--version"}, field: -1, hint: "go install github.com/pressly/goose/v3/cmd/goose@latest"},
	// v1.30.0
	{name: "sqlc", cmd: []string{"sqlc", "version"}, field: 0, hint: "devtool generate runs the version pinned in tools.go"},
}

func (c *CheckDepsCommand) Run(args []string) error {
	PrintHeader("Checking dependencies...")

	var missing []string
	for _, tool := range toolChecks {
		out, err := getCommandOutput(tool.cmd[0], tool.cmd[1:]...)
		if err != nil {
			if tool.required {
				PrintError("%s not found (%s)", tool.name, tool.hint)
				missing = append(missing, tool.name)
			} else {
				PrintWarning("%s not found (%s)", tool.name, tool.hint)
			}
			continue
		}
		PrintSuccess("%s installed: %s", tool.name, versionField(out, tool.field))
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
	}
	return nil
}

// versionField picks the version token out of a tool's version line.
// A negative field counts from the end.
func versionField(out string, field int) string {
	line := strings.SplitN(out, "\n", 2)[0]
	parts := strings.Fields(line)
	if field < 0 {
		field = len(parts) + field
	}
	if field < 0 || field >= len(parts) {
		return line
	}
	v := strings.TrimRight(parts[field], ",")
	return strings.TrimPrefix(v, "version:")
}
