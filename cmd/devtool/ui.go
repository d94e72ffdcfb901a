package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/WeddingBot_Go/internal/domain"
)

const (
	colorGreen  = "\033[0;32m"
	colorRed    = "\033[0;31m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorReset  = "\033[0m"
)

// Terminal output. Colors are dropped for NO_COLOR and when stdout is piped,
// so `devtool watch | tee` logs stay readable.
var (
	out      io.Writer = os.Stdout
	useColor           = colorEnabled()
)

func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

func printLine(color, symbol, format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if symbol != "" {
		msg = symbol + " " + msg
	}
	if useColor {
		msg = color + msg + colorReset
	}
	fmt.Fprintln(out, msg)
}

func PrintInfo(format string, a ...interface{})    { printLine(colorBlue, "ℹ", format, a...) }
func PrintSuccess(format string, a ...interface{}) { printLine(colorGreen, "✓", format, a...) }
func PrintWarning(format string, a ...interface{}) { printLine(colorYellow, "⚠", format, a...) }
func PrintError(format string, a ...interface{})   { printLine(colorRed, "✗", format, a...) }

func PrintHeader(title string) {
	fmt.Fprintln(out)
	printLine(colorYellow, "", "=== %s ===", title)
}

// Lottery output shared by watch and the state-printing commands

func PrintState(state domain.LotteryState) {
	PrintInfo("state v%d active=%t drawing=%t mode=%s per_draw=%d current=%s",
		state.Version, state.IsActive, state.IsDrawing, state.AnimationMode,
		state.WinnersPerDraw, drawIDString(state.CurrentDrawID))
}

func PrintDraw(drawID uuid.UUID, participants int, winners []domain.HistoryRecord) {
	PrintSuccess("draw %s among %d participants", drawID, participants)
	for i, w := range winners {
		name := w.WinnerDisplayName
		if name == "" {
			name = w.WinnerUserID
		}
		fmt.Fprintf(out, "    %d. %s (%s) photo=%s\n", i+1, name, w.WinnerUserID, w.WinnerPhotoID)
	}
}

func PrintHistoryChange(deletedID *uuid.UUID, cleared bool, removed int64) {
	if cleared {
		PrintWarning("history cleared (%d records), past winners are eligible again", removed)
		return
	}
	PrintWarning("history record %s deleted", drawIDString(deletedID))
}

func drawIDString(id *uuid.UUID) string {
	if id == nil {
		return "-"
	}
	return id.String()
}

// External commands (docker compose, go run goose, tool version probes)

var hostilePatterns = []string{"|", "`", "$(", "&&", "||", ">", "<"}

// checkHostile rejects arguments that could split or redirect a command if
// they ever reach a shell. '&' and ';' stay allowed for URLs and SQL.
func checkHostile(inputs ...string) error {
	for _, s := range inputs {
		if strings.ContainsAny(s, "\n\r\x00") {
			return fmt.Errorf("hostile input detected: control character in %q", s)
		}
		for _, p := range hostilePatterns {
			if strings.Contains(s, p) {
				return fmt.Errorf("hostile input detected: pattern %q in %q", p, s)
			}
		}
	}
	return nil
}

func command(name string, args ...string) (*exec.Cmd, error) {
	if err := checkHostile(append([]string{name}, args...)...); err != nil {
		return nil, err
	}
	// #nosec G204 - arguments are checked above and never passed to a shell
	return exec.Command(name, args...), nil
}

func getCommandOutput(name string, args ...string) (string, error) {
	cmd, err := command(name, args...)
	if err != nil {
		return "", err
	}
	b, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func runCommand(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// runCommandVerbose streams the command's output to the terminal
func runCommandVerbose(name string, args ...string) error {
	cmd, err := command(name, args...)
	if err != nil {
		return err
	}
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
