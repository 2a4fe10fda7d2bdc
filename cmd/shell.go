package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-scout-elt/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the scouting store. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("scoutelt shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("scoutelt")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := shellExec(db, line); err != nil {
			cError.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
	return nil
}

// shellExec runs one REPL line against db.
func shellExec(db *storage.DB, line string) error {
	tokens := strings.Fields(line)
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "help":
		shellHelp()
	case "list":
		return printTableCounts(db)
	case "summary":
		return printSummary(db)
	case "show":
		if len(args) == 0 {
			return fmt.Errorf("usage: show <players|teams|top> [--team <team_id>] [--report <name>]")
		}
		team := shellFlag(args[1:], "--team")
		return printShow(db, args[0], team, shellFlag(args[1:], "--report"))
	case "player":
		if len(args) == 0 {
			return fmt.Errorf("usage: player <player_id> [<player_id>...]")
		}
		return printPlayers(db, args)
	case "trend":
		if len(args) != 1 {
			return fmt.Errorf("usage: trend <player_id>")
		}
		return printTrend(db, args[0])
	case "sql":
		if len(args) == 0 {
			return fmt.Errorf("usage: sql <query>")
		}
		return printQuery(db, strings.TrimSpace(strings.TrimPrefix(line, "sql")))
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
	}
	return nil
}

// shellFlag returns the value following name in args, or "".
func shellFlag(args []string, name string) string {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == name {
			return args[i+1]
		}
	}
	return ""
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "row counts per store table"},
		{"summary", "store overview"},
		{"show players [--team T] [--report R]", "player aggregates or a scouting report"},
		{"show teams [--team T]", "per-team summary"},
		{"show top [--team T]", "top players per team"},
		{"player <player_id> [...]", "compare players side by side"},
		{"trend <player_id>", "per-match log for one player"},
		{"sql <query>", "raw SQL against the store"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-40s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}
