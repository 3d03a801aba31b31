package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var msgJSON bool

var msgCmd = &cobra.Command{
	Use:   "msg <command...>",
	Short: "Run a command batch against the live tree",
	Long: `Sends its arguments, joined by spaces, as one run_command batch —
the same text a keybinding or i3bar click would send. Multiple commands
may be ';'-separated in a single quoted argument.

Examples:
  wmctl msg workspace 2
  wmctl msg 'move to workspace 3; workspace 3'
  wmctl msg '[class="firefox"] kill'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMsg,
}

func init() {
	rootCmd.AddCommand(msgCmd)
	msgCmd.Flags().BoolVar(&msgJSON, "json", false, "print the raw JSON reply")
}

func runMsg(_ *cobra.Command, args []string) error {
	cmdline := strings.Join(args, " ")
	resp, err := conn.RunCommand(cmdline)
	if err != nil {
		return wrapPrintedError(err)
	}
	if resp.Error != "" {
		return wrapPrintedError(fmt.Errorf("%s", resp.Error))
	}

	if msgJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp.Results)
	}

	failed := false
	for _, r := range resp.Results {
		if r.Success {
			continue
		}
		failed = true
		fmt.Fprintf(os.Stderr, "error: %s\n", r.Error)
	}
	if failed {
		return wrapPrintedError(fmt.Errorf("one or more commands failed"))
	}
	return nil
}
