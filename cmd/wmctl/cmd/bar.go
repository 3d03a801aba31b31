package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var barCmd = &cobra.Command{
	Use:   "bar <bar_id> <key> [value]",
	Short: "Change or query one status bar's runtime configuration",
	Long: `Sends a "bar <key> [value] [bar_id]" command, matching the
`+"`bar`"+` verb's argument order (spec.md §4.3): key is the option name
(e.g. "mode", "hidden_state"), value is its new setting, and bar_id is
passed along as the bar's id. The daemon keeps one shared bar
configuration, so the change applies to every bar whatever bar_id is given.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runBar,
}

func init() {
	rootCmd.AddCommand(barCmd)
}

func runBar(_ *cobra.Command, args []string) error {
	barID, key := args[0], args[1]
	parts := []string{"bar", key}
	if len(args) == 3 {
		parts = append(parts, args[2])
	}
	parts = append(parts, barID)
	cmdline := strings.Join(parts, " ")

	resp, err := conn.RunCommand(cmdline)
	if err != nil {
		return wrapPrintedError(err)
	}
	if resp.Error != "" {
		return wrapPrintedError(fmt.Errorf("%s", resp.Error))
	}
	for _, r := range resp.Results {
		if !r.Success {
			return wrapPrintedError(fmt.Errorf("%s", r.Error))
		}
	}
	return nil
}
