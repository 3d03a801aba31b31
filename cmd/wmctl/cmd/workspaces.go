package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var workspacesCmd = &cobra.Command{
	Use:   "workspaces",
	Short: "Print a summary of every known workspace as JSON",
	Args:  cobra.NoArgs,
	RunE:  runWorkspaces,
}

func init() {
	rootCmd.AddCommand(workspacesCmd)
}

func runWorkspaces(_ *cobra.Command, _ []string) error {
	resp, err := conn.GetWorkspaces()
	if err != nil {
		return wrapPrintedError(err)
	}
	if resp.Error != "" {
		return wrapPrintedError(fmt.Errorf("%s", resp.Error))
	}
	os.Stdout.Write(resp.Data)
	fmt.Println()
	return nil
}
