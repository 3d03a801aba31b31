package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the daemon's config JSON Schema",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func runSchema(_ *cobra.Command, _ []string) error {
	resp, err := conn.GetConfigSchema()
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
