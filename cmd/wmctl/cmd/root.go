// Package cmd provides Cobra CLI commands for wmctl.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/wm/cmd/wmctl/internal/client"
)

var (
	socketPath string
	conn       *client.Client

	rootCmd = &cobra.Command{
		Use:           "wmctl",
		Short:         "Control and query a running wm daemon",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `wmctl talks to a running wm daemon over its IPC socket, the
same command language keybindings and the IPC protocol carry (spec.md §6).

Examples:
  wmctl msg 'workspace 2'
  wmctl msg '[class="firefox"] kill'
  wmctl tree
  wmctl tree --watch
  wmctl bar bar-0 mode hide`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			var err error
			conn, err = client.Dial(socketPath)
			if err != nil {
				return wrapPrintedError(fmt.Errorf("connect to %s: %w", socketPath, err))
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if conn != nil {
				_ = conn.Close()
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", client.DefaultSocketPath(), "wm daemon IPC socket path")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var printedErr *printedError
		if errors.As(err, &printedErr) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type printedError struct {
	err error
}

func (e *printedError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *printedError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

func wrapPrintedError(err error) error {
	if err == nil {
		return nil
	}
	return &printedError{err: err}
}
