package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/wm/cmd/wmctl/internal/inspect"
)

var treeWatch bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the current container tree, or watch it live",
	Long: `Without --watch, prints one get_tree response's JSON body and exits.
With --watch, launches an interactive viewer that polls the daemon and
redraws the tree as it changes.`,
	Args: cobra.NoArgs,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVar(&treeWatch, "watch", false, "launch the live tree-inspector TUI")
}

func runTree(_ *cobra.Command, _ []string) error {
	if treeWatch {
		return runTreeWatch()
	}

	resp, err := conn.GetTree()
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

func runTreeWatch() error {
	fetch := func() (map[string]any, error) {
		resp, err := conn.GetTree()
		if err != nil {
			return nil, err
		}
		if resp.Error != "" {
			return nil, fmt.Errorf("%s", resp.Error)
		}
		return inspect.DecodeTree(resp.Data)
	}

	p := tea.NewProgram(inspect.New(fetch), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return wrapPrintedError(fmt.Errorf("run tree inspector: %w", err))
	}
	return nil
}
