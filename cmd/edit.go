package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/internal/tui/editor"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

// NewEditCmd creates the `hk edit` command.
func NewEditCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "edit",
		Aliases: []string{"tui"},
		Short:   "Edit templates interactively with a live preview",
		Long: `Launch an interactive editor for the path templates. Each row shows how
its template resolves today; a ✅ marks notes that already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			s := *svc

			model := editor.New(s)
			p := tea.NewProgram(model, tea.WithAltScreen())

			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			if m, ok := final.(editor.Model); ok && m.Err() != nil {
				return m.Err()
			}

			return nil
		},
	}
	return cmd
}
