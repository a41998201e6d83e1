package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

func NewPaneCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "pane [on|off]",
		Short:     "Show or set whether commands reuse an open view",
		ValidArgs: []string{"on", "off"},
		Long: `With the option on, a command focuses a view that already shows its note.
With it off, every command opens a new view.

Examples:
  hk pane       # Print the current setting
  hk pane off   # Always open a new view`,
		Args: cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if len(args) == 1 {
				if err := s.SetUseExistingPane(args[0] == "on"); err != nil {
					return err
				}
			}

			state := "off"
			if s.Settings().UseExistingPane {
				state = "on"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Use existing pane: %s\n", state)
			return nil
		},
	}
	return cmd
}
