package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

func NewPreviewCmd(svc **service.Service) *cobra.Command {
	var (
		at      string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "preview <template>...",
		Short: "Show how templates resolve without opening anything",
		Long: `Resolve one or more templates and print the resulting paths. A ✅ marks
paths that already link to a note in the vault.

Examples:
  hk preview 'journal/{YYYY-MM-DD}.md'
  hk preview '{mon:YYYY-[W]WW}.md' --at 2024-03-07`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			preview := s.Preview
			if at != "" {
				now, err := time.ParseInLocation("2006-01-02", at, time.Local)
				if err != nil {
					return fmt.Errorf("parse --at: %w", err)
				}
				preview = func(tmpl string) service.Preview {
					return service.PreviewWith(s.Vault, tmpl, now)
				}
			}

			previews := make([]service.Preview, 0, len(args))
			for _, tmpl := range args {
				previews = append(previews, preview(tmpl))
			}

			if jsonOut {
				return outputJSON(cmd.OutOrStdout(), previews)
			}
			for _, p := range previews {
				fmt.Fprintln(cmd.OutOrStdout(), p.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Resolve as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	return cmd
}
