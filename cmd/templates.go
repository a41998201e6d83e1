package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/service"
	"github.com/mattsolo1/grove-hotkey/pkg/settings"
)

func NewTemplatesCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "Manage the configured path templates",
		Long: `Manage the path templates behind the hotkey commands. Each template
becomes one numbered command; at most 10 can be configured.

Examples:
  hk templates list
  hk templates add 'weekly/{mon:YYYY-MM-DD}.md'
  hk templates set 1 'journal/{YYYY}/{MM-DD}.md'
  hk templates rm 2`,
	}

	cmd.AddCommand(newTemplatesListCmd(svc))
	cmd.AddCommand(newTemplatesAddCmd(svc))
	cmd.AddCommand(newTemplatesSetCmd(svc))
	cmd.AddCommand(newTemplatesRmCmd(svc))

	return cmd
}

func newTemplatesListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the templates and how they resolve today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			files := s.Settings().Files
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates configured.")
				return nil
			}
			for i, f := range files {
				fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %s\n", i+1, f, s.Preview(f))
			}
			return nil
		},
	}
}

func newTemplatesAddCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add <template>",
		Short: "Append a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editTemplates(cmd, *svc, func(next *settings.Settings) error {
				return next.Add(args[0])
			})
		},
	}
}

func newTemplatesSetCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "set <n> <template>",
		Short: "Replace template n",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			return editTemplates(cmd, *svc, func(next *settings.Settings) error {
				return next.Set(slot, args[1])
			})
		},
	}
}

func newTemplatesRmCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n>",
		Aliases: []string{"remove"},
		Short:   "Remove template n",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(args[0])
			if err != nil {
				return err
			}
			return editTemplates(cmd, *svc, func(next *settings.Settings) error {
				removed := next.Template(slot)
				if err := next.Remove(slot); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %q\n", removed)
				return nil
			})
		},
	}
}

func editTemplates(cmd *cobra.Command, s *service.Service, edit func(*settings.Settings) error) error {
	next := s.Settings()
	if err := edit(&next); err != nil {
		return err
	}
	if err := s.UpdateSettings(next); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d template(s) configured\n", len(s.Settings().Files))
	return nil
}

// parseSlot turns a 1-based slot argument into an index.
func parseSlot(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid slot %q: expected a number from 1 to %d", arg, settings.MaxTemplates)
	}
	return n - 1, nil
}
