package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/locator"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

func NewOpenCmd(svc **service.Service) *cobra.Command {
	var template string

	cmd := &cobra.Command{
		Use:   "open <n|command-id>",
		Short: "Run a hotkey command: focus or open its note",
		Long: `Resolve a configured template against the current date and focus the
view already showing that note, or open it when none does.

Commands are numbered from 1, matching the labels shown by 'hk list'.

Examples:
  hk open 1                                # Today's journal
  hk open magic-file-hotkey:open-file-0    # Same, by command id
  hk open --template 'weekly/{mon:YYYY-MM-DD}.md'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if template != "" {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var (
				res locator.Result
				err error
			)
			switch {
			case template != "":
				res, err = s.OpenTemplate(template)
			default:
				if n, convErr := strconv.Atoi(args[0]); convErr == nil {
					res, err = s.Invoke(n - 1)
				} else {
					res, err = s.InvokeID(args[0])
				}
			}
			if err != nil {
				return err
			}

			verb := "Opened"
			if res.Action == locator.ActionFocused {
				verb = "Focused"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, res.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", "", "Open an ad-hoc template instead of a configured command")

	return cmd
}
