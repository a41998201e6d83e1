package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/service"
	"github.com/mattsolo1/grove-hotkey/pkg/session"
)

var errNoSession = errors.New("no view session is available")

func NewViewsCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "Inspect and manage the open views",
		Long: `The view session records which notes are open and which one is active.
Hotkey commands focus views listed here before opening new ones.

Examples:
  hk views list
  hk views active
  hk views close <id>
  hk views close --all
  hk views empty`,
	}

	cmd.AddCommand(newViewsListCmd(svc))
	cmd.AddCommand(newViewsActiveCmd(svc))
	cmd.AddCommand(newViewsCloseCmd(svc))
	cmd.AddCommand(newViewsEmptyCmd(svc))

	return cmd
}

func newViewsListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open views in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionOf(*svc)
			if err != nil {
				return err
			}
			views, err := sess.List()
			if err != nil {
				return err
			}
			if listJSON {
				return outputJSON(cmd.OutOrStdout(), views)
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No open views.")
				return nil
			}
			printViewsTable(cmd.OutOrStdout(), views)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func newViewsActiveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Print the active view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionOf(*svc)
			if err != nil {
				return err
			}
			v, err := sess.Active()
			if err != nil {
				return err
			}
			if v == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active view.")
				return nil
			}
			path, ok := v.DisplayedFilePath()
			if !ok {
				path = "(empty)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", v.ID, path)
			return nil
		},
	}
}

func newViewsCloseCmd(svc **service.Service) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "close [id]",
		Short: "Close a view, or every view with --all",
		Args: func(cmd *cobra.Command, args []string) error {
			if all {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionOf(*svc)
			if err != nil {
				return err
			}
			if all {
				return sess.CloseAll()
			}
			return sess.CloseView(args[0])
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Close every view")

	return cmd
}

func newViewsEmptyCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "empty",
		Short: "Open a view that shows no file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := sessionOf(*svc)
			if err != nil {
				return err
			}
			v, err := sess.OpenEmpty()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.ID)
			return nil
		},
	}
}

func sessionOf(s *service.Service) (*session.Session, error) {
	if s == nil || s.Session == nil {
		return nil, errNoSession
	}
	return s.Session, nil
}

func printViewsTable(out io.Writer, views []*session.View) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "\tID\tKIND\tPATH\tFOCUSED")
	fmt.Fprintln(w, "\t------------------------------------\t--------\t-----------------------------\t----------------")

	for _, v := range views {
		marker := " "
		if v.Active {
			marker = "▶"
		}
		path, _ := v.DisplayedFilePath()
		focused := ""
		if !v.FocusedAt.IsZero() {
			focused = v.FocusedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, v.ID, v.Kind, path, focused)
	}

	w.Flush()
}
