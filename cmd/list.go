package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-hotkey/pkg/commands"
	"github.com/mattsolo1/grove-hotkey/pkg/service"
)

// commandInfo is the JSON shape of a listed command.
type commandInfo struct {
	Slot     int    `json:"slot"`
	ID       string `json:"id"`
	Label    string `json:"label"`
	Template string `json:"template"`
	Resolved string `json:"resolved"`
	Exists   bool   `json:"exists"`
}

func NewListCmd(svc **service.Service) *cobra.Command {
	var listJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the registered hotkey commands",
		Aliases: []string{"ls"},
		Long: `List the commands registered from the configured templates, with each
template resolved for today.

Examples:
  hk list          # Table of commands
  hk list --json   # Machine-readable output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			infos := []commandInfo{}
			for _, c := range s.Commands() {
				p := s.Preview(c.Template)
				infos = append(infos, commandInfo{
					Slot:     c.Slot + 1,
					ID:       c.ID,
					Label:    c.Label,
					Template: c.Template,
					Resolved: p.Resolved,
					Exists:   p.Exists,
				})
			}

			if listJSON {
				return outputJSON(cmd.OutOrStdout(), infos)
			}
			if len(infos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No commands registered. Add one with 'hk templates add'.")
				return nil
			}
			printCommandsTable(cmd.OutOrStdout(), infos)
			return nil
		},
	}

	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func printCommandsTable(out io.Writer, infos []commandInfo) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "#\tTEMPLATE\tRESOLVED\tEXISTS")
	fmt.Fprintln(w, "--\t-----------------------------\t-----------------------------\t------")

	for _, info := range infos {
		icon := ""
		if info.Slot-1 < len(commands.Icons) {
			icon = commands.Icons[info.Slot-1]
		}
		exists := ""
		if info.Exists {
			exists = "✅"
		}
		fmt.Fprintf(w, "%d %s\t%s\t%s\t%s\n", info.Slot, icon, info.Template, info.Resolved, exists)
	}

	w.Flush()
}

func outputJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
