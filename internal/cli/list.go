package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/installer"
)

func newListCmd(a *app) *cobra.Command {
	var (
		repo     string
		jsonFlag bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available capabilities and whether they are installed",
		Long: `List every capability capkit can install. Global capabilities are checked
against the global root, project capabilities against --repo.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			statuses, err := m.List(cmd.Context(), repo)
			if err != nil {
				return err
			}
			if jsonFlag {
				return printListJSON(cmd, statuses)
			}
			return printListTable(cmd, statuses)
		},
	}
	repoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")
	return cmd
}

func statusLabel(s installer.Status) string {
	switch {
	case !s.Applicable:
		return "-"
	case s.Installed:
		return "installed"
	default:
		return "not installed"
	}
}

func printListTable(cmd *cobra.Command, statuses []installer.Status) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSCOPE\tSTATUS\tVERSION\tDESCRIPTION")
	for _, s := range statuses {
		version := s.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Name, s.Scope, statusLabel(s), version, s.Description)
	}
	return w.Flush()
}

func printListJSON(cmd *cobra.Command, statuses []installer.Status) error {
	data, err := json.MarshalIndent(statuses, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
