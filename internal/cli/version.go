package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/branding"
	"github.com/agentx-labs/capkit/internal/bundle"
)

func newVersionCmd(a *app) *cobra.Command {
	var (
		versionShort bool
		versionJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if versionShort {
				fmt.Fprintln(out, a.version)
				return nil
			}

			resolver := bundle.Detect()
			mode := resolver.Mode().String()
			var checkout string
			if d, ok := resolver.(*bundle.DirResolver); ok {
				checkout = d.Checkout()
			}

			if versionJSON {
				info := map[string]string{
					"version": a.version,
					"commit":  a.commit,
					"date":    a.date,
					"bundle":  mode,
				}
				if checkout != "" {
					info["checkout"] = checkout
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshaling version info: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			if checkout != "" {
				mode += " at " + checkout
			}
			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s, bundle: %s)\n",
				branding.CLIName(), a.version, a.commit, a.date, mode)
			return nil
		},
	}
	cmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	cmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	return cmd
}
