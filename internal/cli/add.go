package cli

import (
	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/capability"
)

func newAddCmd(a *app) *cobra.Command {
	var repo string
	cmd := &cobra.Command{
		Use:   "add <capability>",
		Short: "Install a capability",
		Long: `Install a capability into the repository (project scope) or into the
global root (global scope). Re-running add refreshes the installed files.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeCapabilities,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			res, err := m.Add(cmd.Context(), args[0], repo)
			if err != nil {
				return err
			}
			printResult(cmd, res)
			return nil
		},
	}
	repoFlag(cmd, &repo)
	return cmd
}

// printResult reports a lifecycle outcome. A failed result is printed as an
// error line but is not a command error.
func printResult(cmd *cobra.Command, res capability.Result) {
	p := newPresenter(cmd)
	if res.Success {
		p.Success("%s", res.Message)
		return
	}
	p.Error("%s", res.Message)
}
