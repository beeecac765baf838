package cli

import "github.com/spf13/cobra"

func newRemoveCmd(a *app) *cobra.Command {
	var repo string
	cmd := &cobra.Command{
		Use:     "remove <capability>",
		Aliases: []string{"rm"},
		Short:   "Uninstall a capability",
		Long: `Uninstall a capability. Only the files the capability owns are removed;
anything else in shared directories is left alone.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeCapabilities,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			res, err := m.Remove(cmd.Context(), args[0], repo)
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
