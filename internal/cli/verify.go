package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every capability's bundled content is present and well formed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			p := newPresenter(cmd)

			problems := m.Verify(cmd.Context())
			for _, pr := range problems {
				if pr.Path != "" {
					p.Error("%s: %s: %s", pr.Capability, pr.Path, pr.Message)
				} else {
					p.Error("%s: %s", pr.Capability, pr.Message)
				}
			}
			if len(problems) > 0 {
				return fmt.Errorf("bundle verification found %d problem(s)", len(problems))
			}
			p.Success("%d capabilities verified (%s bundle)", len(m.Registry().List()), m.Resolver().Mode())
			return nil
		},
	}
}
