package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/capability"
)

func newStatusCmd(a *app) *cobra.Command {
	var (
		repo     string
		jsonFlag bool
	)
	cmd := &cobra.Command{
		Use:               "status <capability>",
		Short:             "Compare an installed capability with the bundled version",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completeCapabilities,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.manager()
			if err != nil {
				return err
			}
			report, err := m.Status(cmd.Context(), args[0], repo)
			if err != nil {
				return err
			}
			if jsonFlag {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			printReport(cmd, report)
			return nil
		},
	}
	repoFlag(cmd, &repo)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Output in JSON format")
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func printReport(cmd *cobra.Command, r *capability.DriftReport) {
	p := newPresenter(cmd)

	p.Header("%s (%s scope) in %s", r.Capability, r.Scope, r.Root)
	p.Info("  installed: %s", yesNo(r.Installed))
	if r.Recorded {
		p.Info("  recorded:  yes (version %s)", r.RecordedVersion)
	} else {
		p.Info("  recorded:  no")
	}

	if r.Error != "" {
		p.Error("%s", r.Error)
		return
	}
	if r.Partial {
		p.Warning("partial install: files and state disagree; run add again to repair")
	}
	if r.VersionDrift {
		p.Warning("installed version %s is older than %s", r.RecordedVersion, r.CurrentVersion)
	}

	for _, f := range r.Files {
		if f.State != capability.FileOK {
			p.Info("  %-8s %s", f.State, f.Path)
		}
	}

	switch {
	case r.Clean():
		p.Success("%s matches the bundle (%d files)", r.Capability, len(r.Files))
	case !r.Installed && !r.Partial:
		p.Info("%s is not installed", r.Capability)
	default:
		c := r.Counts()
		p.Warning("%d modified, %d missing, %d extra", c[capability.FileModified], c[capability.FileMissing], c[capability.FileExtra])
	}
}
