package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/branding"
	"github.com/agentx-labs/capkit/internal/config"
	"github.com/agentx-labs/capkit/internal/installer"
	"github.com/agentx-labs/capkit/internal/logger"
)

// app carries build info and manager wiring into the command tree.
type app struct {
	version string
	commit  string
	date    string

	// managerOptions are appended after the config-derived options, so
	// tests can swap the registry, bundle or global root.
	managerOptions []installer.Option

	logLevel  string
	logFormat string
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	a := &app{version: version, commit: commit, date: date}
	cmd := newRootCmd(a)
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		p := newPresenter(cmd)
		p.Error("%v", err)
	}
	return err
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` installs optional capabilities (skills, reminders, reviews and
workflows) into a project and keeps track of what is installed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text or json)")

	root.AddCommand(
		newAddCmd(a),
		newRemoveCmd(a),
		newListCmd(a),
		newStatusCmd(a),
		newVerifyCmd(a),
		newConfigCmd(),
		newVersionCmd(a),
	)
	return root
}

// setup loads config, configures logging and tags the context with an
// operation id used to correlate log lines.
func (a *app) setup(cmd *cobra.Command) error {
	config.Load()
	applyColorMode()

	logger.SetLogOutput(cmd.ErrOrStderr())
	level := a.logLevel
	if level == "" {
		level = config.Get(config.KeyLogLevel)
	}
	if err := logger.SetLogLevel(level); err != nil {
		return err
	}
	format := a.logFormat
	if format == "" {
		format = config.Get(config.KeyLogFormat)
	}
	logger.SetLogFormat(format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entry := logger.G(ctx).WithFields(logrus.Fields{
		"op":      uuid.NewString(),
		"command": cmd.Name(),
	})
	cmd.SetContext(logger.WithLogger(ctx, entry))
	return nil
}

func (a *app) manager() (*installer.Manager, error) {
	globalRoot, err := config.GlobalRoot()
	if err != nil {
		return nil, fmt.Errorf("resolving global root: %w", err)
	}
	opts := []installer.Option{
		installer.WithGlobalRoot(globalRoot),
		installer.WithVersion(a.version),
	}
	opts = append(opts, a.managerOptions...)
	return installer.New(opts...)
}

// completeCapabilities offers registered capability names for the first
// positional argument.
func (a *app) completeCapabilities(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := a.manager()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return m.Registry().Names(), cobra.ShellCompDirectiveNoFileComp
}

// repoFlag registers --repo with the current directory as default.
func repoFlag(cmd *cobra.Command, target *string) {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}
	cmd.Flags().StringVar(target, "repo", wd, "Repository root for project-scoped capabilities")
}
