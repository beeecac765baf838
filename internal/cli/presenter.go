package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentx-labs/capkit/internal/branding"
)

// presenter writes user-facing lines. Results go to out, failures to errOut.
type presenter struct {
	out    io.Writer
	errOut io.Writer
}

func newPresenter(cmd *cobra.Command) *presenter {
	return &presenter{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

// applyColorMode honours NO_COLOR and CAPKIT_COLOR=always|never. Anything
// else leaves the color package to detect the terminal.
func applyColorMode() {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
		return
	}
	switch os.Getenv(branding.EnvVar("COLOR")) {
	case "always", "force":
		color.NoColor = false
	case "never", "off":
		color.NoColor = true
	}
}

func (p *presenter) Success(format string, args ...any) {
	color.New(color.FgGreen, color.Bold).Fprintf(p.out, "✓ "+format+"\n", args...)
}

func (p *presenter) Error(format string, args ...any) {
	color.New(color.FgRed, color.Bold).Fprintf(p.errOut, "[ERROR] "+format+"\n", args...)
}

func (p *presenter) Warning(format string, args ...any) {
	color.New(color.FgYellow, color.Bold).Fprintf(p.out, "⚠ "+format+"\n", args...)
}

func (p *presenter) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *presenter) Header(format string, args ...any) {
	color.New(color.Bold).Fprintf(p.out, format+"\n", args...)
}
