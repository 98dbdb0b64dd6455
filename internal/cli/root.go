// Package cli defines the cobra commands of the terminal interview client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	env     string
	verbose bool
}

// NewRootCommand builds the interview-cli command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "interview-cli",
		Short: "Mock interview in the terminal",
		Long: `interview-cli runs a three question mock interview against the
interview API (or an in-process orchestrator with --local) and can export
the final summary as markdown, pdf or docx.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", "local", "configuration environment (.env.<env> is loaded when present)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "show service logs")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newReportCommand(opts))

	return cmd
}

// Execute runs the root command and prints the error, if any, to stderr.
func Execute() error {
	err := NewRootCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
	}
	return err
}

func (o *rootOptions) logLevel() string {
	if o.verbose {
		return "debug"
	}
	return "error"
}
