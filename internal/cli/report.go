package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/futig/interview-bot/internal/config"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	in     string
	out    string
	role   string
	mode   string
	domain string
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Convert a saved summary into a report file",
		Example: `  interview-cli report --in summary.txt --out summary.pdf --role "Backend Engineer" --mode technical`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(root.env)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := runReport(formatter.NewFactory(cfg.ReportCfg.PDFFontPath), opts); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Report saved to "+opts.out))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.in, "in", "", "summary text file (required)")
	cmd.Flags().StringVar(&opts.out, "out", "", "output file; the format follows the extension (required)")
	cmd.Flags().StringVar(&opts.role, "role", "", "role shown in the report header")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "mode shown in the report header")
	cmd.Flags().StringVar(&opts.domain, "domain", "", "domain shown in the report header")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runReport(formatters *formatter.Factory, opts *reportOptions) error {
	data, err := os.ReadFile(opts.in)
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}

	summary := strings.TrimSpace(string(data))
	if summary == "" {
		return errors.New("summary file is empty")
	}

	return exportReport(formatters, opts.out, &entity.ReportRequest{
		Role:    opts.role,
		Mode:    opts.mode,
		Domain:  opts.domain,
		Summary: summary,
	})
}
