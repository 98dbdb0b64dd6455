package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/futig/interview-bot/internal/builder"
	"github.com/futig/interview-bot/internal/entity"
	"github.com/futig/interview-bot/internal/pkg/formatter"
	"github.com/futig/interview-bot/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	cmdSkip  = "/skip"
	cmdRetry = "/retry"
	cmdQuit  = "/quit"
)

type runOptions struct {
	role   string
	mode   string
	domain string
	local  bool
	report string
}

// interviewController is the part of the session controller the loop drives.
type interviewController interface {
	Start(ctx context.Context, s *session.Session, setup entity.InterviewSetup) (session.Snapshot, error)
	SubmitAnswer(ctx context.Context, s *session.Session, answer string) (session.Snapshot, error)
	Skip(ctx context.Context, s *session.Session) (session.Snapshot, error)
	Retry(ctx context.Context, s *session.Session) (session.Snapshot, error)
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive interview",
		Long: `Start an interview and answer the questions line by line.

Inside the interview:
  /skip   skip the current question
  /retry  ask for the current question again
  /quit   leave without a summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.role, "role", "", "target role, asked interactively when empty")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "interview mode: technical, behavioral or mixed")
	cmd.Flags().StringVar(&opts.domain, "domain", "", "subject domain (general when empty)")
	cmd.Flags().BoolVar(&opts.local, "local", false, "run the orchestrator in-process instead of calling the interview API")
	cmd.Flags().StringVar(&opts.report, "report", "", "write the summary to this file; the format follows the extension (.md, .pdf, .docx)")

	return cmd
}

func runRun(ctx context.Context, root *rootOptions, opts *runOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := builder.BuildRuntime(root.env, root.logLevel(), opts.local)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Logger.Sync() }()

	con := newConsole(os.Stdin, os.Stdout)

	setup, ok := con.collectSetup(entity.InterviewSetup{Role: opts.role, Mode: opts.mode, Domain: opts.domain})
	if !ok {
		return nil
	}

	snap, err := runInterview(ctx, con, rt.Controller, setup)
	if err != nil {
		return err
	}

	if snap.View != entity.ViewSummary || opts.report == "" {
		return nil
	}

	if err := writeReport(rt.Formatters, opts.report, snap); err != nil {
		return err
	}
	rt.Logger.Info("Report written", zap.String("path", opts.report))
	fmt.Fprintln(con.out, dimStyle.Render("Report saved to "+opts.report))

	return nil
}

// console reads user input line by line and renders session output.
type console struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{scanner: bufio.NewScanner(in), out: out}
}

// readLine prompts and returns the trimmed next line; false on end of input.
func (c *console) readLine(prompt string) (string, bool) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

// collectSetup asks for the fields left empty on the command line.
func (c *console) collectSetup(setup entity.InterviewSetup) (entity.InterviewSetup, bool) {
	interactive := setup.Role == "" || setup.Mode == ""

	for setup.Role == "" {
		role, ok := c.readLine("Role: ")
		if !ok {
			return setup, false
		}
		setup.Role = role
	}

	for setup.Mode == "" {
		mode, ok := c.readLine("Mode (technical, behavioral, mixed): ")
		if !ok {
			return setup, false
		}
		setup.Mode = mode
	}

	if interactive && setup.Domain == "" {
		domain, ok := c.readLine("Domain (empty for general): ")
		if !ok {
			return setup, false
		}
		setup.Domain = domain
	}

	return setup, true
}

// runInterview drives one session until the summary arrives, the user quits
// or input ends. Failed calls are reported and the loop keeps going.
func runInterview(ctx context.Context, con *console, ctrl interviewController, setup entity.InterviewSetup) (session.Snapshot, error) {
	s := session.NewSession()

	fmt.Fprintln(con.out, titleStyle.Render(fmt.Sprintf("Interview for %s (%s, domain: %s)",
		setup.Role, setup.Mode, setup.DomainOrDefault())))
	fmt.Fprintln(con.out, dimStyle.Render("Commands: /skip, /retry, /quit"))

	snap, err := ctrl.Start(ctx, s, setup)
	if err != nil {
		con.renderError(err)
	} else {
		con.renderQuestion(snap)
	}

	for {
		if ctx.Err() != nil {
			return s.Snapshot(), nil
		}

		line, ok := con.readLine("> ")
		if !ok {
			fmt.Fprintln(con.out)
			return s.Snapshot(), nil
		}

		switch line {
		case "":
			continue
		case cmdQuit:
			fmt.Fprintln(con.out, dimStyle.Render("Interview abandoned."))
			return s.Snapshot(), nil
		case cmdSkip:
			snap, err = ctrl.Skip(ctx, s)
		case cmdRetry:
			snap, err = ctrl.Retry(ctx, s)
		default:
			snap, err = ctrl.SubmitAnswer(ctx, s, line)
		}

		if err != nil {
			con.renderError(err)
			continue
		}

		if snap.View == entity.ViewSummary {
			con.renderSummary(snap)
			return snap, nil
		}

		if line != cmdSkip && line != cmdRetry && snap.Feedback != "" {
			fmt.Fprintln(con.out, feedbackStyle.Render(snap.Feedback))
		}
		con.renderQuestion(snap)
	}
}

func (c *console) renderQuestion(snap session.Snapshot) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, questionStyle.Render(fmt.Sprintf("Question %d of %d", snap.QuestionNumber, entity.MaxQuestions)))
	fmt.Fprintln(c.out, snap.CurrentQuestion)
	fmt.Fprintln(c.out)
}

func (c *console) renderSummary(snap session.Snapshot) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, titleStyle.Render("Interview Summary"))
	fmt.Fprintln(c.out, summaryStyle.Render(snap.Summary))
}

func (c *console) renderError(err error) {
	var msg string
	switch {
	case errors.Is(err, entity.ErrGenerationFailed):
		msg = "The interviewer could not respond. Send the same answer again or type /retry."
	case errors.Is(err, entity.ErrInvalidTransition):
		msg = "Wait for a question first. Type /retry to request it."
	case errors.Is(err, entity.ErrRequestInFlight):
		msg = "Still waiting for the previous response."
	default:
		msg = err.Error()
	}
	fmt.Fprintln(c.out, errorStyle.Render(msg))
}

func writeReport(formatters *formatter.Factory, path string, snap session.Snapshot) error {
	req := &entity.ReportRequest{
		Role:                snap.Setup.Role,
		Mode:                snap.Setup.Mode,
		Domain:              snap.Setup.Domain,
		Summary:             snap.Summary,
		ConversationHistory: snap.History,
	}
	return exportReport(formatters, path, req)
}

func exportReport(formatters *formatter.Factory, path string, req *entity.ReportRequest) error {
	f, err := formatters.Create(entity.FormatFromFilename(path))
	if err != nil {
		return err
	}

	body, err := f.Format(formatter.ComposeReport(req))
	if err != nil {
		return fmt.Errorf("format report: %w", err)
	}

	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
