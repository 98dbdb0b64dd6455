package formatter

import (
	"fmt"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
)

const baseTitle = "Interview Summary"

type Formatter interface {
	Format(plainText string) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct {
	pdfFontPath string
}

// NewFactory creates a formatter factory. pdfFontPath points to a TTF font
// with Unicode coverage and may be empty.
func NewFactory(pdfFontPath string) *Factory {
	return &Factory{pdfFontPath: pdfFontPath}
}

func (f *Factory) Create(format entity.ResultFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(f.pdfFontPath), nil
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", entity.ErrInvalidFormat, format)
	}
}

// ComposeReport renders the plain text body shared by every format:
// the setup, the summary and, when present, the transcript.
func ComposeReport(req *entity.ReportRequest) string {
	var b strings.Builder

	setup := entity.InterviewSetup{Role: req.Role, Mode: req.Mode, Domain: req.Domain}
	fmt.Fprintf(&b, "Role: %s\n", valueOrDash(req.Role))
	fmt.Fprintf(&b, "Mode: %s\n", valueOrDash(req.Mode))
	fmt.Fprintf(&b, "Domain: %s\n\n", setup.DomainOrDefault())

	b.WriteString(strings.TrimSpace(req.Summary))
	b.WriteString("\n")

	if len(req.ConversationHistory) > 0 {
		b.WriteString("\nTranscript\n\n")
		for _, turn := range req.ConversationHistory {
			fmt.Fprintf(&b, "%s: %s\n\n", speakerLabel(turn.Speaker), turn.Text)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func speakerLabel(s entity.Speaker) string {
	if s == entity.SpeakerBot {
		return "Interviewer"
	}
	return "Candidate"
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
