package entity

import "strings"

type ResultFormat string

const (
	FormatMarkdown ResultFormat = "markdown"
	FormatDOCX     ResultFormat = "docx"
	FormatPDF      ResultFormat = "pdf"
)

func (f ResultFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatDOCX, FormatPDF:
		return true
	default:
		return false
	}
}

// FormatFromFilename picks a format by file extension, markdown when unknown.
func FormatFromFilename(name string) ResultFormat {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".pdf"):
		return FormatPDF
	case strings.HasSuffix(lower, ".docx"):
		return FormatDOCX
	default:
		return FormatMarkdown
	}
}

// ReportRequest is the body of POST /api/interview/report.
type ReportRequest struct {
	Role                string `json:"role"`
	Mode                string `json:"mode"`
	Domain              string `json:"domain"`
	Summary             string `json:"summary"`
	ConversationHistory []Turn `json:"conversation_history,omitempty"`
}
