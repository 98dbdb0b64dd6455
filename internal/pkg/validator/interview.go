package validator

import (
	"fmt"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
)

// Validator checks request bodies before they reach the use case.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateInterviewRequest checks the fields shared by every action. The
// action itself is resolved by the handler so unknown actions keep their
// own error message.
func (v *Validator) ValidateInterviewRequest(req *entity.InterviewRequest) error {
	if req.QuestionNumber < 0 {
		return fmt.Errorf("%w: question_number must not be negative", entity.ErrInvalidParameter)
	}
	return validateHistory(req.ConversationHistory)
}

func (v *Validator) ValidateReportRequest(req *entity.ReportRequest, format entity.ResultFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("%w: %q", entity.ErrInvalidFormat, format)
	}
	if strings.TrimSpace(req.Summary) == "" {
		return fmt.Errorf("%w: summary", entity.ErrMissingField)
	}
	return validateHistory(req.ConversationHistory)
}

func validateHistory(history []entity.Turn) error {
	for i, turn := range history {
		if turn.Speaker != entity.SpeakerBot && turn.Speaker != entity.SpeakerUser {
			return fmt.Errorf("%w: conversation_history[%d].role %q", entity.ErrInvalidParameter, i, turn.Speaker)
		}
	}
	return nil
}
