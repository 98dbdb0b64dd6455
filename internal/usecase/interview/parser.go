package interview

import (
	"strings"

	"github.com/futig/interview-bot/internal/entity"
)

const (
	FeedbackMarker     = "**Feedback:**"
	ScoreMarker        = "**Score:**"
	NextQuestionMarker = "**Next Question:**"

	// EndOfInterviewNotice is returned as the question when the model
	// response carries no next-question section.
	EndOfInterviewNotice = "End of interview. Please click 'End Interview & Get Summary'."
)

// ParseEvaluation splits raw model output on the first NextQuestionMarker.
// Malformed output is not an error: without the marker the whole text is
// feedback and the question falls back to EndOfInterviewNotice.
func ParseEvaluation(raw string) *entity.EvaluationResponse {
	feedback, question, found := strings.Cut(raw, NextQuestionMarker)
	if !found {
		return &entity.EvaluationResponse{
			Feedback: strings.TrimSpace(raw),
			Question: EndOfInterviewNotice,
		}
	}

	return &entity.EvaluationResponse{
		Feedback: strings.TrimSpace(feedback),
		Question: strings.TrimSpace(question),
	}
}

// AnsweredPair returns the answer in the last turn and the question it
// answers: the nearest bot turn before it. The last turn must be a user turn.
func AnsweredPair(history []entity.Turn) (question, answer string, err error) {
	if len(history) < 2 {
		return "", "", entity.ErrInvalidHistory
	}

	last := history[len(history)-1]
	if last.Speaker != entity.SpeakerUser {
		return "", "", entity.ErrInvalidHistory
	}

	for i := len(history) - 2; i >= 0; i-- {
		if history[i].Speaker == entity.SpeakerBot {
			return history[i].Text, last.Text, nil
		}
	}

	return "", "", entity.ErrInvalidHistory
}
