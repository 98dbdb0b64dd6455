package interview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/futig/interview-bot/internal/entity"
)

// SystemInstruction is shared by every action.
const SystemInstruction = "You are a professional and supportive interviewer bot."

func askQuestionPrompt(setup entity.InterviewSetup, questionNumber int) string {
	return fmt.Sprintf(
		"You are a professional interviewer for a %s role. The interview mode is %s. The domain is %s. "+
			"Please ask the next question (Question %d of %d).",
		setup.Role, setup.Mode, setup.DomainOrDefault(), questionNumber, entity.MaxQuestions,
	)
}

func evaluateAnswerPrompt(setup entity.InterviewSetup, question, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate the following answer from a candidate for a %s role (%s mode, domain: %s):\n\n",
		setup.Role, setup.Mode, setup.DomainOrDefault())
	fmt.Fprintf(&b, "User's question was: %s\n\n", question)
	fmt.Fprintf(&b, "User's answer: %s\n\n", answer)
	b.WriteString("Provide feedback, a score (out of 10), and then ask the next question. ")
	b.WriteString("Keep the feedback concise and constructive. ")
	fmt.Fprintf(&b, "Use headers '%s', '%s', and '%s'.", FeedbackMarker, ScoreMarker, NextQuestionMarker)
	return b.String()
}

// retryQuestionPrompt embeds previousQuestion only when the caller sent it.
func retryQuestionPrompt(setup entity.InterviewSetup, previousQuestion string) string {
	prompt := fmt.Sprintf(
		"You are a professional interviewer for a %s role. The interview mode is %s. The domain is %s. "+
			"The user has asked to retry the last question. Please re-ask your last question.",
		setup.Role, setup.Mode, setup.DomainOrDefault(),
	)
	if previousQuestion != "" {
		prompt += "\n\nYour last question was:\n" + previousQuestion
	}
	return prompt
}

func summaryPrompt(history []entity.Turn) (string, error) {
	transcript, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal conversation history: %w", err)
	}

	return "The interview is over. Based on this conversation history, provide a summary report with:\n" +
		"1. Areas of Strength\n" +
		"2. Areas for Improvement\n" +
		"3. Suggested Resources\n\n" +
		"Conversation:\n" + string(transcript), nil
}
