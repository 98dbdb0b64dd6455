package render

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"unicode/utf8"

	"github.com/futig/interview-bot/internal/entity"
)

// MaxMessageLength is the Telegram limit for one text message.
const MaxMessageLength = 4096

const (
	MsgWelcome = `👋 Hi! I am a mock interviewer.

I will ask you a few questions for the role you are preparing for, give feedback on every answer and finish with a summary.`

	MsgAskRole   = `🧑‍💼 Which role are you interviewing for? (for example: Backend Engineer)`
	MsgAskMode   = `🎯 Pick the interview mode or type your own:`
	MsgAskDomain = `🏷 Which domain should the questions focus on? Send "-" for general.`

	MsgGenerating  = `⏳ Preparing your question...`
	MsgEvaluating  = `⏳ Evaluating your answer...`
	MsgSummarizing = `⏳ That was the last question. Writing your summary...`

	MsgQuestion = `❓ Question %d of %d

%s`

	MsgFeedback = `📝 Feedback

%s`

	MsgSummary = `✅ Interview finished!

%s

Download the report or start a new interview:`

	MsgInterviewOver = `The interview is over. Download the report or start a new one with the buttons below.`
	MsgUseStart      = `Send /start to begin a new interview.`
	MsgCancelled     = `👋 Interview cancelled. Send /start to begin again.`

	MsgHelp = `🤖 Commands:

/start - start a new interview
/help - show this help
/cancel - drop the current interview

How it works:
1. Tell me the role, the mode and the domain
2. Answer the questions in plain text
3. Use Skip to move on or Retry to get the question again
4. After the last answer you get a summary and can download it as Markdown, PDF or DOCX`

	MsgRateLimited = `⚠️ Too many requests. Please wait a little.`

	ErrGeneric        = `❌ Something went wrong. Try again or send /start`
	ErrGeneration     = `❌ The interviewer could not answer right now. Try again.`
	ErrBusy           = `⏳ Still working on your previous request. Please wait.`
	ErrWrongStep      = `⚠️ That action is not available right now.`
	ErrTimeout        = `❌ The request took too long. Try again.`
	ErrNetworkIssue   = `❌ Connection problem. Try again a bit later.`
	ErrSessionExpired = `❌ Your interview has expired. Send /start to begin a new one.`
	ErrReport         = `❌ Could not build the report.`
)

func RenderQuestion(number int, question string) string {
	return fmt.Sprintf(MsgQuestion, number, entity.MaxQuestions, question)
}

func RenderFeedback(feedback string) string {
	return fmt.Sprintf(MsgFeedback, feedback)
}

func RenderSummary(summary string) string {
	return fmt.Sprintf(MsgSummary, summary)
}

// RenderSetup echoes the captured interview parameters.
func RenderSetup(setup entity.InterviewSetup) string {
	return fmt.Sprintf("🚀 Starting a %s interview for %s (domain: %s).",
		setup.Mode, setup.Role, setup.DomainOrDefault())
}

// SplitMessage cuts text into chunks of at most limit bytes, preferring
// paragraph and line boundaries and never splitting a UTF-8 sequence.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n\n")
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], "\n")
		}
		if cut <= 0 {
			cut = strings.LastIndex(text[:limit], " ")
		}
		if cut <= 0 {
			cut = limit
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			if cut == 0 {
				_, cut = utf8.DecodeRuneInString(text)
			}
		}
		chunks = append(chunks, strings.TrimRight(text[:cut], "\n "))
		text = strings.TrimLeft(text[cut:], "\n ")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

// ClassifyError maps an error to a user-facing message
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ErrGeneric
	case errors.Is(err, entity.ErrRequestInFlight):
		return ErrBusy
	case errors.Is(err, entity.ErrInvalidTransition):
		return ErrWrongStep
	case errors.Is(err, entity.ErrSessionNotFound):
		return ErrSessionExpired
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case errors.Is(err, entity.ErrGenerationFailed):
		return ErrGeneration
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkIssue
	}

	return ErrGeneric
}
