package entity

// MaxQuestions is the number of answered questions after which the next
// submission produces the summary instead of another question.
const MaxQuestions = 3

// DefaultDomain replaces an empty domain in prompts.
const DefaultDomain = "general"

type Speaker string

const (
	SpeakerBot  Speaker = "bot"
	SpeakerUser Speaker = "user"
)

// SkipAnswer is the synthetic answer recorded when a question is skipped.
const SkipAnswer = "skip"

// Turn is one utterance of the conversation. The wire key for the speaker
// is "role" to stay compatible with existing browser clients.
type Turn struct {
	Speaker Speaker `json:"role"`
	Text    string  `json:"text"`
}

func BotTurn(text string) Turn {
	return Turn{Speaker: SpeakerBot, Text: text}
}

func UserTurn(text string) Turn {
	return Turn{Speaker: SpeakerUser, Text: text}
}

type Action string

const (
	ActionAskQuestion     Action = "ask_question"
	ActionEvaluateAnswer  Action = "evaluate_answer"
	ActionRetryQuestion   Action = "retry_question"
	ActionGenerateSummary Action = "generate_summary"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionAskQuestion, ActionEvaluateAnswer, ActionRetryQuestion, ActionGenerateSummary:
		return true
	default:
		return false
	}
}

// InterviewSetup is the role/mode/domain triple captured when an interview starts.
type InterviewSetup struct {
	Role   string `json:"role"`
	Mode   string `json:"mode"`
	Domain string `json:"domain"`
}

// DomainOrDefault returns the domain, or DefaultDomain when it is blank.
func (s InterviewSetup) DomainOrDefault() string {
	if s.Domain == "" {
		return DefaultDomain
	}
	return s.Domain
}

// InterviewRequest is the envelope accepted by POST /api/interview.
// Which fields are meaningful depends on Action.
type InterviewRequest struct {
	Action              Action `json:"action"`
	Role                string `json:"role,omitempty"`
	Mode                string `json:"mode,omitempty"`
	Domain              string `json:"domain,omitempty"`
	QuestionNumber      int    `json:"question_number,omitempty"`
	ConversationHistory []Turn `json:"conversation_history,omitempty"`
	PreviousQuestion    string `json:"previous_question,omitempty"`
}

func (r *InterviewRequest) Setup() InterviewSetup {
	return InterviewSetup{Role: r.Role, Mode: r.Mode, Domain: r.Domain}
}

type AskQuestionRequest struct {
	InterviewSetup
	QuestionNumber int
}

func (r *AskQuestionRequest) Envelope() *InterviewRequest {
	return &InterviewRequest{
		Action:         ActionAskQuestion,
		Role:           r.Role,
		Mode:           r.Mode,
		Domain:         r.Domain,
		QuestionNumber: r.QuestionNumber,
	}
}

type EvaluateAnswerRequest struct {
	InterviewSetup
	ConversationHistory []Turn
}

func (r *EvaluateAnswerRequest) Envelope() *InterviewRequest {
	return &InterviewRequest{
		Action:              ActionEvaluateAnswer,
		Role:                r.Role,
		Mode:                r.Mode,
		Domain:              r.Domain,
		ConversationHistory: r.ConversationHistory,
	}
}

// RetryQuestionRequest asks for the current question again. PreviousQuestion
// is only set in strict retry mode; otherwise the model gets no transcript.
type RetryQuestionRequest struct {
	InterviewSetup
	QuestionNumber   int
	PreviousQuestion string
}

func (r *RetryQuestionRequest) Envelope() *InterviewRequest {
	return &InterviewRequest{
		Action:           ActionRetryQuestion,
		Role:             r.Role,
		Mode:             r.Mode,
		Domain:           r.Domain,
		QuestionNumber:   r.QuestionNumber,
		PreviousQuestion: r.PreviousQuestion,
	}
}

type GenerateSummaryRequest struct {
	ConversationHistory []Turn
}

func (r *GenerateSummaryRequest) Envelope() *InterviewRequest {
	return &InterviewRequest{
		Action:              ActionGenerateSummary,
		ConversationHistory: r.ConversationHistory,
	}
}

type QuestionResponse struct {
	Question string `json:"question"`
}

type EvaluationResponse struct {
	Feedback string `json:"feedback"`
	Question string `json:"question"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
