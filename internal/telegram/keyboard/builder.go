package keyboard

import (
	"github.com/futig/interview-bot/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Modes offered as buttons. Any typed mode is accepted as well.
var Modes = []string{"technical", "behavioral", "mixed"}

// Builder creates inline keyboards
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) StartKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 Start interview", EncodeCallback(ActionAct, ActStart)),
		),
	)
}

func (b *Builder) ModeKeyboard() tgbotapi.InlineKeyboardMarkup {
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(Modes))
	for _, mode := range Modes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(mode, EncodeCallback(ActionMode, mode)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// InterviewKeyboard is attached to every question.
func (b *Builder) InterviewKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⏭ Skip", EncodeCallback(ActionAct, ActSkip)),
			tgbotapi.NewInlineKeyboardButtonData("🔁 Retry", EncodeCallback(ActionAct, ActRetry)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 New interview", EncodeCallback(ActionAct, ActNew)),
		),
	)
}

// SummaryKeyboard offers report downloads and a fresh start.
func (b *Builder) SummaryKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback(ActionReport, string(entity.FormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback(ActionReport, string(entity.FormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📘 DOCX", EncodeCallback(ActionReport, string(entity.FormatDOCX))),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🆕 New interview", EncodeCallback(ActionAct, ActNew)),
		),
	)
}
