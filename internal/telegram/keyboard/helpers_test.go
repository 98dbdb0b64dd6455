package keyboard

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func callbackData(rows [][]tgbotapi.InlineKeyboardButton) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		var datas []string
		for _, btn := range row {
			if btn.CallbackData != nil {
				datas = append(datas, *btn.CallbackData)
			}
		}
		out = append(out, datas)
	}
	return out
}
