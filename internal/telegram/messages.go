package telegram

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lab-timesheet/internal/dialog"
)

// reply sends replies in order. A failed send is logged and the rest are
// still attempted.
func (b *Bot) reply(chatID int64, replies []dialog.Reply) {
	for _, r := range replies {
		b.sendOrLog(chatID, buildMessage(chatID, r))
	}
}

func (b *Bot) sendOrLog(chatID int64, c tgbotapi.Chattable) {
	if _, err := b.bot.Send(c); err != nil {
		log.Printf("❌ Failed to send to chat %d: %v", chatID, err)
	}
}

// buildMessage converts a dialog reply into a Telegram request: a document
// with the text as caption, or an HTML text message.
func buildMessage(chatID int64, r dialog.Reply) tgbotapi.Chattable {
	markup := buildKeyboard(r)

	if r.Document != nil {
		doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
			Name:  r.Document.Name,
			Bytes: r.Document.Content,
		})
		doc.Caption = r.Text
		doc.ParseMode = tgbotapi.ModeHTML
		if markup != nil {
			doc.ReplyMarkup = markup
		}
		return doc
	}

	msg := tgbotapi.NewMessage(chatID, r.Text)
	msg.ParseMode = tgbotapi.ModeHTML
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	return msg
}

func buildKeyboard(r dialog.Reply) interface{} {
	if len(r.Keyboard) == 0 {
		return nil
	}

	if r.Inline {
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(r.Keyboard))
		for _, row := range r.Keyboard {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, button := range row {
				data := button.Data
				if data == "" {
					data = button.Label
				}
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(button.Label, data))
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(r.Keyboard))
	for _, row := range r.Keyboard {
		buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, tgbotapi.NewKeyboardButton(button.Label))
		}
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}
