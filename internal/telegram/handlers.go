package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if !b.allowed(chatID) {
		log.Printf("⛔ Message from chat %d rejected", chatID)
		b.sendOrLog(chatID, tgbotapi.NewMessage(chatID, "⛔ Access denied"))
		return
	}

	b.handleMessage(ctx, update.Message)
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		return
	}

	b.reply(msg.Chat.ID, b.handler.Handle(ctx, msg.Chat.ID, text))
}

// handleCallbackQuery clears the pressed buttons so they can't be pressed
// twice and hands the data to the dialog.
func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	defer func(bot *tgbotapi.BotAPI, c tgbotapi.Chattable) {
		if _, err := bot.Request(c); err != nil {
			log.Printf("⚠️ Callback answer failed: %v", err)
		}
	}(b.bot, tgbotapi.NewCallback(callback.ID, ""))

	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	if !b.allowed(chatID) {
		return
	}

	log.Printf("Received callback: %s", callback.Data)
	b.clearInlineKeyboard(chatID, callback.Message.MessageID)
	b.reply(chatID, b.handler.HandleCallback(ctx, chatID, callback.Data))
}

func (b *Bot) clearInlineKeyboard(chatID int64, messageID int) {
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	if _, err := b.bot.Request(edit); err != nil {
		log.Printf("⚠️ Could not clear buttons of message %d: %v", messageID, err)
	}
}
