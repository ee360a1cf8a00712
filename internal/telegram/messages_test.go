package telegram

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-timesheet/internal/dialog"
)

func TestBuildMessageText(t *testing.T) {
	c := buildMessage(42, dialog.Reply{Text: "<b>hi</b>"})

	msg, ok := c.(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "<b>hi</b>", msg.Text)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Nil(t, msg.ReplyMarkup)
}

func TestBuildMessageReplyKeyboard(t *testing.T) {
	c := buildMessage(42, dialog.Reply{
		Text:     "menu",
		Keyboard: [][]dialog.Button{{{Label: dialog.LabelLog}, {Label: dialog.LabelWeek}}},
	})

	msg := c.(tgbotapi.MessageConfig)
	keyboard, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, keyboard.ResizeKeyboard)
	require.Len(t, keyboard.Keyboard, 1)
	assert.Equal(t, dialog.LabelWeek, keyboard.Keyboard[0][1].Text)
}

func TestBuildMessageInlineKeyboard(t *testing.T) {
	c := buildMessage(42, dialog.Reply{
		Text:     "pick",
		Inline:   true,
		Keyboard: [][]dialog.Button{{{Label: "1. January 05, 2026", Data: "1"}}, {{Label: "Cancel"}}},
	})

	msg := c.(tgbotapi.MessageConfig)
	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, markup.InlineKeyboard, 2)
	require.NotNil(t, markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "1", *markup.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "Cancel", *markup.InlineKeyboard[1][0].CallbackData)
}

func TestBuildMessageDocument(t *testing.T) {
	c := buildMessage(42, dialog.Reply{
		Text:     "timesheet",
		Document: &dialog.Document{Name: "Timesheet.pdf", Content: []byte("%PDF")},
	})

	doc, ok := c.(tgbotapi.DocumentConfig)
	require.True(t, ok)
	assert.Equal(t, "timesheet", doc.Caption)
	file, ok := doc.File.(tgbotapi.FileBytes)
	require.True(t, ok)
	assert.Equal(t, "Timesheet.pdf", file.Name)
	assert.Equal(t, []byte("%PDF"), file.Bytes)
}
