package telegram

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"lab-timesheet/internal/dialog"
)

// Handler turns one inbound chat message or button press into replies.
type Handler interface {
	Handle(ctx context.Context, chatID int64, text string) []dialog.Reply
	HandleCallback(ctx context.Context, chatID int64, data string) []dialog.Reply
}

type Bot struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	handler Handler
}

// NewBot connects to Telegram. A non-zero chatID restricts the bot to that
// chat.
func NewBot(token string, chatID int64, handler Handler) (*Bot, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	log.Printf("🤖 Bot initialized: @%s", botAPI.Self.UserName)
	return &Bot{
		bot:     botAPI,
		chatID:  chatID,
		handler: handler,
	}, nil
}

func (b *Bot) GetUsername() string {
	return b.bot.Self.UserName
}

// SendText delivers a plain HTML message outside of a conversation turn,
// such as a reminder.
func (b *Bot) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.bot.Send(msg)
	return err
}

// Start polls for updates until ctx is cancelled. Updates are handled one
// at a time.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.bot.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) allowed(chatID int64) bool {
	return b.chatID == 0 || chatID == b.chatID
}
