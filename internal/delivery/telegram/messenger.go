package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
)

// Messenger adapts the bot API to the dispatcher's messenger contract.
// The underlying client does not take a context; sends are fire-and-
// await and errors bubble up for the dispatcher to handle per call.
type Messenger struct {
	bot *tgbotapi.BotAPI
}

func NewMessenger(bot *tgbotapi.BotAPI) *Messenger {
	return &Messenger{bot: bot}
}

func (m *Messenger) SendText(_ context.Context, chatID int64, text string) error {
	_, err := m.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (m *Messenger) SendHTML(_ context.Context, chatID int64, html string) error {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := m.bot.Send(msg)
	return err
}

func (m *Messenger) SendPhoto(_ context.Context, chatID int64, imageURL string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(imageURL))
	_, err := m.bot.Send(photo)
	return err
}

func (m *Messenger) SendQuizPoll(_ context.Context, chatID int64, q entities.Question) error {
	poll := tgbotapi.NewPoll(chatID, q.Text, q.Options[:]...)
	poll.Type = "quiz"
	poll.IsAnonymous = false
	poll.CorrectOptionID = int64(q.CorrectIndex())
	poll.Explanation = q.Explanation
	_, err := m.bot.Send(poll)
	return err
}
