package telegram

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/itzfew/eduhub-bot/internal/domain/entities"
	"github.com/itzfew/eduhub-bot/internal/infra/cashfree"
	"github.com/itzfew/eduhub-bot/internal/infra/postgres/repository"
	"github.com/itzfew/eduhub-bot/internal/service"
)

const payAmountINR = 100

// QuizDispatcher handles one parsed quiz command end to end.
type QuizDispatcher interface {
	Dispatch(ctx context.Context, chatID int64, query entities.QuizQuery)
}

// ContentKeys resolves short lookup keys to channel message ids.
type ContentKeys interface {
	LookupMessageID(ctx context.Context, batch, key string) (int, error)
}

// PaymentLinker creates payment links for the /pay command.
type PaymentLinker interface {
	CreatePaymentLink(ctx context.Context, orderID string, amount float64, customer cashfree.CustomerDetails) (string, error)
}

type Handler struct {
	bot         *tgbotapi.BotAPI
	logger      *zap.Logger
	dispatcher  QuizDispatcher
	contentKeys ContentKeys
	payments    PaymentLinker // nil when the gateway is not configured
	channelID   int64
	batch       string
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	dispatcher QuizDispatcher,
	contentKeys ContentKeys,
	payments PaymentLinker,
	channelID int64,
	batch string,
) *Handler {
	return &Handler{
		bot:         bot,
		logger:      logger,
		dispatcher:  dispatcher,
		contentKeys: contentKeys,
		payments:    payments,
		channelID:   channelID,
		batch:       batch,
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		h.logger.Debug("update without message")
		return
	}

	msg := update.Message
	h.logger.Debug("update received",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.String("text", msg.Text),
	)

	// Quiz commands carry free-text arguments the generic command
	// splitter mangles, so they are parsed from the raw text first.
	if query, ok := service.ParseQuizCommand(msg.Text); ok {
		h.dispatcher.Dispatch(ctx, msg.Chat.ID, query)
		return
	}

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			h.handleGreeting(msg)
		case "about":
			h.handleAbout(msg.Chat.ID)
		case "pay":
			h.handlePay(ctx, msg)
		case "kick":
			h.handleKick(msg)
		case "ban":
			h.handleBan(msg)
		case "mute":
			h.handleMute(msg)
		case "unmute":
			h.handleUnmute(msg)
		case "promote":
			h.handlePromote(msg)
		case "setdescription":
			h.handleSetDescription(msg)
		default:
			// Every other command is treated as a content lookup key,
			// e.g. /video forwards the stored channel message.
			h.handleContentKey(ctx, msg)
		}
		return
	}

	if strings.TrimSpace(msg.Text) != "" {
		h.handleGreeting(msg)
	}
}

func (h *Handler) handleAbout(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, msgAbout)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	h.send(msg)
}

// handleContentKey forwards the channel message registered for the
// command key, if any.
func (h *Handler) handleContentKey(ctx context.Context, msg *tgbotapi.Message) {
	key := strings.ToLower(msg.Command())

	messageID, err := h.contentKeys.LookupMessageID(ctx, h.batch, key)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			h.logger.Error("failed to look up content key",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgKeyNotFound(key)))
		return
	}

	forward := tgbotapi.NewForward(msg.Chat.ID, h.channelID, messageID)
	if _, err := h.bot.Send(forward); err != nil {
		h.logger.Error("failed to forward content message",
			zap.String("key", key),
			zap.Int("message_id", messageID),
			zap.Error(err),
		)
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgForwardFailed(key)))
	}
}

func (h *Handler) handlePay(ctx context.Context, msg *tgbotapi.Message) {
	if h.payments == nil {
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgPayDisabled))
		return
	}

	from := msg.From
	orderID := fmt.Sprintf("order_%d_%d", time.Now().Unix(), from.ID)
	email := "user@example.com"
	if from.UserName != "" {
		email = from.UserName + "@example.com"
	}

	link, err := h.payments.CreatePaymentLink(ctx, orderID, payAmountINR, cashfree.CustomerDetails{
		CustomerID:    fmt.Sprintf("cust_%d", from.ID),
		CustomerEmail: email,
		CustomerPhone: "9999999999",
	})
	if err != nil {
		h.logger.Error("failed to create payment link",
			zap.Int64("user_id", from.ID),
			zap.String("order_id", orderID),
			zap.Error(err),
		)
		h.send(tgbotapi.NewMessage(msg.Chat.ID, msgPayUnavailable))
		return
	}

	h.send(tgbotapi.NewMessage(msg.Chat.ID, msgPaymentLink(link)))
}

func (h *Handler) handleGreeting(msg *tgbotapi.Message) {
	name := "friend"
	if msg.From != nil {
		switch {
		case msg.From.FirstName != "" && msg.From.LastName != "":
			name = msg.From.FirstName + " " + msg.From.LastName
		case msg.From.FirstName != "":
			name = msg.From.FirstName
		case msg.From.UserName != "":
			name = msg.From.UserName
		}
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID, greetings[rand.Intn(len(greetings))](name))
	reply.ReplyToMessageID = msg.MessageID
	h.send(reply)
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
