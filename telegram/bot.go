package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ledger-calendar-bot/assistant/assistant"
	"github.com/ledger-calendar-bot/assistant/config"
	"github.com/ledger-calendar-bot/assistant/logger"
)

// BotAPI is the part of the Telegram client used by the bot
//
//go:generate mockgen -source=bot.go -destination=../tests/mocks/telegram/bot.go -package=telegrammocks
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Handler answers plain chat messages
type Handler interface {
	Handle(ctx context.Context, msg assistant.Message) (*assistant.Reply, error)
}

type Bot struct {
	api         BotAPI
	handler     Handler
	logger      logger.Logger
	pollTimeout int
}

// Connect authenticates against the Telegram API with the configured token
func Connect(cfg *config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

func NewBot(api BotAPI, handler Handler, log logger.Logger, pollTimeout int) *Bot {
	return &Bot{
		api:         api,
		handler:     handler,
		logger:      log,
		pollTimeout: pollTimeout,
	}
}

// Run long-polls for updates and handles them one at a time until ctx is done or
// the updates channel is closed.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.logger.Info("polling for telegram updates", "timeout", b.pollTimeout)
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("stopping telegram polling")
			return nil
		case update, ok := <-updates:
			if !ok {
				b.logger.Warn("telegram updates channel closed")
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			name := ""
			if msg.From != nil {
				name = msg.From.FirstName
			}
			b.send(chatID, assistant.Greeting(name))
		case "ajuda":
			b.send(chatID, assistant.Help())
		default:
			b.logger.Debug("ignoring unknown command", "command", msg.Command(), "chat_id", chatID)
		}
		return
	}

	reply, err := b.handler.Handle(ctx, assistant.Message{ChatID: chatID, Text: msg.Text})
	if err != nil {
		b.logger.Error("failed to handle message", err, "chat_id", chatID)
		return
	}
	if reply == nil {
		return
	}
	b.send(chatID, reply)
}

func (b *Bot) send(chatID int64, reply *assistant.Reply) {
	out := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Markdown {
		out.ParseMode = tgbotapi.ModeMarkdown
	}

	_, err := b.api.Send(out)
	if err == nil {
		return
	}

	// Titles typed by the user can break Markdown entities
	if reply.Markdown {
		b.logger.Warn("markdown reply rejected, resending as plain text", "chat_id", chatID, "error", err.Error())
		out.ParseMode = ""
		if _, err = b.api.Send(out); err == nil {
			return
		}
	}
	b.logger.Error("failed to send reply", err, "chat_id", chatID)
}
