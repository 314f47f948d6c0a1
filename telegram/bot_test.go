package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ledger-calendar-bot/assistant/assistant"
	"github.com/ledger-calendar-bot/assistant/logger"
	telegrammocks "github.com/ledger-calendar-bot/assistant/tests/mocks/telegram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			From:      &tgbotapi.User{ID: 7, FirstName: "Ana"},
			Chat:      &tgbotapi.Chat{ID: 42},
			Text:      text,
		},
	}
}

func commandUpdate(command string) tgbotapi.Update {
	update := textUpdate(command)
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}}
	return update
}

func expectMessage(t *testing.T, api *telegrammocks.MockBotAPI, text string, parseMode string) *gomock.Call {
	return api.EXPECT().Send(gomock.Any()).DoAndReturn(func(c tgbotapi.Chattable) (tgbotapi.Message, error) {
		msg, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(42), msg.ChatID)
		assert.Equal(t, text, msg.Text)
		assert.Equal(t, parseMode, msg.ParseMode)
		return tgbotapi.Message{}, nil
	})
}

func TestBot_HandleUpdate(t *testing.T) {
	tests := []struct {
		name       string
		update     tgbotapi.Update
		setupMocks func(*testing.T, *telegrammocks.MockBotAPI, *telegrammocks.MockHandler)
	}{
		{
			name:   "Start command greets the sender",
			update: commandUpdate("/start"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				expectMessage(t, api, assistant.Greeting("Ana").Text, "")
			},
		},
		{
			name:   "Help command sends markdown",
			update: commandUpdate("/ajuda"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				expectMessage(t, api, assistant.Help().Text, tgbotapi.ModeMarkdown)
			},
		},
		{
			name:       "Unknown command is ignored",
			update:     commandUpdate("/settings"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {},
		},
		{
			name:   "Text is answered with the handler reply",
			update: textUpdate("gasto 15 reais coxinha"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().
					Handle(gomock.Any(), assistant.Message{ChatID: 42, Text: "gasto 15 reais coxinha"}).
					Return(&assistant.Reply{Text: "registrado"}, nil)
				expectMessage(t, api, "registrado", "")
			},
		},
		{
			name:   "Markdown reply keeps its parse mode",
			update: textUpdate("eventos"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&assistant.Reply{Text: "*1. Dentista*", Markdown: true}, nil)
				expectMessage(t, api, "*1. Dentista*", tgbotapi.ModeMarkdown)
			},
		},
		{
			name:   "Ignored message sends nothing",
			update: textUpdate("bom dia"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
		},
		{
			name:   "Handler error sends nothing",
			update: textUpdate("gasto 15 reais coxinha"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(nil, context.Canceled)
			},
		},
		{
			name:   "Rejected markdown is resent as plain text",
			update: textUpdate("eventos"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&assistant.Reply{Text: "*1. almoço_equipe", Markdown: true}, nil)
				gomock.InOrder(
					api.EXPECT().Send(gomock.Any()).Return(tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")),
					expectMessage(t, api, "*1. almoço_equipe", ""),
				)
			},
		},
		{
			name:   "Send failure is not fatal",
			update: textUpdate("gasto 15 reais coxinha"),
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {
				h.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(&assistant.Reply{Text: "registrado"}, nil)
				api.EXPECT().Send(gomock.Any()).Return(tgbotapi.Message{}, errors.New("network down")).Times(1)
			},
		},
		{
			name:       "Update without message is skipped",
			update:     tgbotapi.Update{UpdateID: 2},
			setupMocks: func(t *testing.T, api *telegrammocks.MockBotAPI, h *telegrammocks.MockHandler) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := telegrammocks.NewMockBotAPI(ctrl)
			handler := telegrammocks.NewMockHandler(ctrl)
			tt.setupMocks(t, api, handler)

			bot := NewBot(api, handler, logger.NewNoOpLogger(), 30)
			assert.NotPanics(t, func() {
				bot.HandleUpdate(context.Background(), tt.update)
			})
		})
	}
}

func TestBot_RunStopsWhenChannelCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := telegrammocks.NewMockBotAPI(ctrl)
	handler := telegrammocks.NewMockHandler(ctrl)

	updates := make(chan tgbotapi.Update, 2)
	updates <- textUpdate("gasto 15 reais coxinha")
	updates <- textUpdate("ganhei 100 reais de bico")
	close(updates)

	api.EXPECT().GetUpdatesChan(gomock.Any()).DoAndReturn(func(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
		assert.Equal(t, 30, cfg.Timeout)
		return updates
	})
	gomock.InOrder(
		handler.EXPECT().Handle(gomock.Any(), assistant.Message{ChatID: 42, Text: "gasto 15 reais coxinha"}).Return(nil, nil),
		handler.EXPECT().Handle(gomock.Any(), assistant.Message{ChatID: 42, Text: "ganhei 100 reais de bico"}).Return(nil, nil),
	)
	api.EXPECT().StopReceivingUpdates()

	bot := NewBot(api, handler, logger.NewNoOpLogger(), 30)
	assert.NoError(t, bot.Run(context.Background()))
}

func TestBot_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := telegrammocks.NewMockBotAPI(ctrl)
	handler := telegrammocks.NewMockHandler(ctrl)

	updates := make(chan tgbotapi.Update)
	api.EXPECT().GetUpdatesChan(gomock.Any()).Return(tgbotapi.UpdatesChannel(updates))
	api.EXPECT().StopReceivingUpdates()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewBot(api, handler, logger.NewNoOpLogger(), 30).Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("bot did not stop after cancellation")
	}
}
