package notify

import (
	"context"

	"github.com/GlebRadaev/photoexpress/pkg/clients"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Sender interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// TelegramSender delivers messages through the Telegram bot API.
type TelegramSender struct {
	api *tgbotapi.BotAPI
}

func NewTelegramSender(token, endpoint string, client *clients.HTTPClient) (*TelegramSender, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, err
	}
	zap.L().Info("telegram bot connected", zap.String("username", api.Self.UserName))
	return &TelegramSender{api: api}, nil
}

func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// LogSender writes messages to the log. It is used when no bot token is set.
type LogSender struct{}

func (LogSender) Send(_ context.Context, chatID int64, text string) error {
	zap.L().Info("notification", zap.Int64("chat_id", chatID), zap.String("text", text))
	return nil
}
