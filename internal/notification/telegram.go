package notification

import (
	"context"
	"fmt"

	"hostelcare/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotSender is the part of *tgbotapi.BotAPI used by TelegramSink.
type BotSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UserLookup resolves a recipient to find their Telegram chat.
type UserLookup interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}

// TelegramSink mirrors notifications to users who linked a Telegram chat.
// Recipients without a linked chat are skipped silently.
type TelegramSink struct {
	Bot   BotSender
	Users UserLookup
}

func (s *TelegramSink) Deliver(ctx context.Context, n *models.Notification) error {
	user, err := s.Users.FindUserByID(ctx, n.RecipientID)
	if err != nil {
		return fmt.Errorf("telegram: resolve recipient: %w", err)
	}
	if user.TelegramChatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(user.TelegramChatID, formatTelegramText(n))
	if _, err := s.Bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send to chat %d: %w", user.TelegramChatID, err)
	}
	return nil
}

func formatTelegramText(n *models.Notification) string {
	if n.Title == "" {
		return n.Message
	}
	return n.Title + "\n\n" + n.Message
}
