// Package telegram runs the Telegram bot through which residents link a chat
// to their account. Outbound delivery lives in notification.TelegramSink;
// both share one *tgbotapi.BotAPI.
package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService is responsible for receiving Telegram updates and passing
// commands to the handler.
type BotService struct {
	BotAPI   *tgbotapi.BotAPI
	Commands *CommandHandler
}

// NewBotAPI authorizes the token.
func NewBotAPI(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("INFO: Telegram bot authorized on account %s", bot.Self.UserName)
	return bot, nil
}

func NewBotService(bot *tgbotapi.BotAPI, commands *CommandHandler) *BotService {
	return &BotService{BotAPI: bot, Commands: commands}
}

// Run long-polls for updates until ctx is cancelled.
func (s *BotService) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)

	log.Println("INFO: Telegram bot started receiving updates")
	for {
		select {
		case <-ctx.Done():
			s.BotAPI.StopReceivingUpdates()
			log.Println("INFO: Telegram bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			s.Commands.HandleUpdate(ctx, &update)
		}
	}
}
