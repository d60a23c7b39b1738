package telegram

import (
	"context"
	"log"
	"strings"

	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/localization"
	"hostelcare/backend/internal/models"
	"hostelcare/backend/internal/notification"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	msgHelp       = "telegram_help"
	msgLinkUsage  = "telegram_link_usage"
	msgLinkFailed = "telegram_link_failed"
	msgLinked     = "telegram_linked"
	msgUnlinked   = "telegram_unlinked"
	msgNotLinked  = "telegram_not_linked"
	msgUnread     = "telegram_unread"
	msgError      = "telegram_error"
)

// Bot is the part of *tgbotapi.BotAPI used by the command handler.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, rollNumber, password string) (*models.User, error)
}

// ChatStore defines the storage methods required by the command handler.
type ChatStore interface {
	FindUserByTelegramChat(ctx context.Context, chatID int64) (*models.User, error)
	UpdateUserTelegramChat(ctx context.Context, userID string, chatID int64) error
	CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error)
}

// CommandHandler answers /start, /link, /unlink and /unread. Replies use
// the linked user's language when known, Lang otherwise.
type CommandHandler struct {
	Bot       Bot
	Auth      Authenticator
	Store     ChatStore
	Localizer *localization.Localizer
	Lang      string
}

func (h *CommandHandler) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "link":
		h.link(ctx, msg)
	case "unlink":
		h.unlink(ctx, chatID)
	case "unread":
		h.unread(ctx, chatID)
	default:
		h.reply(chatID, h.Lang, msgHelp)
	}
}

func (h *CommandHandler) link(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 2 {
		h.reply(chatID, h.Lang, msgLinkUsage)
		return
	}

	// The message carries a password.
	if _, err := h.Bot.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		log.Printf("WARN: Failed to delete /link message in chat %d: %v", chatID, err)
	}

	user, err := h.Auth.Authenticate(ctx, args[0], args[1])
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			h.reply(chatID, h.Lang, msgLinkFailed)
			return
		}
		log.Printf("ERROR: Telegram link for chat %d: %v", chatID, err)
		h.reply(chatID, h.Lang, msgError)
		return
	}

	// A chat belongs to one account at a time.
	if prev, err := h.Store.FindUserByTelegramChat(ctx, chatID); err == nil && prev.ID != user.ID {
		if err := h.Store.UpdateUserTelegramChat(ctx, prev.ID, 0); err != nil {
			log.Printf("WARN: Failed to unlink chat %d from user %s: %v", chatID, prev.ID, err)
		}
	}

	if err := h.Store.UpdateUserTelegramChat(ctx, user.ID, chatID); err != nil {
		log.Printf("ERROR: Failed to link chat %d to user %s: %v", chatID, user.ID, err)
		h.reply(chatID, h.Lang, msgError)
		return
	}
	log.Printf("INFO: User %s linked Telegram chat %d", user.ID, chatID)
	h.reply(chatID, h.langFor(user), msgLinked, user.Name)
}

func (h *CommandHandler) unlink(ctx context.Context, chatID int64) {
	user, ok := h.linkedUser(ctx, chatID)
	if !ok {
		return
	}
	if err := h.Store.UpdateUserTelegramChat(ctx, user.ID, 0); err != nil {
		log.Printf("ERROR: Failed to unlink chat %d: %v", chatID, err)
		h.reply(chatID, h.langFor(user), msgError)
		return
	}
	h.reply(chatID, h.langFor(user), msgUnlinked)
}

func (h *CommandHandler) unread(ctx context.Context, chatID int64) {
	user, ok := h.linkedUser(ctx, chatID)
	if !ok {
		return
	}
	count, err := h.Store.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		log.Printf("ERROR: Failed to count unread notifications for %s: %v", user.ID, err)
		h.reply(chatID, h.langFor(user), msgError)
		return
	}
	h.reply(chatID, h.langFor(user), msgUnread, count)
}

// linkedUser replies itself when the chat has no linked user.
func (h *CommandHandler) linkedUser(ctx context.Context, chatID int64) (*models.User, bool) {
	user, err := h.Store.FindUserByTelegramChat(ctx, chatID)
	if err == nil {
		return user, true
	}
	if apperr.IsNotFound(err) {
		h.reply(chatID, h.Lang, msgNotLinked)
	} else {
		log.Printf("ERROR: Failed to resolve chat %d: %v", chatID, err)
		h.reply(chatID, h.Lang, msgError)
	}
	return nil, false
}

func (h *CommandHandler) langFor(user *models.User) string {
	if user.Language != "" {
		return user.Language
	}
	return h.Lang
}

func (h *CommandHandler) reply(chatID int64, lang, key string, args ...any) {
	catalog := notification.Catalog{Localizer: h.Localizer, Lang: lang}
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, catalog.Format(key, args...))); err != nil {
		log.Printf("ERROR: Failed to reply in chat %d: %v", chatID, err)
	}
}
