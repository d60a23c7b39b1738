package telegram

import (
	"context"
	"errors"
	"testing"

	apperr "hostelcare/backend/internal/errors"
	"hostelcare/backend/internal/localization"
	"hostelcare/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
	sent []string
}

func (m *MockBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		m.sent = append(m.sent, msg.Text)
	}
	return tgbotapi.Message{}, nil
}

func (m *MockBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	args := m.Called(c)
	return &tgbotapi.APIResponse{Ok: true}, args.Error(0)
}

type MockAuth struct {
	mock.Mock
}

func (m *MockAuth) Authenticate(ctx context.Context, rollNumber, password string) (*models.User, error) {
	args := m.Called(rollNumber, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) FindUserByTelegramChat(ctx context.Context, chatID int64) (*models.User, error) {
	args := m.Called(chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockChatStore) UpdateUserTelegramChat(ctx context.Context, userID string, chatID int64) error {
	return m.Called(userID, chatID).Error(0)
}

func (m *MockChatStore) CountUnreadNotifications(ctx context.Context, recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func newHandler(t *testing.T) (*CommandHandler, *MockBot, *MockAuth, *MockChatStore) {
	t.Helper()
	l, err := localization.NewDefaultLocalizer()
	require.NoError(t, err)
	bot, auth, store := new(MockBot), new(MockAuth), new(MockChatStore)
	return &CommandHandler{Bot: bot, Auth: auth, Store: store, Localizer: l, Lang: "en"}, bot, auth, store
}

func command(chatID int64, text string) *tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return &tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 42,
			Text:      text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: length},
			},
			From: &tgbotapi.User{ID: chatID},
			Chat: tgbotapi.Chat{ID: chatID},
		},
	}
}

func TestLink_LinksChatAndDeletesPasswordMessage(t *testing.T) {
	h, bot, auth, store := newHandler(t)
	asha := &models.User{ID: "stu1", Name: "Asha", Language: "hi"}

	bot.On("Request", tgbotapi.NewDeleteMessage(555, 42)).Return(nil)
	auth.On("Authenticate", "21cs042", "secret").Return(asha, nil)
	store.On("FindUserByTelegramChat", int64(555)).Return(nil, apperr.NewNotFound("user not found"))
	store.On("UpdateUserTelegramChat", "stu1", int64(555)).Return(nil)

	h.HandleUpdate(context.Background(), command(555, "/link 21cs042 secret"))

	bot.AssertExpectations(t)
	store.AssertExpectations(t)
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], "Asha")
	assert.Contains(t, bot.sent[0], "जुड़ गया", "reply uses the user's language")
}

func TestLink_MovesChatFromPreviousUser(t *testing.T) {
	h, bot, auth, store := newHandler(t)
	bot.On("Request", mock.Anything).Return(nil)
	auth.On("Authenticate", "21CS043", "pw").Return(&models.User{ID: "stu2", Name: "Ravi"}, nil)
	store.On("FindUserByTelegramChat", int64(555)).Return(&models.User{ID: "stu1"}, nil)
	store.On("UpdateUserTelegramChat", "stu1", int64(0)).Return(nil)
	store.On("UpdateUserTelegramChat", "stu2", int64(555)).Return(nil)

	h.HandleUpdate(context.Background(), command(555, "/link 21CS043 pw"))

	store.AssertExpectations(t)
}

func TestLink_BadCredentialsAndUsage(t *testing.T) {
	h, bot, auth, store := newHandler(t)
	bot.On("Request", mock.Anything).Return(errors.New("message too old"))
	auth.On("Authenticate", "21CS042", "wrong").Return(nil, apperr.NewUnauthorized("invalid roll number or password"))

	h.HandleUpdate(context.Background(), command(555, "/link 21CS042 wrong"))
	h.HandleUpdate(context.Background(), command(555, "/link onlyroll"))

	store.AssertNotCalled(t, "UpdateUserTelegramChat", mock.Anything, mock.Anything)
	require.Len(t, bot.sent, 2)
	assert.Equal(t, "Invalid roll number or password.", bot.sent[0])
	assert.Equal(t, "Usage: /link <roll number> <password>", bot.sent[1])
}

func TestUnlinkAndUnread(t *testing.T) {
	h, bot, _, store := newHandler(t)
	store.On("FindUserByTelegramChat", int64(555)).Return(&models.User{ID: "stu1"}, nil)
	store.On("FindUserByTelegramChat", int64(777)).Return(nil, apperr.NewNotFound("user not found"))
	store.On("CountUnreadNotifications", "stu1").Return(int64(3), nil)
	store.On("UpdateUserTelegramChat", "stu1", int64(0)).Return(nil)

	h.HandleUpdate(context.Background(), command(555, "/unread"))
	h.HandleUpdate(context.Background(), command(555, "/unlink"))
	h.HandleUpdate(context.Background(), command(777, "/unread"))

	assert.Equal(t, []string{
		"You have 3 unread notifications.",
		"This chat will no longer receive notifications.",
		"This chat is not linked. Use /link first.",
	}, bot.sent)
}

func TestIgnoresPlainTextAndAnswersHelp(t *testing.T) {
	h, bot, _, _ := newHandler(t)

	h.HandleUpdate(context.Background(), &tgbotapi.Update{Message: &tgbotapi.Message{Text: "hello", Chat: tgbotapi.Chat{ID: 1}}})
	h.HandleUpdate(context.Background(), &tgbotapi.Update{})
	assert.Empty(t, bot.sent)

	h.HandleUpdate(context.Background(), command(1, "/start"))
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], "/link")
}
