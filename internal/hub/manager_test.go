package hub_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hostelcare/backend/internal/hub"
	"hostelcare/backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	userID      string
	RecvChannel chan models.PushEvent

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID string, buffer int) *MockClient {
	return &MockClient{userID: userID, RecvChannel: make(chan models.PushEvent, buffer)}
}

func (c *MockClient) GetUserID() string                        { return c.userID }
func (c *MockClient) GetSendChannel() chan<- models.PushEvent { return c.RecvChannel }
func (c *MockClient) Run()                                     {}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *MockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func receive(t *testing.T, c *MockClient) models.PushEvent {
	t.Helper()
	select {
	case e := <-c.RecvChannel:
		return e
	case <-time.After(time.Second):
		t.Fatalf("client %s received nothing", c.userID)
		return models.PushEvent{}
	}
}

func startHub(t *testing.T) *hub.ManagerService {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := hub.NewManagerService(nil)
	go m.Run(ctx)
	return m
}

func TestManager_RegisterAndUnregister(t *testing.T) {
	m := startHub(t)
	clientA := newMockClient("user_A", 4)

	require.True(t, m.Register(clientA))
	assert.Eventually(t, func() bool { return m.IsConnected("user_A") }, time.Second, 10*time.Millisecond)
	assert.Equal(t, models.PushConnected, receive(t, clientA).Type)

	m.Unregister(clientA)
	assert.Eventually(t, func() bool { return !m.IsConnected("user_A") }, time.Second, 10*time.Millisecond)
	assert.True(t, clientA.isClosed())
}

func TestManager_DeliversToEveryConnectionOfRecipient(t *testing.T) {
	m := startHub(t)
	tab1 := newMockClient("stu1", 4)
	tab2 := newMockClient("stu1", 4)
	other := newMockClient("stu2", 4)
	for _, c := range []*MockClient{tab1, tab2, other} {
		require.True(t, m.Register(c))
		receive(t, c)
	}

	m.DeliveryCh <- models.Notification{ID: "n1", RecipientID: "stu1", Message: "Your complaint has been Resolved"}

	for _, c := range []*MockClient{tab1, tab2} {
		e := receive(t, c)
		assert.Equal(t, models.PushNotification, e.Type)
		require.NotNil(t, e.Notification)
		assert.Equal(t, "n1", e.Notification.ID)
	}
	select {
	case e := <-other.RecvChannel:
		t.Fatalf("unexpected event for other user: %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_DropsSlowClient(t *testing.T) {
	m := startHub(t)
	slow := newMockClient("stu1", 1)
	require.True(t, m.Register(slow))

	// the connected event fills the buffer
	m.DeliveryCh <- models.Notification{ID: "n1", RecipientID: "stu1"}

	assert.Eventually(t, slow.isClosed, time.Second, 10*time.Millisecond)
	assert.False(t, m.IsConnected("stu1"))
}

func TestManager_StopClosesClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := hub.NewManagerService(nil)
	stopped := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(stopped)
	}()

	c := newMockClient("admin1", 4)
	require.True(t, m.Register(c))
	cancel()
	<-stopped

	assert.True(t, c.isClosed())
	assert.False(t, m.Register(newMockClient("late", 1)), "register after stop must not block")
	m.Unregister(c)
}

func TestWebSocketClient_ReceivesPushedNotification(t *testing.T) {
	m := startHub(t)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := hub.NewWebSocketClient(r.URL.Query().Get("user"), conn, m)
		if m.Register(client) {
			client.Run()
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?user=stu1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	var event models.PushEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.PushConnected, event.Type)

	m.DeliveryCh <- models.Notification{ID: "n9", RecipientID: "stu1", Title: "Complaint Status Updated"}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, models.PushNotification, event.Type)
	assert.Equal(t, "Complaint Status Updated", event.Notification.Title)

	conn.Close()
	assert.Eventually(t, func() bool { return !m.IsConnected("stu1") }, 2*time.Second, 20*time.Millisecond)
}
