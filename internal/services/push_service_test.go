package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"launchpad-backend/internal/models"
)

func dialPush(t *testing.T, svc *PushService) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(svc.HandleConnection))
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPushServiceStageBroadcast(t *testing.T) {
	svc := NewPushService()
	conn := dialPush(t, svc)

	// wait for the server side to register the connection
	require.Eventually(t, func() bool { return svc.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	svc.NotifyStage("sub-123", models.StageUploading)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg StageMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "stage", msg.Type)
	assert.Equal(t, "sub-123", msg.SubmissionID)
	assert.Equal(t, models.StageUploading, msg.Stage)
}

func TestPushServiceOutcomeBroadcast(t *testing.T) {
	svc := NewPushService()
	conn := dialPush(t, svc)
	require.Eventually(t, func() bool { return svc.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	svc.NotifyOutcome(&SubmissionOutcome{
		SubmissionID: "sub-456",
		Status:       models.StatusSucceeded,
		Stage:        models.StageCompleted,
		TokenAddress: "0x3333333333333333333333333333333333333333",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg StageMessage
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "outcome", msg.Type)
	require.NotNil(t, msg.Outcome)
	assert.Equal(t, models.StatusSucceeded, msg.Outcome.Status)
}

func TestPushServiceDropsClosedConnections(t *testing.T) {
	svc := NewPushService()
	conn := dialPush(t, svc)
	require.Eventually(t, func() bool { return svc.count() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return svc.count() == 0 }, 2*time.Second, 10*time.Millisecond)

	// broadcasting with no subscribers must not panic
	svc.NotifyStage("sub-789", models.StageConfirming)
}
