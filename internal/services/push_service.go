package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"launchpad-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Should check Origin in production environment
		return true
	},
}

// StageMessage is one live progress update for a submission
type StageMessage struct {
	Type         string                 `json:"type"` // "stage" or "outcome"
	Timestamp    string                 `json:"timestamp"`
	SubmissionID string                 `json:"submission_id"`
	Stage        models.SubmissionStage `json:"stage,omitempty"`
	Outcome      *SubmissionOutcome     `json:"outcome,omitempty"`
}

// PushService fans submission progress out to websocket subscribers.
// Clients subscribe to all submissions; filtering happens client-side since
// a submission ID is only known to the client that started it.
type PushService struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]chan []byte
}

func NewPushService() *PushService {
	return &PushService{
		conns: make(map[*websocket.Conn]chan []byte),
	}
}

// HandleConnection upgrades an HTTP request and serves it until the client
// goes away
func (s *PushService) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}

	send := make(chan []byte, 32)
	s.mu.Lock()
	s.conns[conn] = send
	s.mu.Unlock()
	log.Printf("🔌 WebSocket client connected (%d active)", s.count())

	go s.writeLoop(conn, send)
	s.readLoop(conn)
}

func (s *PushService) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

func (s *PushService) drop(conn *websocket.Conn) {
	s.mu.Lock()
	if send, ok := s.conns[conn]; ok {
		delete(s.conns, conn)
		close(send)
	}
	s.mu.Unlock()
	conn.Close()
}

func (s *PushService) readLoop(conn *websocket.Conn) {
	defer s.drop(conn)
	conn.SetReadLimit(1024)
	for {
		// clients send nothing meaningful; reads only detect disconnects
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *PushService) writeLoop(conn *websocket.Conn, send chan []byte) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case payload, ok := <-send:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *PushService) broadcast(payload []byte) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for conn, send := range s.conns {
		select {
		case send <- payload:
		default:
			// slow consumer; skip rather than block the pipeline
			log.Printf("⚠️ Dropping push message for slow WebSocket client %s", conn.RemoteAddr())
		}
	}
}

func encodeStageMessage(msg *StageMessage) []byte {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("❌ Failed to encode push message: %v", err)
		return []byte("{}")
	}
	return payload
}

// NotifyStage implements StageNotifier
func (s *PushService) NotifyStage(submissionID string, stage models.SubmissionStage) {
	s.broadcast(encodeStageMessage(&StageMessage{
		Type:         "stage",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SubmissionID: submissionID,
		Stage:        stage,
	}))
}

// NotifyOutcome implements StageNotifier
func (s *PushService) NotifyOutcome(outcome *SubmissionOutcome) {
	s.broadcast(encodeStageMessage(&StageMessage{
		Type:         "outcome",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		SubmissionID: outcome.SubmissionID,
		Outcome:      outcome,
	}))
}
