// Package events publishes terminal submission results to NATS so other
// platform services (indexers, notification workers) can react to new tokens
// without polling the database.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"launchpad-backend/internal/services"
)

// Publisher pushes submission outcomes onto NATS subjects
type Publisher struct {
	conn          *nats.Conn
	subjectPrefix string
}

// NewPublisher connects to the NATS server. The connection reconnects
// indefinitely; a launchpad outliving a broker restart must not need a
// redeploy.
func NewPublisher(url, subjectPrefix string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(5*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("⚠️ NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("✅ NATS reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}

	if subjectPrefix == "" {
		subjectPrefix = "launchpad"
	}

	log.Printf("✅ NATS connected to %s", url)
	return &Publisher{conn: conn, subjectPrefix: subjectPrefix}, nil
}

// PublishOutcome emits a terminal submission result. Success lands on
// <prefix>.token.created, everything else on <prefix>.token.failed.
// Publish errors are logged, never propagated: event delivery is best-effort
// and must not affect the submission result already handed to the user.
func (p *Publisher) PublishOutcome(outcome *services.SubmissionOutcome) {
	subject := p.subjectPrefix + ".token.failed"
	if outcome.TokenAddress != "" {
		subject = p.subjectPrefix + ".token.created"
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		log.Printf("❌ Failed to encode outcome %s for NATS: %v", outcome.SubmissionID, err)
		return
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		log.Printf("❌ Failed to publish %s to %s: %v", outcome.SubmissionID, subject, err)
		return
	}
	log.Printf("📨 Published submission %s to %s", outcome.SubmissionID, subject)
}

// Close drains the connection
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
