// Package telemetry ships keystroke batches from a running session to the
// ingestion endpoint.
package telemetry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"go.uber.org/zap"
)

// HTTPSink posts batches to the ingestion endpoint. Sends are
// fire-and-forget: each delivery runs in its own goroutine and failures are
// only logged. The session's local metrics never depend on delivery.
type HTTPSink struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

func NewHTTPSink(endpoint string, log *zap.Logger) *HTTPSink {
	return &HTTPSink{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

func (s *HTTPSink) Send(payload models.BatchPayload) {
	go func() {
		if err := s.post(payload); err != nil {
			s.log.Warn("Failed to deliver keystroke batch",
				zap.String("sessionID", payload.SessionID),
				zap.Int("events", len(payload.Events)),
				zap.Error(err),
			)
		}
	}()
}

func (s *HTTPSink) post(payload models.BatchPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := s.client.Post(s.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ingestion endpoint returned %d", resp.StatusCode)
	}
	return nil
}
