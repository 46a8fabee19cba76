package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"
	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TelemetryHandler struct {
	log *zap.Logger
}

func NewTelemetryHandler(log *zap.Logger) *TelemetryHandler {
	return &TelemetryHandler{log: log}
}

// Ingest accepts one keystroke batch. The whole batch is rejected on the
// first malformed field; identity is attached when the caller has a valid
// session, otherwise the batch is stored anonymously. Event timestamps are
// session-relative elapsed milliseconds.
func (h *TelemetryHandler) Ingest(c *gin.Context) {
	var payload models.BatchPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.log.Warn("Failed to bind keystroke batch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if field, ok := validateBatch(&payload); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Malformed batch",
			"field": field,
		})
		return
	}

	// Identity comes from the authenticated session only; the payload's
	// userId claim is never trusted. Missing identity degrades to
	// anonymous, never to rejection.
	userID := resolveBatchUser(sessions.Default(c).Get("userID"))

	batch, err := repository.SaveBatch(c.Request.Context(), payload, userID, time.Now().UTC())
	if err != nil {
		h.log.Error("Failed to store keystroke batch",
			zap.String("sessionID", payload.SessionID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store batch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accepted": len(batch.Events),
		"batchId":  batch.ID,
	})
}

// resolveBatchUser maps the session's userID value to the stored identity.
// Anything but an authenticated uint resolves to anonymous, so a caller
// cannot write telemetry under someone else's account by naming them in the
// payload.
func resolveBatchUser(sessionValue interface{}) *uint {
	if id, ok := sessionValue.(uint); ok {
		return &id
	}
	return nil
}

// validateBatch checks shape only: required fields present and sane. It
// names the first malformed field it finds.
func validateBatch(payload *models.BatchPayload) (string, bool) {
	if payload.SessionID == "" {
		return "sessionId", false
	}
	if len(payload.Events) == 0 {
		return "events", false
	}
	for i, ev := range payload.Events {
		switch {
		case ev.Key == "":
			return fmt.Sprintf("events[%d].key", i), false
		case ev.Timestamp < 0:
			return fmt.Sprintf("events[%d].timestamp", i), false
		case ev.Position < 0:
			return fmt.Sprintf("events[%d].position", i), false
		case ev.LatencyMs < 0:
			return fmt.Sprintf("events[%d].latencyMs", i), false
		case ev.Correct != nil && ev.Expected == nil:
			return fmt.Sprintf("events[%d].expected", i), false
		}
	}
	return "", true
}
