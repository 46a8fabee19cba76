package handlers

import (
	"testing"

	"github.com/atikxcode/SNAIL-TYPE-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func validEvent() models.KeystrokeEvent {
	return models.KeystrokeEvent{
		Key:       "a",
		Timestamp: 120,
		Expected:  strptr("a"),
		Correct:   boolptr(true),
		Position:  0,
		LatencyMs: 80,
	}
}

func TestValidateBatchAcceptsWellFormedPayload(t *testing.T) {
	payload := &models.BatchPayload{
		SessionID: "s-1",
		Events:    []models.KeystrokeEvent{validEvent()},
	}
	_, ok := validateBatch(payload)
	assert.True(t, ok)
}

func TestValidateBatchAcceptsNonPrintingEvents(t *testing.T) {
	payload := &models.BatchPayload{
		SessionID: "s-1",
		Events: []models.KeystrokeEvent{
			{Key: "Backspace", Timestamp: 10, Position: 3},
		},
	}
	_, ok := validateBatch(payload)
	assert.True(t, ok)
}

func TestResolveBatchUserIgnoresPayloadClaim(t *testing.T) {
	// An anonymous caller naming a user in the payload must still be
	// stored anonymously; only a session identity counts.
	payload := &models.BatchPayload{
		SessionID: "s-1",
		UserID:    claimedUser(),
		Events:    []models.KeystrokeEvent{validEvent()},
	}
	_, ok := validateBatch(payload)
	require.True(t, ok)

	assert.Nil(t, resolveBatchUser(nil))
	assert.Nil(t, resolveBatchUser("7"))
	assert.Nil(t, resolveBatchUser(7)) // int, not the session's uint
}

func TestResolveBatchUserAcceptsSessionIdentity(t *testing.T) {
	got := resolveBatchUser(uint(7))
	require.NotNil(t, got)
	assert.Equal(t, uint(7), *got)
}

func claimedUser() *uint {
	id := uint(7)
	return &id
}

func TestValidateBatchNamesFirstMalformedField(t *testing.T) {
	broken := func(mutate func(*models.KeystrokeEvent)) *models.BatchPayload {
		events := []models.KeystrokeEvent{validEvent(), validEvent(), validEvent()}
		mutate(&events[1])
		return &models.BatchPayload{SessionID: "s-1", Events: events}
	}

	cases := []struct {
		name    string
		payload *models.BatchPayload
		field   string
	}{
		{
			"missing session id",
			&models.BatchPayload{Events: []models.KeystrokeEvent{validEvent()}},
			"sessionId",
		},
		{
			"empty events",
			&models.BatchPayload{SessionID: "s-1"},
			"events",
		},
		{
			"empty key",
			broken(func(ev *models.KeystrokeEvent) { ev.Key = "" }),
			"events[1].key",
		},
		{
			"negative timestamp",
			broken(func(ev *models.KeystrokeEvent) { ev.Timestamp = -1 }),
			"events[1].timestamp",
		},
		{
			"negative position",
			broken(func(ev *models.KeystrokeEvent) { ev.Position = -2 }),
			"events[1].position",
		},
		{
			"negative latency",
			broken(func(ev *models.KeystrokeEvent) { ev.LatencyMs = -5 }),
			"events[1].latencyMs",
		},
		{
			"correctness without expectation",
			broken(func(ev *models.KeystrokeEvent) { ev.Expected = nil }),
			"events[1].expected",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			field, ok := validateBatch(tc.payload)
			assert.False(t, ok)
			assert.Equal(t, tc.field, field)
		})
	}
}
