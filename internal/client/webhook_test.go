package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

var completedPayload = []byte(`{
	"id": "evt_123",
	"type": "checkout.session.completed",
	"data": {"object": {"id": "cs_test_123", "payment_status": "paid"}}
}`)

func TestConstructEvent_ValidSignature(t *testing.T) {
	header := SignPayload(completedPayload, testSecret, time.Now())

	event, err := ConstructEvent(completedPayload, header, testSecret)

	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, "checkout.session.completed", event.Type)
	assert.NotEmpty(t, event.Data.Raw)
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	header := SignPayload(completedPayload, testSecret, time.Now())

	tampered := append([]byte{}, completedPayload...)
	tampered[len(tampered)-2] = ' '

	_, err := ConstructEvent(tampered, header, testSecret)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	header := SignPayload(completedPayload, "whsec_other", time.Now())

	_, err := ConstructEvent(completedPayload, header, testSecret)

	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_ExpiredTimestamp(t *testing.T) {
	header := SignPayload(completedPayload, testSecret, time.Now().Add(-10*time.Minute))

	_, err := ConstructEvent(completedPayload, header, testSecret)

	assert.ErrorIs(t, err, ErrExpiredSignature)
}

func TestConstructEvent_MalformedHeader(t *testing.T) {
	for _, header := range []string{"", "t=abc,v1=ff", "v1=ff", "t=123", "nonsense"} {
		_, err := ConstructEvent(completedPayload, header, testSecret)
		assert.ErrorIs(t, err, ErrInvalidSignature, "header %q", header)
	}
}

func TestConstructEvent_SecondV1Matches(t *testing.T) {
	valid := SignPayload(completedPayload, testSecret, time.Now())
	// Stripe sends multiple v1 entries during secret rotation.
	header := valid + ",v1=deadbeef"

	_, err := ConstructEvent(completedPayload, header, testSecret)

	assert.NoError(t, err)
}

func TestParseEvent_Unsigned(t *testing.T) {
	event, err := ParseEvent(completedPayload)

	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
}

func TestParseEvent_MalformedBody(t *testing.T) {
	_, err := ParseEvent([]byte("{not json"))

	assert.Error(t, err)
}
