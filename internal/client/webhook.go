package client

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hiper-shop-api/internal/model"
)

// DefaultTolerance bounds how old a signed event may be before it is
// rejected as a possible replay.
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidSignature = errors.New("webhook signature verification failed")
	ErrExpiredSignature = errors.New("webhook timestamp outside tolerance")
)

// ConstructEvent verifies the Stripe-Signature header against the raw body
// and returns the parsed event envelope. The body must be the exact bytes
// received on the wire.
func ConstructEvent(payload []byte, sigHeader, secret string) (model.StripeEvent, error) {
	return constructEventAt(payload, sigHeader, secret, DefaultTolerance, time.Now())
}

// ParseEvent decodes an event without signature verification. Only for
// development setups that have no webhook secret.
func ParseEvent(payload []byte) (model.StripeEvent, error) {
	var event model.StripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("decode webhook payload: %w", err)
	}
	return event, nil
}

func constructEventAt(payload []byte, sigHeader, secret string, tolerance time.Duration, now time.Time) (model.StripeEvent, error) {
	var event model.StripeEvent

	timestamp, signatures, err := parseSignatureHeader(sigHeader)
	if err != nil {
		return event, err
	}

	if now.Sub(time.Unix(timestamp, 0)) > tolerance {
		return event, ErrExpiredSignature
	}

	expected := computeSignature(timestamp, payload, secret)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal(sig, expected) {
			matched = true
			break
		}
	}
	if !matched {
		return event, ErrInvalidSignature
	}

	if err := json.Unmarshal(payload, &event); err != nil {
		return event, fmt.Errorf("decode webhook payload: %w", err)
	}
	return event, nil
}

// SignPayload produces a Stripe-Signature header value for the given body.
// Used by tests and local tooling to emit verifiable events.
func SignPayload(payload []byte, secret string, at time.Time) string {
	timestamp := at.Unix()
	sig := computeSignature(timestamp, payload, secret)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(sig))
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]". Elements
// other than t and v1 (e.g. v0 from older API versions) are ignored.
func parseSignatureHeader(header string) (int64, [][]byte, error) {
	if header == "" {
		return 0, nil, ErrInvalidSignature
	}

	var timestamp int64 = -1
	var signatures [][]byte

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return 0, nil, ErrInvalidSignature
		}
		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if timestamp == -1 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}
