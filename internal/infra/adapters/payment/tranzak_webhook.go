package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"camerpay-payments/internal/domain"
	"camerpay-payments/internal/domain/model"
	"camerpay-payments/internal/domain/ports/adapter"
)

var _ adapter.WebhookVerifier = (*TranzakWebhookVerifier)(nil)

// TranzakWebhookVerifier authenticates inbound Tranzak notifications with the
// shared webhook secret. It is pure computation; the HTTP layer owns logging
// and status-code mapping.
type TranzakWebhookVerifier struct {
	secret string
}

func NewTranzakWebhookVerifier(secret string) *TranzakWebhookVerifier {
	return &TranzakWebhookVerifier{secret: secret}
}

// SignPayload computes the signature Tranzak sends: lowercase hex of
// HMAC-SHA256 over the raw body bytes.
func SignPayload(secret string, body []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyAndParse checks the signature over the exact bytes received, then and
// only then decodes the payload. Signing a re-serialized JSON object would not
// be byte-identical to what the sender signed, so callers must hand in the
// captured request body untouched.
func (v *TranzakWebhookVerifier) VerifyAndParse(rawBody []byte, signature string) (*model.WebhookEvent, error) {
	if v.secret == "" {
		// Fail closed. Accepting unsigned deliveries is never a fallback.
		return nil, domain.ErrWebhookSecretMissing
	}
	if signature == "" {
		return nil, domain.ErrSignatureMissing
	}

	expected := SignPayload(v.secret, rawBody)
	// hmac.Equal is constant-time and rejects length mismatches before
	// comparing bytes. A plain == here would leak timing.
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return nil, domain.ErrSignatureInvalid
	}

	var fields struct {
		TransactionID string `json:"transaction_id"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(rawBody, &fields); err != nil {
		return nil, domain.ErrPayloadMalformed
	}

	return &model.WebhookEvent{
		Raw:           append(json.RawMessage(nil), rawBody...),
		TransactionID: fields.TransactionID,
		Status:        fields.Status,
	}, nil
}
