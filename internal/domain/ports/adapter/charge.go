package adapter

import (
	"context"

	"camerpay-payments/internal/domain/model"
)

// ChargeRequest is the wire-level request the gateway adapter submits.
// RequestID is generated fresh per call by the use case and is the gateway's
// deduplication key; it is never reused.
type ChargeRequest struct {
	Amount       int64
	CurrencyCode string
	RequestID    string
	Memo         string
	MNOCode      string
	PhoneNumber  string // full E.164-like form, e.g. +237670000000
	RedirectURL  string // empty means omit from the wire body
}

// ChargeResponse is the gateway's synchronous reply, parsed but not yet
// classified. The body is decoded regardless of HTTP status since Tranzak
// returns structured error bodies on non-2xx.
type ChargeResponse struct {
	HTTPStatus    int
	Status        string // gateway status field; "SUCCESSFUL" is the success sentinel
	TransactionID string
	RedirectURL   string
	Message       string // gateway-provided failure message, may be empty
	RawBody       []byte // full body for operator logs
}

// ChargeGateway is the hex port for the mobile-money payment provider.
type ChargeGateway interface {
	Name() string

	// SubmitCharge performs one synchronous HTTP call. A non-nil error means
	// the exchange itself failed (transport fault, non-JSON body); a
	// gateway-declined charge comes back as a response, not an error.
	SubmitCharge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error)
}

// WebhookVerifier authenticates and decodes an inbound gateway notification.
type WebhookVerifier interface {
	// VerifyAndParse must run on the exact bytes received. The payload is
	// interpreted as JSON only after the signature matches. Failures are the
	// domain webhook errors (secret missing, signature missing/invalid,
	// payload malformed).
	VerifyAndParse(rawBody []byte, signature string) (*model.WebhookEvent, error)
}
