package domain

import "errors"

var (
	// Charge initiation
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrInvalidArgument      = errors.New("invalid argument")

	// Webhook verification. Each maps to exactly one terminal state of an
	// inbound delivery; the HTTP layer translates them to status codes.
	ErrWebhookSecretMissing = errors.New("webhook secret not configured")
	ErrSignatureMissing     = errors.New("webhook signature header missing")
	ErrSignatureInvalid     = errors.New("webhook signature mismatch")
	ErrPayloadMalformed     = errors.New("webhook payload is not valid JSON")
)
