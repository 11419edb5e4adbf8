package model

import "encoding/json"

// WebhookEvent is a verified Tranzak notification. It lives only for the
// duration of one inbound request; the raw payload is kept so a future
// reconciliation consumer can apply its own schema.
type WebhookEvent struct {
	Raw json.RawMessage

	// Best-effort fields pulled from the payload. The gateway contract says
	// they are present but this core does not enforce it.
	TransactionID string
	Status        string
}
