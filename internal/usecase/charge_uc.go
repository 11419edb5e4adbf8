// File: internal/usecase/charge_uc.go
package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"camerpay-payments/internal/config"
	"camerpay-payments/internal/domain/model"
	"camerpay-payments/internal/domain/ports/adapter"
	"camerpay-payments/internal/infra/logging"
	"camerpay-payments/internal/infra/metrics"
)

// Compile-time check
var _ ChargeUseCase = (*chargeUC)(nil)

type ChargeUseCase interface {
	// Initiate submits one charge request to the gateway and reports the
	// outcome. Every failure path resolves into the returned outcome; it
	// never propagates an error to the caller.
	Initiate(ctx context.Context, in model.ChargeInput) model.ChargeOutcome
}

const (
	currencyXAF   = "XAF"
	countryPrefix = "+237" // Cameroon calling code, prefixed to 9-digit local numbers
	defaultMemo   = "CamerPay Payment"

	// Redirect-flow charges send the payer back to the transaction history page.
	redirectReturnPath = "/dashboard/history"

	// Gateway success sentinel on the synchronous response.
	statusSuccessful = "SUCCESSFUL"
)

// User-facing messages. Gateway and internal detail goes to the logs only.
const (
	msgConfigError       = "Server configuration error. Please contact support."
	msgUnsupportedMethod = "Unsupported payment method."
	msgInitiated         = "Payment initiated successfully."
	msgApproveHint       = " Please approve the transaction on your phone."
	msgRequestFailed     = "Payment request failed."
	msgUnexpected        = "An unexpected error occurred. Please try again."
)

type chargeUC struct {
	creds         config.TranzakConfig
	publicBaseURL string
	gateway       adapter.ChargeGateway
	log           *zerolog.Logger
	dev           bool
}

func NewChargeUseCase(cfg config.PaymentConfig, gateway adapter.ChargeGateway, logger *zerolog.Logger, dev bool) *chargeUC {
	return &chargeUC{
		creds:         cfg.Tranzak,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		gateway:       gateway,
		log:           logger,
		dev:           dev,
	}
}

func (u *chargeUC) Initiate(ctx context.Context, in model.ChargeInput) model.ChargeOutcome {
	flow := in.PaymentFlow
	if flow == "" {
		flow = model.FlowDirect
	}
	method := string(in.PaymentMethod)

	// Credentials were checked once at startup, but an operator can still run
	// without them; the charge must then fail before any network I/O.
	if u.creds.AppID == "" || u.creds.APIKey == "" {
		u.log.Error().Msg("tranzak app id or api key is not configured")
		metrics.IncCharge("config_error", string(flow), method)
		return model.ChargeOutcome{Success: false, Message: msgConfigError}
	}

	mno, ok := in.PaymentMethod.MNOCode()
	if !ok {
		u.log.Warn().Str("payment_method", method).Msg("rejected charge with unmapped payment method")
		metrics.IncCharge("invalid_method", string(flow), method)
		return model.ChargeOutcome{Success: false, Message: msgUnsupportedMethod}
	}

	memo := in.Memo
	if memo == "" {
		memo = defaultMemo
	}

	req := adapter.ChargeRequest{
		Amount:       in.Amount,
		CurrencyCode: currencyXAF,
		RequestID:    uuid.NewString(), // fresh per submit; the gateway dedupes on it
		Memo:         memo,
		MNOCode:      mno,
		PhoneNumber:  countryPrefix + in.PhoneNumber,
	}
	if flow == model.FlowRedirect {
		req.RedirectURL = u.publicBaseURL + redirectReturnPath
	}

	resp, err := u.gateway.SubmitCharge(ctx, req)
	if err != nil {
		// Transport fault or non-JSON body. Logged for operators, generic for
		// the caller so no gateway internals leak.
		u.log.Error().Err(err).
			Str("request_id", req.RequestID).
			Str("phone_number", logging.Redact(req.PhoneNumber, u.dev)).
			Msg("charge request failed")
		metrics.IncCharge("transport_error", string(flow), method)
		return model.ChargeOutcome{Success: false, Message: msgUnexpected}
	}

	if resp.HTTPStatus >= 200 && resp.HTTPStatus < 300 && resp.Status == statusSuccessful {
		msg := msgInitiated
		if flow == model.FlowDirect {
			msg += msgApproveHint
		}
		metrics.IncCharge("initiated", string(flow), method)
		return model.ChargeOutcome{
			Success:       true,
			Message:       msg,
			TransactionID: resp.TransactionID,
			RedirectURL:   resp.RedirectURL,
		}
	}

	u.log.Error().
		Int("http_status", resp.HTTPStatus).
		Str("request_id", req.RequestID).
		Bytes("body", resp.RawBody).
		Msg("tranzak declined charge request")
	metrics.IncCharge("declined", string(flow), method)

	msg := resp.Message
	if msg == "" {
		msg = msgRequestFailed
	}
	return model.ChargeOutcome{Success: false, Message: msg}
}
